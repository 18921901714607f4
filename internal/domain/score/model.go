package score

import "sort"

// Standing is one user's row in the overall or per-day table.
type Standing struct {
	Rank        int
	UserID      string
	Username    string
	TotalPoints float64
	ByDay       map[int]float64
}

// PlayerScore is one lineup entry with the fantasy points it earned.
type PlayerScore struct {
	PlayerID      int64
	Name          string
	TeamAbbr      string
	Position      string
	IsCaptain     bool
	FantasyPoints float64
}

// DayScore is the caller's result for one championship day.
type DayScore struct {
	Day         int
	TotalPoints float64
	Players     []PlayerScore
}

// Rank orders standings by total points descending and assigns 1-based
// ranks. Ties keep their incoming order.
func Rank(items []Standing) []Standing {
	out := make([]Standing, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// CaptainPoints returns the points earned by the captain of the day, or 0
// when no captain scored.
func (d DayScore) CaptainPoints() float64 {
	for _, p := range d.Players {
		if p.IsCaptain {
			return p.FantasyPoints
		}
	}
	return 0
}
