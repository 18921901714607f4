package memory

import (
	"math"
	"math/rand/v2"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

// StatLine is one player's box score for a single match.
type StatLine struct {
	Goals        int
	Assists      int
	PPGoals      int
	SHGoals      int
	GWGoals      int
	Win          bool
	Saves        int
	GoalsAgainst int
}

type skaterWeights struct {
	goal, assist, ppg, shg, gwg, win float64
}

var skaterTable = map[player.Position]skaterWeights{
	player.PositionForward:  {goal: 3, assist: 2, ppg: 1, shg: 1, gwg: 1, win: 1},
	player.PositionDefender: {goal: 4, assist: 3, ppg: 1, shg: 1, gwg: 1, win: 1},
}

const (
	goalieWin          = 3
	goalieSave         = 0.2
	goalieGoalsAgainst = -1
	captainMultiplier  = 2
)

// FantasyPoints scores a stat line for pos. The captain earns double.
func FantasyPoints(pos player.Position, line StatLine, captain bool) float64 {
	var pts float64
	if pos == player.PositionGoalkeeper {
		if line.Win {
			pts += goalieWin
		}
		pts += goalieSave*float64(line.Saves) + goalieGoalsAgainst*float64(line.GoalsAgainst)
	} else if w, ok := skaterTable[pos]; ok {
		pts = w.goal*float64(line.Goals) +
			w.assist*float64(line.Assists) +
			w.ppg*float64(line.PPGoals) +
			w.shg*float64(line.SHGoals) +
			w.gwg*float64(line.GWGoals)
		if line.Win {
			pts += w.win
		}
	}
	if captain {
		pts *= captainMultiplier
	}
	return math.Round(pts*100) / 100
}

// SimulatedStats produces a deterministic box score for a player in a
// finished match. The home team wins odd-numbered matches.
func SimulatedStats(p player.Player, matchID int64, homeTeam string) StatLine {
	rng := rand.New(rand.NewPCG(uint64(p.ID), uint64(matchID)))
	won := (matchID%2 == 1) == (p.TeamAbbr == homeTeam)

	line := StatLine{Win: won}
	if p.Position == player.PositionGoalkeeper {
		line.Saves = 18 + rng.IntN(17)
		line.GoalsAgainst = rng.IntN(5)
		return line
	}
	line.Goals = rng.IntN(3)
	line.Assists = rng.IntN(3)
	if line.Goals > 0 && rng.IntN(3) == 0 {
		line.PPGoals = 1
	}
	if line.Goals > 0 && won && rng.IntN(4) == 0 {
		line.GWGoals = 1
	}
	return line
}
