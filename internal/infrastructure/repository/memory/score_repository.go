package memory

import (
	"context"
	"math"
	"sort"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/score"
)

// ScoreRepository scores saved lineups against finished matches.
type ScoreRepository struct {
	players *PlayerRepository
	matches *MatchRepository
	lineups *LineupRepository
	rivals  []Rival
}

func NewScoreRepository(players *PlayerRepository, matches *MatchRepository, lineups *LineupRepository, rivals []Rival) *ScoreRepository {
	return &ScoreRepository{
		players: players,
		matches: matches,
		lineups: lineups,
		rivals:  append([]Rival(nil), rivals...),
	}
}

func (r *ScoreRepository) Standings(_ context.Context) ([]score.Standing, error) {
	out := make([]score.Standing, 0, len(r.rivals)+4)
	for _, rival := range r.rivals {
		row := score.Standing{UserID: rival.UserID, Username: rival.Username, ByDay: map[int]float64{}}
		for _, day := range r.matches.days() {
			if !r.matches.dayStarted(day) {
				continue
			}
			ds := r.dayScore(day, rivalEntries(rival))
			row.ByDay[day] = ds.TotalPoints
			row.TotalPoints += ds.TotalPoints
		}
		out = append(out, row)
	}

	callers := r.lineups.callers()
	sort.Strings(callers)
	for _, caller := range callers {
		row := score.Standing{UserID: caller, Username: "manager-" + caller[:8], ByDay: map[int]float64{}}
		for _, ds := range r.history(caller) {
			row.ByDay[ds.Day] = ds.TotalPoints
			row.TotalPoints += ds.TotalPoints
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *ScoreRepository) ByDay(ctx context.Context, day int) ([]score.Standing, error) {
	all, err := r.Standings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]score.Standing, 0, len(all))
	for _, row := range all {
		pts, ok := row.ByDay[day]
		if !ok {
			continue
		}
		out = append(out, score.Standing{
			UserID:      row.UserID,
			Username:    row.Username,
			TotalPoints: pts,
			ByDay:       map[int]float64{day: pts},
		})
	}
	return out, nil
}

func (r *ScoreRepository) Mine(ctx context.Context) ([]score.DayScore, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	return r.history(caller), nil
}

func (r *ScoreRepository) history(caller string) []score.DayScore {
	days := r.lineups.savedDays(caller)
	sort.Ints(days)

	out := make([]score.DayScore, 0, len(days))
	for _, day := range days {
		out = append(out, r.dayScore(day, r.lineups.entries(caller, day)))
	}
	return out
}

// dayScore scores entries on day. Players whose match is not finished
// are listed with zero points.
func (r *ScoreRepository) dayScore(day int, entries []savedEntry) score.DayScore {
	out := score.DayScore{Day: day, Players: make([]score.PlayerScore, 0, len(entries))}
	for _, entry := range entries {
		p, ok := r.players.GetByID(context.Background(), entry.PlayerID)
		if !ok {
			continue
		}
		ps := score.PlayerScore{
			PlayerID:  p.ID,
			Name:      p.Name,
			TeamAbbr:  p.TeamAbbr,
			Position:  string(p.Position),
			IsCaptain: entry.IsCaptain,
		}
		if m, done := r.matches.completedOnDay(p.TeamAbbr, day); done {
			ps.FantasyPoints = FantasyPoints(p.Position, SimulatedStats(p, m.ID, m.HomeTeam), entry.IsCaptain)
		}
		out.TotalPoints += ps.FantasyPoints
		out.Players = append(out.Players, ps)
	}
	out.TotalPoints = math.Round(out.TotalPoints*100) / 100
	return out
}

func rivalEntries(rival Rival) []savedEntry {
	out := make([]savedEntry, 0, len(rival.Picks))
	for _, id := range rival.Picks {
		out = append(out, savedEntry{PlayerID: id, IsCaptain: id == rival.Captain})
	}
	return out
}
