package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	now     func() time.Time
}

func NewMatchRepository(matches []match.Match, now func() time.Time) *MatchRepository {
	if now == nil {
		now = time.Now
	}
	items := append([]match.Match(nil), matches...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].MatchTime.Before(items[j].MatchTime)
	})
	return &MatchRepository{matches: items, now: now}
}

// ListToday returns the matches on the current UTC calendar day.
func (r *MatchRepository) ListToday(_ context.Context) ([]match.Match, error) {
	today := r.now().UTC().Truncate(24 * time.Hour)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, 4)
	for _, m := range r.matches {
		if m.Date.Equal(today) {
			out = append(out, r.withStatus(m))
		}
	}
	return out, nil
}

func (r *MatchRepository) ListByDay(_ context.Context, day int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, 4)
	for _, m := range r.matches {
		if m.Day == day {
			out = append(out, r.withStatus(m))
		}
	}
	return out, nil
}

// startedOnDay reports whether a match of team on day has faced off.
func (r *MatchRepository) startedOnDay(team string, day int) bool {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.Day == day && m.Involves(team) && !now.Before(m.MatchTime) {
			return true
		}
	}
	return false
}

// completedOnDay returns the finished match of team on day, if any.
func (r *MatchRepository) completedOnDay(team string, day int) (match.Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.Day != day || !m.Involves(team) {
			continue
		}
		if m = r.withStatus(m); m.Status == match.StatusCompleted {
			return m, true
		}
	}
	return match.Match{}, false
}

// dayStarted reports whether the first match of day has faced off.
func (r *MatchRepository) dayStarted(day int) bool {
	now := r.now()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.Day == day && !now.Before(m.MatchTime) {
			return true
		}
	}
	return false
}

// days lists the scheduled days in ascending order.
func (r *MatchRepository) days() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{}, 4)
	out := make([]int, 0, 4)
	for _, m := range r.matches {
		if _, ok := seen[m.Day]; ok {
			continue
		}
		seen[m.Day] = struct{}{}
		out = append(out, m.Day)
	}
	sort.Ints(out)
	return out
}

// withStatus derives the status from the clock: games are scored as live
// for three hours after face-off.
func (r *MatchRepository) withStatus(m match.Match) match.Match {
	now := r.now()
	switch {
	case now.Before(m.MatchTime):
		m.Status = match.StatusUpcoming
	case now.Before(m.MatchTime.Add(3 * time.Hour)):
		m.Status = match.StatusLive
	default:
		m.Status = match.StatusCompleted
	}
	return m
}
