package match

import (
	"time"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

// HasStarted reports whether edits involving the match must be locked.
// A match without a kick-off instant is judged by status alone.
func HasStarted(m Match, now time.Time) bool {
	if NormalizeStatus(m.Status) != StatusUpcoming {
		return true
	}
	if m.MatchTime.IsZero() {
		return false
	}
	return !now.Before(m.MatchTime)
}

// LocksIn returns the time left before the match locks, zero once started.
func LocksIn(m Match, now time.Time) time.Duration {
	if HasStarted(m, now) || m.MatchTime.IsZero() {
		return 0
	}
	return m.MatchTime.Sub(now)
}

// IsLocked reports whether any match of the player's team has started.
func IsLocked(p player.Player, matches []Match, now time.Time) bool {
	for _, m := range matches {
		if !m.Involves(p.TeamAbbr) {
			continue
		}
		if HasStarted(m, now) {
			return true
		}
	}
	return false
}

// LockSet is the set of player ids that can no longer be edited. It is
// derived on every read and never stored.
type LockSet map[int64]struct{}

func (s LockSet) Has(playerID int64) bool {
	_, ok := s[playerID]
	return ok
}

func (s LockSet) Add(playerID int64) {
	s[playerID] = struct{}{}
}

func ComputeLockSet(players []player.Player, matches []Match, now time.Time) LockSet {
	out := make(LockSet, len(players))
	for _, p := range players {
		if IsLocked(p, matches, now) {
			out.Add(p.ID)
		}
	}
	return out
}
