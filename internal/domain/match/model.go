package match

import (
	"strings"
	"time"
)

const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Match represents one scheduled game on a championship day.
type Match struct {
	ID        int64
	Day       int
	Date      time.Time
	MatchTime time.Time
	HomeTeam  string
	AwayTeam  string
	Status    string
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch status {
	case "", "scheduled", "not_started", "ns":
		return StatusUpcoming
	case "in_play", "in_progress", "1p", "2p", "3p", "ot", "so":
		return StatusLive
	case "final", "finished", "ft":
		return StatusCompleted
	default:
		return status
	}
}

// Involves reports whether the team abbreviation plays in the match.
func (m Match) Involves(teamAbbr string) bool {
	teamAbbr = strings.TrimSpace(teamAbbr)
	if teamAbbr == "" {
		return false
	}
	return strings.EqualFold(m.HomeTeam, teamAbbr) || strings.EqualFold(m.AwayTeam, teamAbbr)
}
