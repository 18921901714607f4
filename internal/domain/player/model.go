package player

import (
	"fmt"
	"strings"
)

// Position represents hockey position categories used by the lineup slots.
type Position string

const (
	PositionForward    Position = "Forward"
	PositionDefender   Position = "Defender"
	PositionGoalkeeper Position = "Goalkeeper"
)

// Positions lists every position in lineup order.
var Positions = []Position{PositionForward, PositionDefender, PositionGoalkeeper}

var AllPositions = map[Position]struct{}{
	PositionForward:    {},
	PositionDefender:   {},
	PositionGoalkeeper: {},
}

// ParsePosition accepts the canonical names plus the short codes used by
// scraped rosters (F, D, G, GK).
func ParsePosition(value string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "FORWARD", "F", "FWD":
		return PositionForward, nil
	case "DEFENDER", "D", "DEF":
		return PositionDefender, nil
	case "GOALKEEPER", "G", "GK":
		return PositionGoalkeeper, nil
	default:
		return "", fmt.Errorf("invalid player position: %q", value)
	}
}

// Player is an immutable roster entry owned by the roster catalog.
type Player struct {
	ID               int64
	Name             string
	Position         Position
	TeamAbbr         string
	ChampionshipYear int
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if strings.TrimSpace(p.TeamAbbr) == "" {
		return fmt.Errorf("player team abbreviation is required")
	}

	return nil
}
