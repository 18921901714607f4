package lineup

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

// SlotKey identifies one fixed position in the six-player lineup.
type SlotKey string

const (
	SlotForward1   SlotKey = "f1"
	SlotForward2   SlotKey = "f2"
	SlotForward3   SlotKey = "f3"
	SlotDefender1  SlotKey = "d1"
	SlotDefender2  SlotKey = "d2"
	SlotGoalkeeper SlotKey = "gk"
)

// Slot binds a key to its position and display label.
type Slot struct {
	Key      SlotKey
	Position player.Position
	Label    string
}

// canonical order, also the save payload order
var schema = [...]Slot{
	{Key: SlotForward1, Position: player.PositionForward, Label: "Forward 1"},
	{Key: SlotForward2, Position: player.PositionForward, Label: "Forward 2"},
	{Key: SlotForward3, Position: player.PositionForward, Label: "Forward 3"},
	{Key: SlotDefender1, Position: player.PositionDefender, Label: "Defender 1"},
	{Key: SlotDefender2, Position: player.PositionDefender, Label: "Defender 2"},
	{Key: SlotGoalkeeper, Position: player.PositionGoalkeeper, Label: "Goalkeeper"},
}

var (
	slotIndex       = make(map[SlotKey]Slot, len(schema))
	slotsByPosition = make(map[player.Position][]SlotKey, len(player.AllPositions))
)

func init() {
	for _, slot := range schema {
		slotIndex[slot.Key] = slot
		slotsByPosition[slot.Position] = append(slotsByPosition[slot.Position], slot.Key)
	}
}

// Slots returns every slot in canonical order.
func Slots() []Slot {
	out := make([]Slot, len(schema))
	copy(out, schema[:])
	return out
}

// SlotsForPosition returns the slot keys that receive players of pos, in
// fill order. Unknown positions have no slots.
func SlotsForPosition(pos player.Position) []SlotKey {
	return append([]SlotKey(nil), slotsByPosition[pos]...)
}

// Capacity is the number of slots bound to pos.
func Capacity(pos player.Position) int {
	return len(slotsByPosition[pos])
}

// PositionOf returns the position bound to key, or "" for an unknown key.
func PositionOf(key SlotKey) player.Position {
	return slotIndex[key].Position
}

func Label(key SlotKey) string {
	return slotIndex[key].Label
}

func (k SlotKey) Valid() bool {
	_, ok := slotIndex[k]
	return ok
}

// ParseSlotKey validates a slot key coming from outside the process.
func ParseSlotKey(raw string) (SlotKey, error) {
	key := SlotKey(strings.ToLower(strings.TrimSpace(raw)))
	if !key.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
	}
	return key, nil
}
