package lineup

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/fantasy-hockey/internal/domain/player"
)

// Lineup holds the in-progress lineup of one day. It is a plain state
// container: lock policy is applied by callers and it is not safe for
// concurrent use.
type Lineup struct {
	day     int
	slots   map[SlotKey]player.Player
	captain SlotKey
}

func New(day int) *Lineup {
	return &Lineup{
		day:   day,
		slots: make(map[SlotKey]player.Player, len(schema)),
	}
}

func (l *Lineup) Day() int {
	return l.day
}

// PlayerAt returns the occupant of key.
func (l *Lineup) PlayerAt(key SlotKey) (player.Player, bool) {
	p, ok := l.slots[key]
	return p, ok
}

// Captain returns the captain slot when one is set.
func (l *Lineup) Captain() (SlotKey, bool) {
	return l.captain, l.captain != ""
}

func (l *Lineup) IsEmpty() bool {
	return len(l.slots) == 0
}

// SlotOf returns the slot currently holding playerID.
func (l *Lineup) SlotOf(playerID int64) (SlotKey, bool) {
	for key, p := range l.slots {
		if p.ID == playerID {
			return key, true
		}
	}
	return "", false
}

// Pick assigns p to key. Picking the current occupant again is a no-op.
// The captain is left untouched.
func (l *Lineup) Pick(key SlotKey, p player.Player) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}
	if want := PositionOf(key); p.Position != want {
		return fmt.Errorf("%w: slot=%s expects %s, got %s", ErrPositionMismatch, key, want, p.Position)
	}
	if current, ok := l.SlotOf(p.ID); ok && current != key {
		return fmt.Errorf("%w: player=%d slot=%s", ErrAlreadySelected, p.ID, current)
	}

	l.slots[key] = p
	return nil
}

// Remove clears key and the captaincy if it pointed there. Removing an
// empty slot is allowed.
func (l *Lineup) Remove(key SlotKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}

	delete(l.slots, key)
	if l.captain == key {
		l.captain = ""
	}
	return nil
}

// ToggleCaptain clears the captaincy when key holds it, otherwise moves it
// to key. Toggling an empty slot does nothing.
func (l *Lineup) ToggleCaptain(key SlotKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, key)
	}

	if l.captain == key {
		l.captain = ""
		return nil
	}
	if _, ok := l.slots[key]; !ok {
		return nil
	}
	l.captain = key
	return nil
}

// SelectedPlayerIDs returns the ids occupying any slot.
func (l *Lineup) SelectedPlayerIDs() map[int64]struct{} {
	out := make(map[int64]struct{}, len(l.slots))
	for _, p := range l.slots {
		out[p.ID] = struct{}{}
	}
	return out
}

// Reconcile replaces the whole state with the one derived from snapshot.
//
// Entries are grouped by position keeping server order and the i-th entry
// of a position lands in the i-th slot of that position. Entries past the
// slot capacity, with an unknown position or repeating an already placed
// player are dropped. When several placed entries claim the captaincy the
// last one wins.
func (l *Lineup) Reconcile(snapshot Snapshot) (ReconcileReport, error) {
	if snapshot.Day != l.day {
		return ReconcileReport{}, fmt.Errorf("%w: snapshot day=%d active day=%d", ErrStaleSnapshot, snapshot.Day, l.day)
	}

	next := make(map[SlotKey]player.Player, len(schema))
	var captain SlotKey
	report := ReconcileReport{}

	filled := make(map[player.Position]int, len(slotsByPosition))
	seen := make(map[int64]struct{}, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		if entry.Locked {
			report.ServerLocked = append(report.ServerLocked, entry.Player.ID)
		}

		keys := slotsByPosition[entry.Player.Position]
		idx := filled[entry.Player.Position]
		if idx >= len(keys) {
			report.Dropped = append(report.Dropped, entry)
			continue
		}
		if _, dup := seen[entry.Player.ID]; dup {
			report.Dropped = append(report.Dropped, entry)
			continue
		}

		key := keys[idx]
		next[key] = entry.Player
		filled[entry.Player.Position] = idx + 1
		seen[entry.Player.ID] = struct{}{}
		report.Placed++
		if entry.IsCaptain {
			captain = key
		}
	}

	l.slots = next
	l.captain = captain
	report.Captain = captain
	return report, nil
}

// BuildSavePayload emits one record per occupied slot in canonical order.
func (l *Lineup) BuildSavePayload() ([]SavePlayer, error) {
	out := make([]SavePlayer, 0, len(l.slots))
	for _, slot := range schema {
		p, ok := l.slots[slot.Key]
		if !ok {
			continue
		}
		out = append(out, SavePlayer{
			PlayerID:  p.ID,
			IsCaptain: slot.Key == l.captain,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: day=%d", ErrEmptyLineup, l.day)
	}
	return out, nil
}

// View returns a detached read model of the lineup.
func (l *Lineup) View() View {
	out := View{
		Day:     l.day,
		Slots:   make([]SlotView, 0, len(schema)),
		Captain: l.captain,
	}
	for _, slot := range schema {
		item := SlotView{
			Key:       slot.Key,
			Label:     slot.Label,
			Position:  slot.Position,
			IsCaptain: slot.Key == l.captain,
		}
		if p, ok := l.slots[slot.Key]; ok {
			occupant := p
			item.Player = &occupant
		}
		out.Slots = append(out.Slots, item)
	}

	out.SelectedIDs = make([]int64, 0, len(l.slots))
	for id := range l.SelectedPlayerIDs() {
		out.SelectedIDs = append(out.SelectedIDs, id)
	}
	sort.Slice(out.SelectedIDs, func(i, j int) bool { return out.SelectedIDs[i] < out.SelectedIDs[j] })
	return out
}
