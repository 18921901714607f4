package lineup

import "github.com/riskibarqy/fantasy-hockey/internal/domain/player"

// SavePlayer is the wire form of one occupied slot.
type SavePlayer struct {
	PlayerID  int64
	IsCaptain bool
}

// SnapshotEntry is one saved pick as returned by the lineup service.
type SnapshotEntry struct {
	Player    player.Player
	IsCaptain bool
	Locked    bool
}

// Snapshot is the server view of a saved lineup. Entry order carries no
// slot identity.
type Snapshot struct {
	Day     int
	Entries []SnapshotEntry
}

// EmptySnapshot is what a missing saved lineup translates to.
func EmptySnapshot(day int) Snapshot {
	return Snapshot{Day: day}
}

// ReconcileReport describes how a snapshot was mapped into slots.
type ReconcileReport struct {
	Placed       int
	Dropped      []SnapshotEntry
	Captain      SlotKey
	ServerLocked []int64
}

// SlotView is the read model of one slot.
type SlotView struct {
	Key       SlotKey
	Label     string
	Position  player.Position
	Player    *player.Player
	IsCaptain bool
}

// View is the read model handed to presentation.
type View struct {
	Day         int
	Slots       []SlotView
	Captain     SlotKey
	SelectedIDs []int64
}
