package lineup

import "errors"

var (
	ErrPositionMismatch = errors.New("player position does not match slot")
	ErrAlreadySelected  = errors.New("player already selected in another slot")
	ErrSlotLocked       = errors.New("slot is locked")
	ErrEmptyLineup      = errors.New("lineup has no players")
	ErrUnknownSlot      = errors.New("unknown lineup slot")
	ErrStaleSnapshot    = errors.New("snapshot does not match active day")
)
