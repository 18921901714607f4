package lineup

import "context"

// Repository is the lineup persistence collaborator. Get returns an empty
// snapshot when nothing was saved for the day.
type Repository interface {
	Get(ctx context.Context, day int) (Snapshot, error)
	Save(ctx context.Context, day int, players []SavePlayer) (Snapshot, error)
}
