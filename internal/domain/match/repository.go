package match

import "context"

// Repository exposes the match schedule.
type Repository interface {
	ListToday(ctx context.Context) ([]Match, error)
	ListByDay(ctx context.Context, day int) ([]Match, error)
}
