package score

import "context"

type Repository interface {
	Standings(ctx context.Context) ([]Standing, error)
	ByDay(ctx context.Context, day int) ([]Standing, error)
	Mine(ctx context.Context) ([]DayScore, error)
}
