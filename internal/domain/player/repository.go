package player

import "context"

// Filter narrows a roster listing. Zero values mean "any".
type Filter struct {
	Position Position
	TeamAbbr string
}

// Repository describes the roster catalog consumed by use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
}
