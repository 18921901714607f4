package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrSaveRejected          = errors.New("lineup save rejected")
	ErrNoActiveDay           = errors.New("no active day")
	ErrDayLoading            = errors.New("lineup day is still loading")
)
