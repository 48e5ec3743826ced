package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidLevel rejects declared or computed levels outside [1,5]
	// before any write happens.
	ErrInvalidLevel = errors.New("level must be between 1 and 5")
)
