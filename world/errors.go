package world

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package wraps exactly one of them.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)

// Specific failures, each wrapping its class.
var (
	ErrOutOfBounds  = fmt.Errorf("%w: position out of bounds", ErrInvalidArgument)
	ErrCellOccupied = fmt.Errorf("%w: cell already occupied", ErrInvalidArgument)
	ErrNotTracked   = fmt.Errorf("%w: animal not tracked by world", ErrInvalidState)
	ErrGridMismatch = fmt.Errorf("%w: grid cell does not reference animal", ErrInvalidState)
	ErrNoPosition   = fmt.Errorf("%w: animal has no position", ErrInvalidState)
	ErrDetached     = fmt.Errorf("%w: animal is alive but detached", ErrInvalidState)
)
