package chartview

import "github.com/pkg/errors"

var (
	// ErrInvalidSlot is returned when a series slot is outside [0, MaxSeries).
	ErrInvalidSlot = errors.New("invalid series slot")
	// ErrInvalidCursor is returned when a cursor index is outside [0, MaxCursors).
	ErrInvalidCursor = errors.New("invalid cursor index")
	// ErrInvalidNumber is returned when axis edit text does not parse as a finite number.
	ErrInvalidNumber = errors.New("invalid number")
)
