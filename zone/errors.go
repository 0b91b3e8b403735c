package zone

import "errors"

var (
	// ErrNoGap is returned when no row within the bound has an uncovered cell.
	ErrNoGap = errors.New("zone: no uncovered cell within bound")
	// ErrAmbiguousGap is returned when a row has more than one uncovered cell.
	ErrAmbiguousGap = errors.New("zone: uncovered cell is not unique")
	// ErrBound is returned for a negative search bound.
	ErrBound = errors.New("zone: bound must not be negative")
)
