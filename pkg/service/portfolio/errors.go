package portfolio

import "errors"

// ErrUnitNotFound is returned when a summary is requested for a unit the
// investor does not hold.
var ErrUnitNotFound = errors.New("purchased unit not found")
