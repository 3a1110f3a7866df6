package matrix

import (
	"errors"
	"fmt"
)

// ErrNoFeatures is returned when no representation row matched an
// accepted label row.
var ErrNoFeatures = errors.New("no feature rows matched the accepted labels")

// DimensionMismatchError reports a representation row whose vector
// width differs from the first matched row.
type DimensionMismatchError struct {
	ID       string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("representation row %s: dimension mismatch: expected %d, got %d", e.ID, e.Expected, e.Actual)
}
