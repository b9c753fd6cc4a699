package tensor

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when operand shapes disagree.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// mismatch wraps ErrDimensionMismatch with the operation and the offending sizes.
func mismatch(op string, a, b int) error {
	return fmt.Errorf("%s: %w (%d vs %d)", op, ErrDimensionMismatch, a, b)
}
