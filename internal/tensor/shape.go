package tensor

import "fmt"

// Shape represents the widths of a layered network, input first.
//
// Shape{2, 4, 1} describes two inputs, one hidden layer of four neurons
// and a single output.
type Shape []int

// NumElements returns the number of weights and biases a dense network
// with this shape holds.
func (s Shape) NumElements() int {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		n += s[i]*s[i+1] + s[i+1]
	}
	return n
}

// Validate checks if the shape is valid (at least two widths, all > 0).
func (s Shape) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("shape %v needs at least an input and an output width", []int(s))
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}
