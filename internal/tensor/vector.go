// Package tensor provides the vector and matrix primitives used by the
// network engine.
//
// Vectors are plain []float64 slices and matrices are gonum *mat.Dense
// values. Every function checks operand sizes and returns
// ErrDimensionMismatch instead of letting gonum panic, so callers can
// surface shape bugs as ordinary errors.
package tensor

import (
	"gonum.org/v1/gonum/floats"
)

// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, mismatch("Dot", len(a), len(b))
	}
	return floats.Dot(a, b), nil
}

// Add returns a + b element-wise.
func Add(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, mismatch("Add", len(a), len(b))
	}
	return floats.AddTo(make([]float64, len(a)), a, b), nil
}

// Sub returns a - b element-wise.
func Sub(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, mismatch("Sub", len(a), len(b))
	}
	return floats.SubTo(make([]float64, len(a)), a, b), nil
}

// ElementwiseMul returns the Hadamard product a ⊙ b.
func ElementwiseMul(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, mismatch("ElementwiseMul", len(a), len(b))
	}
	return floats.MulTo(make([]float64, len(a)), a, b), nil
}

// Scale returns alpha * a as a new slice.
func Scale(alpha float64, a []float64) []float64 {
	out := make([]float64, len(a))
	floats.ScaleTo(out, alpha, a)
	return out
}

// Map applies f to every element of a and returns the result as a new slice.
func Map(a []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = f(v)
	}
	return out
}

// Norm returns the Euclidean norm of a.
func Norm(a []float64) float64 {
	return floats.Norm(a, 2)
}

// ArgMax returns the index of the largest element of a.
// Ties resolve to the lowest index. Returns -1 for an empty slice.
func ArgMax(a []float64) int {
	if len(a) == 0 {
		return -1
	}
	return floats.MaxIdx(a)
}
