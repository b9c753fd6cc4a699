// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when operand shapes disagree.
var ErrDimensionMismatch = tensor.ErrDimensionMismatch

// Shape lists layer widths, input first.
type Shape = tensor.Shape

// Vector operations

// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) { return tensor.Dot(a, b) }

// Add returns a + b.
func Add(a, b []float64) ([]float64, error) { return tensor.Add(a, b) }

// Sub returns a - b.
func Sub(a, b []float64) ([]float64, error) { return tensor.Sub(a, b) }

// ElementwiseMul returns the Hadamard product of a and b.
func ElementwiseMul(a, b []float64) ([]float64, error) { return tensor.ElementwiseMul(a, b) }

// Scale returns alpha * a.
func Scale(alpha float64, a []float64) []float64 { return tensor.Scale(alpha, a) }

// Norm returns the Euclidean norm of a.
func Norm(a []float64) float64 { return tensor.Norm(a) }

// ArgMax returns the index of the largest element, or -1 for an empty slice.
func ArgMax(a []float64) int { return tensor.ArgMax(a) }

// Matrix operations

// MatVecMul returns m · v.
func MatVecMul(m mat.Matrix, v []float64) ([]float64, error) { return tensor.MatVecMul(m, v) }

// TransposeMatVecMul returns mᵀ · v.
func TransposeMatVecMul(m mat.Matrix, v []float64) ([]float64, error) {
	return tensor.TransposeMatVecMul(m, v)
}

// OuterProduct returns u ⊗ v.
func OuterProduct(u, v []float64) (*mat.Dense, error) { return tensor.OuterProduct(u, v) }

// Flatten appends the elements of m in row-major order to dst.
func Flatten(dst []float64, m mat.Matrix) []float64 { return tensor.Flatten(dst, m) }
