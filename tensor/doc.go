// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the vector and matrix primitives of the network engine.
//
// # Overview
//
// Vectors are []float64 slices and matrices are gonum *mat.Dense values.
// Every operation checks operand sizes and returns ErrDimensionMismatch
// instead of panicking.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlp/tensor"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    w := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
//	    y, err := tensor.MatVecMul(w, []float64{1, 2, 3}) // [1 2]
//
//	    g, err := tensor.OuterProduct([]float64{1, 2}, []float64{3, 4, 5})
//	}
package tensor
