package tensor

import (
	"gonum.org/v1/gonum/mat"
)

// MatVecMul returns m · v.
//
// m has shape [rows, cols] and v must have length cols.
// The result has length rows.
func MatVecMul(m mat.Matrix, v []float64) ([]float64, error) {
	rows, cols := m.Dims()
	if cols != len(v) {
		return nil, mismatch("MatVecMul", cols, len(v))
	}
	out := make([]float64, rows)
	dst := mat.NewVecDense(rows, out)
	dst.MulVec(m, mat.NewVecDense(len(v), v))
	return out, nil
}

// TransposeMatVecMul returns mᵀ · v without materializing the transpose.
//
// m has shape [rows, cols] and v must have length rows.
// The result has length cols.
func TransposeMatVecMul(m mat.Matrix, v []float64) ([]float64, error) {
	rows, cols := m.Dims()
	if rows != len(v) {
		return nil, mismatch("TransposeMatVecMul", rows, len(v))
	}
	out := make([]float64, cols)
	dst := mat.NewVecDense(cols, out)
	dst.MulVec(m.T(), mat.NewVecDense(len(v), v))
	return out, nil
}

// OuterProduct returns u ⊗ v, a [len(u), len(v)] matrix with
// element (i, j) equal to u[i]*v[j].
func OuterProduct(u, v []float64) (*mat.Dense, error) {
	if len(u) == 0 || len(v) == 0 {
		return nil, mismatch("OuterProduct", len(u), len(v))
	}
	out := mat.NewDense(len(u), len(v), nil)
	out.Outer(1, mat.NewVecDense(len(u), u), mat.NewVecDense(len(v), v))
	return out, nil
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b mat.Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}

// Flatten appends the elements of m in row-major order to dst.
func Flatten(dst []float64, m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst = append(dst, m.At(i, j))
		}
	}
	return dst
}
