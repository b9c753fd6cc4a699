package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Init selects how layer weights are initialized.
type Init int

// Weight initialization schemes.
const (
	// InitUniform draws weights from U(-bound, bound), bound defaulting to 0.5.
	InitUniform Init = iota
	// InitXavier draws weights from U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
	InitXavier
)

// String returns the scheme name.
func (i Init) String() string {
	switch i {
	case InitUniform:
		return "uniform"
	case InitXavier:
		return "xavier"
	default:
		return "unknown"
	}
}

// Uniform returns a [rows, cols] matrix with entries drawn from U(-bound, bound).
//
// Parameters:
//   - rng: Random source; the only randomness used
//   - rows, cols: Matrix shape (both > 0)
//   - bound: Half-width of the interval
func Uniform(rng *rand.Rand, rows, cols int, bound float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * bound
	}
	return mat.NewDense(rows, cols, data)
}

// Xavier (Glorot) initialization for a layer with fanIn inputs and fanOut neurons.
//
// Returns a [fanOut, fanIn] matrix drawn from
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier(rng *rand.Rand, fanIn, fanOut int) *mat.Dense {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return Uniform(rng, fanOut, fanIn, bound)
}

// Zeros returns a zero vector of length n, used for biases.
func Zeros(n int) *mat.VecDense {
	return mat.NewVecDense(n, nil)
}
