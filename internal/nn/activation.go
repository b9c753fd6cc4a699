package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Activation identifies the nonlinearity applied after a layer's affine transform.
//
// Hidden layers use ActSigmoid or ActTanh: both saturate and both have a
// derivative that can be computed from their own output, which is what the
// backward pass relies on. ActIdentity and ActSoftmax are output heads chosen
// by the TaskType and are never configured directly.
type Activation int

// Activation kinds. The zero value means "not set" and is replaced by the
// default in Config.
const (
	ActIdentity Activation = iota + 1
	ActSigmoid
	ActTanh
	ActSoftmax
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case ActIdentity:
		return "identity"
	case ActSigmoid:
		return "sigmoid"
	case ActTanh:
		return "tanh"
	case ActSoftmax:
		return "softmax"
	default:
		return "unset"
	}
}

// validHidden reports whether a can be used between layers.
func (a Activation) validHidden() bool {
	return a == ActSigmoid || a == ActTanh
}

// apply maps pre-activations z to activations. z is not modified.
func (a Activation) apply(z []float64) []float64 {
	out := make([]float64, len(z))
	switch a {
	case ActSigmoid:
		for i, v := range z {
			out[i] = Sigmoid(v)
		}
	case ActTanh:
		for i, v := range z {
			out[i] = Tanh(v)
		}
	case ActSoftmax:
		return Softmax(z)
	default:
		copy(out, z)
	}
	return out
}

// derivativeFromOutput returns f'(z) given y = f(z).
func (a Activation) derivativeFromOutput(y float64) float64 {
	switch a {
	case ActSigmoid:
		return SigmoidDerivativeFromOutput(y)
	case ActTanh:
		return TanhDerivativeFromOutput(y)
	case ActIdentity:
		return 1
	default:
		panic("derivativeFromOutput: no element-wise derivative for " + a.String())
	}
}

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)), mapping ℝ onto (0, 1).
//
// The two branches keep exp from overflowing for large |x|.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// SigmoidDerivativeFromOutput returns σ'(x) expressed through s = σ(x): s(1-s).
func SigmoidDerivativeFromOutput(s float64) float64 {
	return s * (1 - s)
}

// Tanh computes the hyperbolic tangent, mapping ℝ onto (-1, 1).
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// TanhDerivative returns 1 - tanh(x)².
func TanhDerivative(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

// TanhDerivativeFromOutput returns tanh'(x) expressed through t = tanh(x): 1 - t².
func TanhDerivativeFromOutput(t float64) float64 {
	return 1 - t*t
}

// ReLU computes max(0, x).
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// ReLUDerivative returns 1 for x > 0 and 0 otherwise.
func ReLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Sign returns +1 for x >= 0 and -1 otherwise.
func Sign(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}

// Softmax converts v into a probability vector.
//
// The maximum element is subtracted before exponentiating so every exponent
// is <= 0 and exp never overflows; the result is unchanged because softmax is
// invariant to adding a constant to every element. Returns nil for empty input.
//
// Example:
//
//	p := nn.Softmax([]float64{1, 2, 3}) // [0.090, 0.245, 0.665]
func Softmax(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float64, len(v))
	maxVal := floats.Max(v)
	for i, x := range v {
		out[i] = math.Exp(x - maxVal)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}
