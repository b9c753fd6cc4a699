package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// layer is one fully connected transform z = W·a + b.
//
// W has shape [out, in]: row j holds the incoming weights of neuron j.
// b has length out. Layers are owned by a Network and never handed out;
// accessors on Network return copies.
type layer struct {
	in      int
	out     int
	weights *mat.Dense    // [out, in]
	bias    *mat.VecDense // [out]
}

// newLayer creates a layer with randomly initialized weights and zero biases.
func newLayer(in, out int, init Init, bound float64, rng *rand.Rand) *layer {
	var w *mat.Dense
	switch init {
	case InitXavier:
		w = Xavier(rng, in, out)
	default:
		w = Uniform(rng, out, in, bound)
	}
	return &layer{
		in:      in,
		out:     out,
		weights: w,
		bias:    Zeros(out),
	}
}

// affine computes W·a + b. len(a) must equal l.in.
func (l *layer) affine(a []float64) ([]float64, error) {
	z, err := tensor.MatVecMul(l.weights, a)
	if err != nil {
		return nil, err
	}
	floats.Add(z, l.bias.RawVector().Data)
	return z, nil
}

// checkGradient verifies that g matches the layer's parameter shapes.
func (l *layer) checkGradient(g LayerGradient) error {
	if g.Weights == nil {
		return fmt.Errorf("weight gradient: %w (nil)", ErrDimensionMismatch)
	}
	if !tensor.SameShape(g.Weights, l.weights) {
		r, c := g.Weights.Dims()
		return fmt.Errorf("weight gradient: %w (want [%d %d], got [%d %d])", ErrDimensionMismatch, l.out, l.in, r, c)
	}
	if len(g.Bias) != l.out {
		return fmt.Errorf("bias gradient: %w (want %d, got %d)", ErrDimensionMismatch, l.out, len(g.Bias))
	}
	return nil
}

// descend applies W -= lr·∂W and b -= lr·∂b in place.
// The gradient must already have passed checkGradient.
func (l *layer) descend(g LayerGradient, lr float64) {
	var step mat.Dense
	step.Scale(lr, g.Weights)
	l.weights.Sub(l.weights, &step)
	floats.AddScaled(l.bias.RawVector().Data, -lr, g.Bias)
}
