package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// LayerGradient holds the loss gradient for one layer's parameters.
type LayerGradient struct {
	Weights *mat.Dense // [out, in], same shape as the layer weights
	Bias    []float64  // [out]
}

// Gradients holds one LayerGradient per layer, input side first.
type Gradients []LayerGradient

// ComputeGradients backpropagates the error of one sample.
//
// The output error is δ_L = a_L - target. For the three heads a TaskType can
// select this is the exact derivative of the loss with respect to the output
// pre-activations:
//
//	identity + ½‖a - t‖²         ∂L/∂z = a - t
//	sigmoid  + binary CE         ∂L/∂z = σ(z) - t
//	softmax  + categorical CE    ∂L/∂z = softmax(z) - t
//
// Hidden errors are propagated with δ_l = (W_{l+1}ᵀ δ_{l+1}) ⊙ f'(a_l), where
// f' is the hidden activation's derivative written in terms of its output.
// The parameter gradients are ∂W_l = δ_l ⊗ a_{l-1} and ∂b_l = δ_l.
//
// Parameters:
//   - net: Network that produced trace; it is not modified
//   - trace: Forward trace of the sample
//   - target: Encoded target vector of length OutputDim()
//
// Returns ErrDimensionMismatch if the trace was not produced by a network of
// the same topology or the target has the wrong length.
func ComputeGradients(net *Network, trace *Trace, target []float64) (Gradients, error) {
	if err := trace.matches(net.shape); err != nil {
		return nil, fmt.Errorf("ComputeGradients: %w", err)
	}
	if len(target) != net.OutputDim() {
		return nil, fmt.Errorf("ComputeGradients: target has %d values, want %d: %w",
			len(target), net.OutputDim(), ErrDimensionMismatch)
	}

	last := len(net.layers) - 1
	grads := make(Gradients, len(net.layers))

	delta, err := tensor.Sub(trace.activations[last+1], target)
	if err != nil {
		return nil, fmt.Errorf("ComputeGradients: output error: %w", err)
	}

	for l := last; l >= 0; l-- {
		// activations[l] is the input of layer l.
		gw, err := tensor.OuterProduct(delta, trace.activations[l])
		if err != nil {
			return nil, fmt.Errorf("ComputeGradients: layer %d: %w", l, err)
		}
		grads[l] = LayerGradient{Weights: gw, Bias: delta}

		if l == 0 {
			break
		}

		back, err := tensor.TransposeMatVecMul(net.layers[l].weights, delta)
		if err != nil {
			return nil, fmt.Errorf("ComputeGradients: layer %d: %w", l, err)
		}
		deriv := tensor.Map(trace.activations[l], net.hidden.derivativeFromOutput)
		delta, err = tensor.ElementwiseMul(back, deriv)
		if err != nil {
			return nil, fmt.Errorf("ComputeGradients: layer %d: %w", l-1, err)
		}
	}

	return grads, nil
}

// Norm returns the Euclidean norm of all gradient entries, useful for
// monitoring and for detecting divergence.
func (g Gradients) Norm() float64 {
	var sum float64
	for _, lg := range g {
		w := mat.Norm(lg.Weights, 2)
		b := tensor.Norm(lg.Bias)
		sum += w*w + b*b
	}
	return math.Sqrt(sum)
}
