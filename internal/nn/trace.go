package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// Trace records one forward pass for the backward pass of the same sample.
//
// activations[0] is the input and activations[l+1] the output of layer l;
// preActivations[l] is layer l's z = W·a + b. The trace is stamped with the
// topology that produced it so a trace from a different network is rejected
// instead of yielding silently wrong gradients. A Trace is not meant to outlive
// the training step it was created for.
type Trace struct {
	shape          tensor.Shape
	activations    [][]float64
	preActivations [][]float64
}

func newTrace(shape tensor.Shape, input []float64) *Trace {
	layers := len(shape) - 1
	t := &Trace{
		shape:          shape.Clone(),
		activations:    make([][]float64, 1, layers+1),
		preActivations: make([][]float64, 0, layers),
	}
	t.activations[0] = append([]float64(nil), input...)
	return t
}

func (t *Trace) record(z, a []float64) {
	t.preActivations = append(t.preActivations, z)
	t.activations = append(t.activations, a)
}

// NumLayers returns the number of layers the trace covers.
func (t *Trace) NumLayers() int {
	return len(t.preActivations)
}

// Input returns the recorded input. The slice must not be modified.
func (t *Trace) Input() []float64 {
	return t.activations[0]
}

// Output returns the network output. The slice must not be modified.
func (t *Trace) Output() []float64 {
	return t.activations[len(t.activations)-1]
}

// Activation returns the output of layer l (0-based). The slice must not be modified.
func (t *Trace) Activation(l int) []float64 {
	return t.activations[l+1]
}

// PreActivation returns z for layer l (0-based). The slice must not be modified.
func (t *Trace) PreActivation(l int) []float64 {
	return t.preActivations[l]
}

// matches verifies the trace was produced by a network of the given shape.
func (t *Trace) matches(shape tensor.Shape) error {
	if t == nil {
		return fmt.Errorf("trace: %w (nil)", ErrDimensionMismatch)
	}
	if !t.shape.Equal(shape) {
		return fmt.Errorf("trace topology %v vs network %v: %w", []int(t.shape), []int(shape), ErrDimensionMismatch)
	}
	if len(t.activations) != len(shape) || len(t.preActivations) != len(shape)-1 {
		return fmt.Errorf("trace records %d layers, network has %d: %w", len(t.preActivations), len(shape)-1, ErrDimensionMismatch)
	}
	for i, a := range t.activations {
		if len(a) != shape[i] {
			return fmt.Errorf("trace activation %d has %d values, want %d: %w", i, len(a), shape[i], ErrDimensionMismatch)
		}
	}
	return nil
}
