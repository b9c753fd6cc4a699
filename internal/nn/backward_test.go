package nn

import (
	"testing"

	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// setFlat loads parameters laid out like FlattenedWeights into net.
func setFlat(t *testing.T, net *Network, flat []float64) {
	t.Helper()
	topo := net.Topology()
	off := 0
	for l := 0; l < net.NumLayers(); l++ {
		in, out := topo[l], topo[l+1]
		w := mat.NewDense(out, in, append([]float64(nil), flat[off:off+in*out]...))
		off += in * out
		b := append([]float64(nil), flat[off:off+out]...)
		off += out
		require.NoError(t, net.SetLayer(l, w, b))
	}
}

// trainingLoss is the loss whose gradient ComputeGradients returns:
// half the squared error for regression and the cross-entropies otherwise.
func trainingLoss(task TaskType, target, output []float64) float64 {
	switch task {
	case Regression:
		var s float64
		for i := range target {
			d := output[i] - target[i]
			s += d * d
		}
		return s / 2
	case BinaryClassification:
		l, _ := BinaryCrossEntropy(target, output)
		return l
	default:
		l, _ := CrossEntropy(target, output)
		return l
	}
}

func flattenGradients(g Gradients) []float64 {
	var flat []float64
	for _, lg := range g {
		flat = tensor.Flatten(flat, lg.Weights)
		flat = append(flat, lg.Bias...)
	}
	return flat
}

// TestComputeGradients_FiniteDifference compares the analytic gradient with a
// central-difference estimate of the loss over every parameter.
func TestComputeGradients_FiniteDifference(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		input  []float64
		target []float64
	}{
		{
			name:   "regression tanh",
			cfg:    Config{InputDim: 3, Hidden: []int{4}, OutputDim: 2, Task: Regression, HiddenActivation: ActTanh},
			input:  []float64{0.5, -1.0, 0.25},
			target: []float64{0.3, -0.7},
		},
		{
			name:   "regression without hidden layer",
			cfg:    Config{InputDim: 2, OutputDim: 1, Task: Regression},
			input:  []float64{1.5, -0.5},
			target: []float64{2},
		},
		{
			name:   "binary tanh",
			cfg:    Config{InputDim: 2, Hidden: []int{3}, OutputDim: 1, Task: BinaryClassification, HiddenActivation: ActTanh},
			input:  []float64{0.8, -0.3},
			target: []float64{1},
		},
		{
			name:   "binary sigmoid two hidden",
			cfg:    Config{InputDim: 2, Hidden: []int{3, 2}, OutputDim: 1, Task: BinaryClassification, HiddenActivation: ActSigmoid},
			input:  []float64{-0.4, 0.9},
			target: []float64{0},
		},
		{
			name:   "multiclass tanh",
			cfg:    Config{InputDim: 3, Hidden: []int{5}, OutputDim: 3, Task: MultiClassClassification, HiddenActivation: ActTanh},
			input:  []float64{0.1, 0.7, -0.6},
			target: []float64{0, 0, 1},
		},
		{
			name:   "multiclass sigmoid",
			cfg:    Config{InputDim: 2, Hidden: []int{4}, OutputDim: 4, Task: MultiClassClassification, HiddenActivation: ActSigmoid},
			input:  []float64{1.2, -0.2},
			target: []float64{0, 1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Rand = seeded(21)
			tt.cfg.InitBound = 1
			net, err := New(tt.cfg)
			require.NoError(t, err)

			_, trace, err := net.Forward(tt.input)
			require.NoError(t, err)
			grads, err := ComputeGradients(net, trace, tt.target)
			require.NoError(t, err)
			analytic := flattenGradients(grads)

			params := net.FlattenedWeights()
			require.Len(t, analytic, len(params))

			loss := func(p []float64) float64 {
				setFlat(t, net, p)
				out, _, err := net.Forward(tt.input)
				require.NoError(t, err)
				return trainingLoss(net.Task(), tt.target, out)
			}
			numeric := fd.Gradient(nil, loss, params, &fd.Settings{Formula: fd.Central, Step: 1e-6})
			setFlat(t, net, params)

			for i := range analytic {
				assert.InDelta(t, numeric[i], analytic[i], 1e-4, "parameter %d", i)
			}
			assert.Equal(t, params, net.FlattenedWeights(), "ComputeGradients must not modify the network")
		})
	}
}

func TestComputeGradients_OutputDelta(t *testing.T) {
	net, err := New(Config{InputDim: 2, OutputDim: 1, Rand: seeded(1)})
	require.NoError(t, err)
	require.NoError(t, net.SetLayer(0, mat.NewDense(1, 2, []float64{1, 2}), []float64{0.5}))

	// out = 1*1 + 2*3 + 0.5 = 7.5, delta = 7.5 - 2 = 5.5
	_, trace, err := net.Forward([]float64{1, 3})
	require.NoError(t, err)
	grads, err := ComputeGradients(net, trace, []float64{2})
	require.NoError(t, err)

	require.Len(t, grads, 1)
	assert.InDeltaSlice(t, []float64{5.5}, grads[0].Bias, 1e-12)
	assert.InDeltaSlice(t, []float64{5.5, 16.5}, tensor.Flatten(nil, grads[0].Weights), 1e-12)
	assert.InDelta(t, floats.Norm([]float64{5.5, 16.5, 5.5}, 2), grads.Norm(), 1e-12)
}

func TestComputeGradients_Errors(t *testing.T) {
	net, err := Construct(2, []int{3}, 1, 0.1, Regression, seeded(1))
	require.NoError(t, err)
	other, err := Construct(2, []int{4}, 1, 0.1, Regression, seeded(1))
	require.NoError(t, err)

	_, trace, err := net.Forward([]float64{1, 2})
	require.NoError(t, err)
	_, otherTrace, err := other.Forward([]float64{1, 2})
	require.NoError(t, err)

	_, err = ComputeGradients(net, nil, []float64{1})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ComputeGradients(net, otherTrace, []float64{1})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ComputeGradients(net, trace, []float64{1, 2})
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ComputeGradients(net, trace, nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestApplyGradients(t *testing.T) {
	net, err := New(Config{InputDim: 2, OutputDim: 1, Rand: seeded(1)})
	require.NoError(t, err)
	require.NoError(t, net.SetLayer(0, mat.NewDense(1, 2, []float64{1, 2}), []float64{0.5}))

	grads := Gradients{{Weights: mat.NewDense(1, 2, []float64{10, -10}), Bias: []float64{4}}}
	require.NoError(t, net.ApplyGradients(grads, 0.1))
	assert.InDeltaSlice(t, []float64{0, 3, 0.1}, net.FlattenedWeights(), 1e-12)
}

// TestApplyGradients_AllOrNothing checks that a bad gradient in a later layer
// leaves earlier layers untouched.
func TestApplyGradients_AllOrNothing(t *testing.T) {
	net, err := Construct(2, []int{2}, 1, 0.1, Regression, seeded(1))
	require.NoError(t, err)
	before := net.FlattenedWeights()

	bad := Gradients{
		{Weights: mat.NewDense(2, 2, []float64{1, 1, 1, 1}), Bias: []float64{1, 1}},
		{Weights: mat.NewDense(1, 3, nil), Bias: []float64{1}},
	}
	require.ErrorIs(t, net.ApplyGradients(bad, 0.1), ErrDimensionMismatch)
	require.ErrorIs(t, net.ApplyGradients(bad[:1], 0.1), ErrDimensionMismatch)
	require.ErrorIs(t, net.ApplyGradients(Gradients{bad[0], {Bias: []float64{1}}}, 0.1), ErrDimensionMismatch)
	require.ErrorIs(t, net.ApplyGradients(Gradients{bad[0], {Weights: mat.NewDense(1, 2, nil), Bias: nil}}, 0.1), ErrDimensionMismatch)

	assert.Equal(t, before, net.FlattenedWeights())
}

// TestGradientStep_ReducesLoss takes one small step along the negative gradient.
func TestGradientStep_ReducesLoss(t *testing.T) {
	for _, task := range []TaskType{Regression, BinaryClassification, MultiClassClassification} {
		t.Run(task.String(), func(t *testing.T) {
			out := 1
			if task == MultiClassClassification {
				out = 3
			}
			net, err := Construct(3, []int{4}, out, 0.01, task, seeded(8))
			require.NoError(t, err)

			label := 1.0
			if task == Regression {
				label = 2.5
			}
			target, err := task.EncodeTarget(label, out)
			require.NoError(t, err)
			x := []float64{0.2, -0.4, 0.9}

			before, trace, err := net.Forward(x)
			require.NoError(t, err)
			grads, err := ComputeGradients(net, trace, target)
			require.NoError(t, err)
			require.NoError(t, net.ApplyGradients(grads, 0.01))
			after, _, err := net.Forward(x)
			require.NoError(t, err)

			assert.Less(t, trainingLoss(task, target, after), trainingLoss(task, target, before))
		})
	}
}
