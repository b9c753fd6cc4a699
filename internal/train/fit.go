// Package train runs stochastic gradient descent over a dataset.
//
// Fit is the whole training loop: every epoch visits the samples in a fresh
// random order and, for each one, runs the forward pass, backpropagates the
// error of the encoded target and applies an SGD step before moving on to
// the next sample. Training is single-threaded and synchronous.
//
// Example:
//
//	hist, err := train.Fit(net, inputs, labels, train.Config{
//	    Epochs: 2000,
//	    Rand:   rand.New(rand.NewPCG(1, 2)),
//	})
//	fmt.Println(hist.Final().Loss)
package train

import (
	"fmt"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// EncodeTarget converts one label into the target vector net trains against.
//
// See nn.TaskType.EncodeTarget for the per-head rules.
func EncodeTarget(net *nn.Network, label float64) ([]float64, error) {
	return net.Task().EncodeTarget(label, net.OutputDim())
}

// EncodeTargets encodes every label, failing on the first invalid one.
func EncodeTargets(net *nn.Network, labels []float64) ([][]float64, error) {
	targets := make([][]float64, len(labels))
	for i, label := range labels {
		t, err := EncodeTarget(net, label)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		targets[i] = t
	}
	return targets, nil
}

// Fit trains net on scalar labels.
//
// Labels are encoded by the network's task: raw values for regression,
// exactly -1 or +1 for binary classification, class indices for multi-class
// classification. Every input and label is validated before the first
// update, so on error net is unchanged.
//
// Returns ErrDimensionMismatch if len(inputs) != len(labels), the dataset is
// empty or an input has the wrong width, ErrInvalidLabel for a label the
// task cannot encode and ErrInvalidConfig for a bad cfg.
func Fit(net *nn.Network, inputs [][]float64, labels []float64, cfg Config) (*History, error) {
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("train.Fit: %d inputs and %d labels: %w", len(inputs), len(labels), nn.ErrDimensionMismatch)
	}
	targets, err := EncodeTargets(net, labels)
	if err != nil {
		return nil, fmt.Errorf("train.Fit: %w", err)
	}
	hist, err := FitVectors(net, inputs, targets, cfg)
	if err != nil {
		return nil, fmt.Errorf("train.Fit: %w", err)
	}
	return hist, nil
}

// FitVectors trains net on already encoded target vectors.
//
// Each target must have OutputDim() values; this is how multi-output
// regression is trained. Validation and failure behavior match Fit.
func FitVectors(net *nn.Network, inputs, targets [][]float64, cfg Config) (*History, error) {
	if err := validate(net, inputs, targets); err != nil {
		return nil, err
	}
	rc, err := cfg.resolve(net, len(inputs))
	if err != nil {
		return nil, err
	}
	opt, err := optim.NewSGD(optim.SGDConfig{LR: rc.stepLR, Momentum: rc.Momentum})
	if err != nil {
		return nil, err
	}

	hist := &History{Epochs: make([]EpochStats, 0, rc.Epochs)}
	for epoch := 1; epoch <= rc.Epochs; epoch++ {
		stats, err := runEpoch(net, opt, inputs, targets, rc.Rand.Perm(len(inputs)))
		if err != nil {
			return hist, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		stats.Epoch = epoch
		hist.Epochs = append(hist.Epochs, stats)

		if rc.Logger != nil && (epoch == 1 || epoch%rc.LogEvery == 0 || epoch == rc.Epochs) {
			rc.Logger.Printf("Epoch %d | Loss: %.6f", epoch, stats.Loss)
		}
	}
	return hist, nil
}

// validate checks every sample against the network before training starts.
func validate(net *nn.Network, inputs, targets [][]float64) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("%d inputs and %d targets: %w", len(inputs), len(targets), nn.ErrDimensionMismatch)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no samples: %w", nn.ErrDimensionMismatch)
	}
	for i := range inputs {
		if len(inputs[i]) != net.InputDim() {
			return fmt.Errorf("sample %d: input has %d features, want %d: %w",
				i, len(inputs[i]), net.InputDim(), nn.ErrDimensionMismatch)
		}
		if len(targets[i]) != net.OutputDim() {
			return fmt.Errorf("sample %d: target has %d values, want %d: %w",
				i, len(targets[i]), net.OutputDim(), nn.ErrDimensionMismatch)
		}
	}
	return nil
}

// runEpoch performs one SGD step per sample in the given order.
func runEpoch(net *nn.Network, opt optim.Optimizer, inputs, targets [][]float64, order []int) (EpochStats, error) {
	var lossSum, normSum float64
	for _, i := range order {
		out, trace, err := net.Forward(inputs[i])
		if err != nil {
			return EpochStats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		loss, err := net.Task().Loss(targets[i], out)
		if err != nil {
			return EpochStats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		grads, err := nn.ComputeGradients(net, trace, targets[i])
		if err != nil {
			return EpochStats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		if err := opt.Step(net, grads); err != nil {
			return EpochStats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		lossSum += loss
		normSum += grads.Norm()
	}
	n := float64(len(order))
	return EpochStats{Loss: lossSum / n, GradNorm: normSum / n}, nil
}
