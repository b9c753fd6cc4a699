package optim

import (
	"fmt"

	"github.com/born-ml/mlp/internal/nn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Velocity buffers are created on the first step with momentum and are tied
// to the topology of the network they were created for; stepping a network
// with a different topology starts from zero velocity again.
//
// Example:
//
//	opt := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//	grads, err := nn.ComputeGradients(net, trace, target)
//	err = opt.Step(net, grads)
type SGD struct {
	lr         float64
	momentum   float64
	velocities nn.Gradients
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Returns an error wrapping nn.ErrInvalidConfig for a negative learning rate
// or a momentum outside [0, 1).
func NewSGD(config SGDConfig) (*SGD, error) {
	if config.LR < 0 {
		return nil, fmt.Errorf("optim.NewSGD: learning rate %v: %w", config.LR, nn.ErrInvalidConfig)
	}
	if config.Momentum < 0 || config.Momentum >= 1 {
		return nil, fmt.Errorf("optim.NewSGD: momentum %v outside [0, 1): %w", config.Momentum, nn.ErrInvalidConfig)
	}
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
	}, nil
}

// Step performs a single optimization step.
//
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
//
// The gradients are validated against net before anything changes, so a
// failed step leaves both the network and the velocity buffers untouched.
func (s *SGD) Step(net *nn.Network, grads nn.Gradients) error {
	if err := net.ValidateGradients(grads); err != nil {
		return fmt.Errorf("SGD.Step: %w", err)
	}

	if s.momentum == 0 {
		return net.ApplyGradients(grads, s.lr)
	}

	if net.ValidateGradients(s.velocities) != nil {
		s.velocities = zeroLike(grads)
	}
	for i, g := range grads {
		v := &s.velocities[i]
		v.Weights.Scale(s.momentum, v.Weights)
		v.Weights.Add(v.Weights, g.Weights)
		floats.Scale(s.momentum, v.Bias)
		floats.Add(v.Bias, g.Bias)
	}
	return net.ApplyGradients(s.velocities, s.lr)
}

// zeroLike returns zero-valued gradients shaped like g.
func zeroLike(g nn.Gradients) nn.Gradients {
	out := make(nn.Gradients, len(g))
	for i, lg := range g {
		r, c := lg.Weights.Dims()
		out[i] = nn.LayerGradient{
			Weights: mat.NewDense(r, c, nil),
			Bias:    make([]float64, len(lg.Bias)),
		}
	}
	return out
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum factor.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

// Reset discards the velocity buffers.
func (s *SGD) Reset() {
	s.velocities = nil
}

// StateDict returns a copy of the optimizer state.
//
// For SGD with momentum, this exports velocity buffers for each layer,
// weights flattened row-major. Without momentum or before the first step,
// returns an empty map.
//
// State keys: "velocity.{layer}.weights" and "velocity.{layer}.bias".
func (s *SGD) StateDict() map[string][]float64 {
	stateDict := make(map[string][]float64)
	for i, v := range s.velocities {
		stateDict[fmt.Sprintf("velocity.%d.weights", i)] = append([]float64(nil), v.Weights.RawMatrix().Data...)
		stateDict[fmt.Sprintf("velocity.%d.bias", i)] = append([]float64(nil), v.Bias...)
	}
	return stateDict
}

// LoadStateDict restores velocity buffers for net from a StateDict.
//
// Layers missing from stateDict start with zero velocity. Returns an error
// wrapping nn.ErrDimensionMismatch if a buffer does not fit its layer.
func (s *SGD) LoadStateDict(net *nn.Network, stateDict map[string][]float64) error {
	if s.momentum == 0 {
		return nil
	}

	topo := net.Topology()
	velocities := make(nn.Gradients, net.NumLayers())
	for i := range velocities {
		in, out := topo[i], topo[i+1]
		v := nn.LayerGradient{Weights: mat.NewDense(out, in, nil), Bias: make([]float64, out)}

		if w, ok := stateDict[fmt.Sprintf("velocity.%d.weights", i)]; ok {
			if len(w) != in*out {
				return fmt.Errorf("SGD.LoadStateDict: layer %d weights have %d values, want %d: %w",
					i, len(w), in*out, nn.ErrDimensionMismatch)
			}
			copy(v.Weights.RawMatrix().Data, w)
		}
		if b, ok := stateDict[fmt.Sprintf("velocity.%d.bias", i)]; ok {
			if len(b) != out {
				return fmt.Errorf("SGD.LoadStateDict: layer %d bias has %d values, want %d: %w",
					i, len(b), out, nn.ErrDimensionMismatch)
			}
			copy(v.Bias, b)
		}
		velocities[i] = v
	}

	s.velocities = velocities
	return nil
}
