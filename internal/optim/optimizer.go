// Package optim implements the parameter update rules used to train networks.
//
// This package provides:
//   - Optimizer interface: Base interface for update rules
//   - SGD: Stochastic Gradient Descent with optional momentum
//
// Gradients come from nn.ComputeGradients; the optimizer only decides how
// they are turned into a parameter step.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	for epoch := range epochs {
//	    for i, x := range inputs {
//	        _, trace, _ := net.Forward(x)
//	        grads, _ := nn.ComputeGradients(net, trace, targets[i])
//	        if err := opt.Step(net, grads); err != nil {
//	            return err
//	        }
//	    }
//	}
package optim

import (
	"github.com/born-ml/mlp/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update computed from grads to net.
	//
	// grads must hold one entry per layer of net with parameter-shaped
	// weight and bias gradients. On error net is left unchanged.
	Step(net *nn.Network, grads nn.Gradients) error

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
