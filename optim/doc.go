// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the update rules used to train networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlp/nn"
//	    "github.com/born-ml/mlp/optim"
//	)
//
//	func main() {
//	    opt, err := optim.NewSGD(optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    })
//
//	    for epoch := range numEpochs {
//	        for i, x := range inputs {
//	            // 1. Forward pass
//	            _, trace, _ := net.Forward(x)
//
//	            // 2. Backward pass
//	            grads, _ := nn.ComputeGradients(net, trace, targets[i])
//
//	            // 3. Update parameters
//	            opt.Step(net, grads)
//	        }
//	    }
//	}
package optim
