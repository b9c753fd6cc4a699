// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feed-forward networks and the
// backpropagation that trains them.
//
// # Overview
//
// This package contains:
//   - Network: layered weights and biases with a traced forward pass
//   - Task heads: Regression, BinaryClassification, MultiClassClassification
//   - Backpropagation: ComputeGradients and ApplyGradients
//   - Activations: Sigmoid, Tanh, ReLU, Sign, Softmax
//   - Loss functions: MSE, BinaryCrossEntropy, CrossEntropy, HingeLoss
//   - Initialization: Uniform, Xavier, Zeros
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/born-ml/mlp/nn"
//	)
//
//	func main() {
//	    net, err := nn.New(nn.Config{
//	        InputDim:  2,
//	        Hidden:    []int{4},
//	        OutputDim: 1,
//	        Task:      nn.BinaryClassification,
//	        Rand:      rand.New(rand.NewPCG(1, 2)),
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    label, err := net.Predict([]float64{0, 1}) // -1 or +1
//	}
//
// # Task Heads
//
// The task type fixes the output activation, the loss and the meaning of
// Predict:
//
//	Regression                identity, half squared error, raw output
//	BinaryClassification      sigmoid, binary cross-entropy, -1 or +1
//	MultiClassClassification  softmax, cross-entropy, class index
//
// # Manual Training Step
//
//	out, trace, err := net.Forward(x)
//	grads, err := nn.ComputeGradients(net, trace, target)
//	err = net.ApplyGradients(grads, 0.01)
//
// Most callers use the train package instead, which runs this step for
// every sample of every epoch.
package nn
