// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Network is a fully connected feed-forward network.
type Network = nn.Network

// Config holds the construction parameters of a Network.
type Config = nn.Config

// Trace records one forward pass for backpropagation.
type Trace = nn.Trace

// LayerGradient holds the loss gradient of one layer.
type LayerGradient = nn.LayerGradient

// Gradients holds one LayerGradient per layer.
type Gradients = nn.Gradients

// New creates a Network from cfg.
//
// Example:
//
//	net, err := nn.New(nn.Config{InputDim: 3, Hidden: []int{8}, OutputDim: 1})
func New(cfg Config) (*Network, error) {
	return nn.New(cfg)
}

// Construct creates a Network from positional arguments.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	net, err := nn.Construct(2, []int{2}, 1, 0.1, nn.BinaryClassification, rng)
func Construct(inputDim int, hidden []int, outputDim int, learningRate float64, task TaskType, rng *rand.Rand) (*Network, error) {
	return nn.Construct(inputDim, hidden, outputDim, learningRate, task, rng)
}

// ComputeGradients backpropagates the error of one sample.
func ComputeGradients(net *Network, trace *Trace, target []float64) (Gradients, error) {
	return nn.ComputeGradients(net, trace, target)
}

// Task heads

// TaskType selects the output head of a network.
type TaskType = nn.TaskType

// Task types.
const (
	Regression               = nn.Regression
	BinaryClassification     = nn.BinaryClassification
	MultiClassClassification = nn.MultiClassClassification
)

// Binary class labels.
const (
	NegativeLabel = nn.NegativeLabel
	PositiveLabel = nn.PositiveLabel
)

// ParseTaskType parses "regression", "binary" or "multiclass".
func ParseTaskType(s string) (TaskType, error) {
	return nn.ParseTaskType(s)
}

// OneHot returns the one-hot encoding of class.
func OneHot(class, dim int) ([]float64, error) {
	return nn.OneHot(class, dim)
}

// ArgMax returns the index of the largest element.
func ArgMax(v []float64) int {
	return nn.ArgMax(v)
}

// Activations

// Activation identifies a layer nonlinearity.
type Activation = nn.Activation

// Activation kinds.
const (
	ActIdentity = nn.ActIdentity
	ActSigmoid  = nn.ActSigmoid
	ActTanh     = nn.ActTanh
	ActSoftmax  = nn.ActSoftmax
)

// Sigmoid computes 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 { return nn.Sigmoid(x) }

// SigmoidDerivativeFromOutput returns s(1-s) for s = Sigmoid(x).
func SigmoidDerivativeFromOutput(s float64) float64 { return nn.SigmoidDerivativeFromOutput(s) }

// Tanh computes the hyperbolic tangent.
func Tanh(x float64) float64 { return nn.Tanh(x) }

// TanhDerivative returns 1 - tanh(x)².
func TanhDerivative(x float64) float64 { return nn.TanhDerivative(x) }

// TanhDerivativeFromOutput returns 1 - t² for t = Tanh(x).
func TanhDerivativeFromOutput(t float64) float64 { return nn.TanhDerivativeFromOutput(t) }

// ReLU computes max(0, x).
func ReLU(x float64) float64 { return nn.ReLU(x) }

// ReLUDerivative returns 1 for x > 0 and 0 otherwise.
func ReLUDerivative(x float64) float64 { return nn.ReLUDerivative(x) }

// Sign returns +1 for x >= 0 and -1 otherwise.
func Sign(x float64) float64 { return nn.Sign(x) }

// Softmax converts v into a probability vector.
func Softmax(v []float64) []float64 { return nn.Softmax(v) }

// Loss Functions

// MSE computes the mean squared error.
func MSE(yTrue, yPred []float64) (float64, error) { return nn.MSE(yTrue, yPred) }

// BinaryCrossEntropy computes the mean binary cross-entropy of {0, 1} targets.
func BinaryCrossEntropy(yTrue, yPred []float64) (float64, error) {
	return nn.BinaryCrossEntropy(yTrue, yPred)
}

// CrossEntropy computes the categorical cross-entropy of one sample.
func CrossEntropy(yTrue, yPred []float64) (float64, error) { return nn.CrossEntropy(yTrue, yPred) }

// HingeLoss computes the mean hinge loss of ±1 targets.
func HingeLoss(yTrue, yPred []float64) (float64, error) { return nn.HingeLoss(yTrue, yPred) }

// Initialization

// Init selects how layer weights are initialized.
type Init = nn.Init

// Weight initialization schemes.
const (
	InitUniform = nn.InitUniform
	InitXavier  = nn.InitXavier
)

// Uniform returns a [rows, cols] matrix drawn from U(-bound, bound).
func Uniform(rng *rand.Rand, rows, cols int, bound float64) *mat.Dense {
	return nn.Uniform(rng, rows, cols, bound)
}

// Xavier returns a [fanOut, fanIn] Glorot-uniform matrix.
func Xavier(rng *rand.Rand, fanIn, fanOut int) *mat.Dense {
	return nn.Xavier(rng, fanIn, fanOut)
}

// Errors

// Common errors.
var (
	ErrDimensionMismatch = nn.ErrDimensionMismatch
	ErrInvalidTopology   = nn.ErrInvalidTopology
	ErrInvalidLabel      = nn.ErrInvalidLabel
	ErrInvalidConfig     = nn.ErrInvalidConfig
)
