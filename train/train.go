// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs stochastic gradient descent over a dataset and scores
// trained networks.
//
// # Basic Usage
//
//	net, _ := nn.Construct(2, []int{2}, 1, 0.1, nn.BinaryClassification, rng)
//
//	hist, err := train.Fit(net, inputs, labels, train.Config{
//	    Epochs:   2000,
//	    Rand:     rand.New(rand.NewPCG(7, 0)),
//	    Logger:   log.Default(),
//	    LogEvery: 500,
//	})
//
//	ev, err := train.Evaluate(net, inputs, labels)
//	fmt.Printf("loss %.4f accuracy %.2f\n", hist.Final().Loss, ev.Accuracy)
package train

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/train"
)

// Config holds training parameters.
type Config = train.Config

// Normalization selects how the learning rate is scaled for a run.
type Normalization = train.Normalization

// Learning rate normalizations.
const (
	PerSample     = train.PerSample
	BySampleCount = train.BySampleCount
)

// History records per-epoch statistics.
type History = train.History

// EpochStats summarizes one epoch.
type EpochStats = train.EpochStats

// Evaluation scores a network on labelled data.
type Evaluation = train.Evaluation

// Fit trains net on scalar labels.
func Fit(net *nn.Network, inputs [][]float64, labels []float64, cfg Config) (*History, error) {
	return train.Fit(net, inputs, labels, cfg)
}

// FitVectors trains net on encoded target vectors.
func FitVectors(net *nn.Network, inputs, targets [][]float64, cfg Config) (*History, error) {
	return train.FitVectors(net, inputs, targets, cfg)
}

// EncodeTarget converts a label into the target vector of net's task.
func EncodeTarget(net *nn.Network, label float64) ([]float64, error) {
	return train.EncodeTarget(net, label)
}

// Evaluate scores net on inputs and labels.
func Evaluate(net *nn.Network, inputs [][]float64, labels []float64) (*Evaluation, error) {
	return train.Evaluate(net, inputs, labels)
}
