// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitAndEvaluate(t *testing.T) {
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	labels := []float64{-1, -1, -1, 1} // AND

	net, err := nn.Construct(2, []int{3}, 1, 0.1, nn.BinaryClassification, rand.New(rand.NewPCG(5, 6)))
	require.NoError(t, err)

	hist, err := train.Fit(net, inputs, labels, train.Config{Epochs: 3000, Rand: rand.New(rand.NewPCG(7, 8))})
	require.NoError(t, err)
	assert.Less(t, hist.Final().Loss, hist.Epochs[0].Loss)

	ev, err := train.Evaluate(net, inputs, labels)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ev.Accuracy, 1e-12)
	assert.Equal(t, labels, ev.Predictions)

	target, err := train.EncodeTarget(net, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, target)
}
