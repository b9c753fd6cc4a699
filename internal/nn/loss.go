package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
)

// probabilityEps clamps probabilities away from 0 and 1 before taking logs.
const probabilityEps = 1e-15

// checkPair validates that a loss receives two equally sized, non-empty vectors.
func checkPair(name string, yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%s: %w (%d targets vs %d predictions)", name, ErrDimensionMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("%s: %w (empty input)", name, ErrDimensionMismatch)
	}
	return nil
}

// MSE computes the mean squared error mean((yTrue - yPred)²).
//
// Used for regression reporting. The backward pass works with the half
// sum-of-squares, whose gradient with respect to an identity output is
// exactly yPred - yTrue.
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	diff, err := tensor.Sub(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	sq, err := tensor.Dot(diff, diff)
	if err != nil {
		return 0, err
	}
	return sq / float64(len(yTrue)), nil
}

// BinaryCrossEntropy computes mean(-t·ln p - (1-t)·ln(1-p)).
//
// yTrue holds {0, 1} targets and yPred probabilities in (0, 1); predictions
// are clamped to [1e-15, 1-1e-15].
func BinaryCrossEntropy(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("BinaryCrossEntropy", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, t := range yTrue {
		p := clampProbability(yPred[i])
		sum += -(t*math.Log(p) + (1-t)*math.Log(1-p))
	}
	return sum / float64(len(yTrue)), nil
}

// HingeLoss computes mean(max(0, 1 - t·p)) for ±1 targets.
func HingeLoss(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("HingeLoss", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, t := range yTrue {
		sum += math.Max(0, 1-t*yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

func clampProbability(p float64) float64 {
	return math.Min(math.Max(p, probabilityEps), 1-probabilityEps)
}
