// Package metrics scores predictions against ground truth.
//
// Every function takes (yTrue, yPred) slices of equal, non-zero length and
// returns ErrDimensionMismatch otherwise. Binary metrics treat any value
// greater than 0.5 as the positive class, which works for both {0, 1} and
// {-1, +1} label conventions.
package metrics

import (
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is returned for slices of different or zero length.
var ErrDimensionMismatch = tensor.ErrDimensionMismatch

// Tolerance is the absolute difference under which two labels are equal.
const Tolerance = 1e-6

// positiveCutoff separates positive from negative labels and predictions.
const positiveCutoff = 0.5

func check(name string, yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("metrics.%s: %d targets vs %d predictions: %w", name, len(yTrue), len(yPred), ErrDimensionMismatch)
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("metrics.%s: empty input: %w", name, ErrDimensionMismatch)
	}
	return nil
}

// Accuracy returns the fraction of predictions equal to their label.
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if err := check("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i, t := range yTrue {
		if math.Abs(t-yPred[i]) < Tolerance {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ThresholdAccuracy binarizes yPred at threshold (1 if p >= threshold, else 0)
// and compares it with {0, 1} labels. Useful for raw sigmoid outputs.
func ThresholdAccuracy(yTrue, yPred []float64, threshold float64) (float64, error) {
	if err := check("ThresholdAccuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i, t := range yTrue {
		pred := 0.0
		if yPred[i] >= threshold {
			pred = 1
		}
		if math.Abs(t-pred) < Tolerance {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// MSE returns the mean squared error.
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := check("MSE", yTrue, yPred); err != nil {
		return 0, err
	}
	d := floats.Distance(yTrue, yPred, 2)
	return d * d / float64(len(yTrue)), nil
}

// MAE returns the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := check("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

// counts tallies the binary outcomes.
type counts struct {
	tp, fp, fn int
}

func binaryCounts(yTrue, yPred []float64) counts {
	var c counts
	for i, t := range yTrue {
		pos, predPos := t > positiveCutoff, yPred[i] > positiveCutoff
		switch {
		case pos && predPos:
			c.tp++
		case !pos && predPos:
			c.fp++
		case pos && !predPos:
			c.fn++
		}
	}
	return c
}

// Precision returns TP / (TP + FP), or 0 when nothing was predicted positive.
func Precision(yTrue, yPred []float64) (float64, error) {
	if err := check("Precision", yTrue, yPred); err != nil {
		return 0, err
	}
	return precision(binaryCounts(yTrue, yPred)), nil
}

// Recall returns TP / (TP + FN), or 0 when there are no positive labels.
func Recall(yTrue, yPred []float64) (float64, error) {
	if err := check("Recall", yTrue, yPred); err != nil {
		return 0, err
	}
	return recall(binaryCounts(yTrue, yPred)), nil
}

// F1 returns the harmonic mean of precision and recall, or 0 when both are 0.
func F1(yTrue, yPred []float64) (float64, error) {
	if err := check("F1", yTrue, yPred); err != nil {
		return 0, err
	}
	c := binaryCounts(yTrue, yPred)
	p, r := precision(c), recall(c)
	if p+r < Tolerance {
		return 0, nil
	}
	return 2 * p * r / (p + r), nil
}

func precision(c counts) float64 {
	if c.tp+c.fp == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fp)
}

func recall(c counts) float64 {
	if c.tp+c.fn == 0 {
		return 0
	}
	return float64(c.tp) / float64(c.tp+c.fn)
}
