package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix counts predictions per (true class, predicted class).
//
// Labels and predictions must be integers in [0, numClasses). Element (i, j)
// of the returned [numClasses, numClasses] matrix is the number of samples of
// class i predicted as class j, so the diagonal holds the correct predictions.
func ConfusionMatrix(yTrue, yPred []float64, numClasses int) (*mat.Dense, error) {
	if err := check("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}
	if numClasses < 1 {
		return nil, fmt.Errorf("metrics.ConfusionMatrix: %d classes: %w", numClasses, ErrDimensionMismatch)
	}

	cm := mat.NewDense(numClasses, numClasses, nil)
	for i, t := range yTrue {
		ti, ok := classIndex(t, numClasses)
		if !ok {
			return nil, fmt.Errorf("metrics.ConfusionMatrix: label %v at %d is not a class in [0, %d): %w", t, i, numClasses, ErrDimensionMismatch)
		}
		pi, ok := classIndex(yPred[i], numClasses)
		if !ok {
			return nil, fmt.Errorf("metrics.ConfusionMatrix: prediction %v at %d is not a class in [0, %d): %w", yPred[i], i, numClasses, ErrDimensionMismatch)
		}
		cm.Set(ti, pi, cm.At(ti, pi)+1)
	}
	return cm, nil
}

func classIndex(v float64, numClasses int) (int, bool) {
	if v != math.Trunc(v) || v < 0 || v >= float64(numClasses) {
		return 0, false
	}
	return int(v), true
}

// DiagonalAccuracy returns the fraction of samples on the diagonal of a
// square confusion matrix.
func DiagonalAccuracy(cm mat.Matrix) float64 {
	total := mat.Sum(cm)
	if total == 0 {
		return 0
	}
	return mat.Trace(cm) / total
}
