// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics scores predictions against ground truth.
//
// Binary metrics treat values greater than 0.5 as the positive class, so
// they accept both {0, 1} and {-1, +1} labels.
//
//	acc, err := metrics.Accuracy(yTrue, yPred)
//	f1, err := metrics.F1(yTrue, yPred)
//	cm, err := metrics.ConfusionMatrix(yTrue, yPred, 3)
package metrics

import (
	"github.com/born-ml/mlp/internal/metrics"
	"gonum.org/v1/gonum/mat"
)

// Errors returned by the metrics.
var (
	ErrDimensionMismatch = metrics.ErrDimensionMismatch
	ErrSingleClass       = metrics.ErrSingleClass
)

// Accuracy returns the fraction of predictions equal to their label.
func Accuracy(yTrue, yPred []float64) (float64, error) { return metrics.Accuracy(yTrue, yPred) }

// ThresholdAccuracy compares {0, 1} labels with predictions binarized at threshold.
func ThresholdAccuracy(yTrue, yPred []float64, threshold float64) (float64, error) {
	return metrics.ThresholdAccuracy(yTrue, yPred, threshold)
}

// MSE returns the mean squared error.
func MSE(yTrue, yPred []float64) (float64, error) { return metrics.MSE(yTrue, yPred) }

// MAE returns the mean absolute error.
func MAE(yTrue, yPred []float64) (float64, error) { return metrics.MAE(yTrue, yPred) }

// Precision returns TP / (TP + FP).
func Precision(yTrue, yPred []float64) (float64, error) { return metrics.Precision(yTrue, yPred) }

// Recall returns TP / (TP + FN).
func Recall(yTrue, yPred []float64) (float64, error) { return metrics.Recall(yTrue, yPred) }

// F1 returns the harmonic mean of precision and recall.
func F1(yTrue, yPred []float64) (float64, error) { return metrics.F1(yTrue, yPred) }

// AUC returns the area under the ROC curve.
func AUC(yTrue, scores []float64) (float64, error) { return metrics.AUC(yTrue, scores) }

// ConfusionMatrix counts predictions per (true class, predicted class).
func ConfusionMatrix(yTrue, yPred []float64, numClasses int) (*mat.Dense, error) {
	return metrics.ConfusionMatrix(yTrue, yPred, numClasses)
}
