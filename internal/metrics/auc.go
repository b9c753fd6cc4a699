package metrics

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ErrSingleClass is returned by AUC when the labels hold only one class.
var ErrSingleClass = errors.New("labels contain a single class")

// AUC returns the area under the ROC curve of scores against binary labels.
//
// A label counts as positive when it is greater than 0.5. Tied scores share
// one ROC point, so they contribute half credit. Returns ErrSingleClass
// when the labels are all positive or all negative.
func AUC(yTrue, scores []float64) (float64, error) {
	if err := check("AUC", yTrue, scores); err != nil {
		return 0, err
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case scores[a] < scores[b]:
			return -1
		case scores[a] > scores[b]:
			return 1
		default:
			return 0
		}
	})

	y := make([]float64, len(idx))
	classes := make([]bool, len(idx))
	positives := 0
	for i, j := range idx {
		y[i] = scores[j]
		classes[i] = yTrue[j] > positiveCutoff
		if classes[i] {
			positives++
		}
	}
	if positives == 0 || positives == len(classes) {
		return 0, fmt.Errorf("metrics.AUC: %w", ErrSingleClass)
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
