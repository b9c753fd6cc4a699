package nn

import "math"

// CrossEntropy computes the categorical cross-entropy -Σ t_i·ln p_i for one sample.
//
// yTrue is a one-hot (or any probability) vector, yPred the softmax output.
// Predictions are clamped to [1e-15, 1] so a confidently wrong prediction
// yields a large finite loss instead of +Inf.
//
// Paired with a softmax output, the gradient with respect to the
// pre-activations is exactly yPred - yTrue.
func CrossEntropy(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("CrossEntropy", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, t := range yTrue {
		if t == 0 {
			continue
		}
		sum -= t * math.Log(math.Max(yPred[i], probabilityEps))
	}
	return sum, nil
}
