package train

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/mlp/internal/metrics"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// Evaluation scores a network on labelled data.
//
// Loss is always set. Regression fills MSE and MAE; binary classification
// fills Accuracy, Precision, Recall, F1, AUC and a 2×2 Confusion matrix
// (row/column 0 is -1, 1 is +1); multi-class classification fills Accuracy
// and a [classes, classes] Confusion matrix. Unused fields stay zero, and AUC
// is NaN when the labels contain a single class.
type Evaluation struct {
	Predictions []float64 // Decoded predictions, as returned by Network.Predict
	Loss        float64   // Mean per-sample loss of the task head

	MSE float64
	MAE float64

	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	AUC       float64
	Confusion *mat.Dense
}

// Evaluate runs net on every input in parallel and scores the predictions.
//
// net must not be trained concurrently. Labels follow the conventions of Fit
// and are validated the same way.
func Evaluate(net *nn.Network, inputs [][]float64, labels []float64) (*Evaluation, error) {
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("train.Evaluate: %d inputs and %d labels: %w", len(inputs), len(labels), nn.ErrDimensionMismatch)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("train.Evaluate: no samples: %w", nn.ErrDimensionMismatch)
	}
	targets, err := EncodeTargets(net, labels)
	if err != nil {
		return nil, fmt.Errorf("train.Evaluate: %w", err)
	}

	task := net.Task()
	outputs := make([][]float64, len(inputs))
	losses := make([]float64, len(inputs))
	preds := make([]float64, len(inputs))
	err = parallel.ForErr(len(inputs), func(i int) error {
		out, err := net.PredictVector(inputs[i])
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		loss, err := task.Loss(targets[i], out)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		outputs[i], losses[i], preds[i] = out, loss, task.Decode(out)
		return nil
	}, parallel.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("train.Evaluate: %w", err)
	}

	ev := &Evaluation{Predictions: preds}
	for _, l := range losses {
		ev.Loss += l
	}
	ev.Loss /= float64(len(losses))

	switch task {
	case nn.Regression:
		err = scoreRegression(ev, labels)
	case nn.BinaryClassification:
		err = scoreBinary(ev, labels, outputs)
	case nn.MultiClassClassification:
		err = scoreMultiClass(ev, labels, net.OutputDim())
	}
	if err != nil {
		return nil, fmt.Errorf("train.Evaluate: %w", err)
	}
	return ev, nil
}

func scoreRegression(ev *Evaluation, labels []float64) error {
	var err error
	if ev.MSE, err = metrics.MSE(labels, ev.Predictions); err != nil {
		return err
	}
	ev.MAE, err = metrics.MAE(labels, ev.Predictions)
	return err
}

func scoreBinary(ev *Evaluation, labels []float64, outputs [][]float64) error {
	var err error
	if ev.Accuracy, err = metrics.Accuracy(labels, ev.Predictions); err != nil {
		return err
	}
	if ev.Precision, err = metrics.Precision(labels, ev.Predictions); err != nil {
		return err
	}
	if ev.Recall, err = metrics.Recall(labels, ev.Predictions); err != nil {
		return err
	}
	if ev.F1, err = metrics.F1(labels, ev.Predictions); err != nil {
		return err
	}

	scores := make([]float64, len(outputs))
	for i, out := range outputs {
		scores[i] = out[0]
	}
	ev.AUC, err = metrics.AUC(labels, scores)
	if errors.Is(err, metrics.ErrSingleClass) {
		ev.AUC, err = math.NaN(), nil
	}
	if err != nil {
		return err
	}

	ev.Confusion, err = metrics.ConfusionMatrix(classIndices(labels), classIndices(ev.Predictions), 2)
	return err
}

// classIndices maps -1/+1 labels to confusion matrix indices 0/1.
func classIndices(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x == nn.PositiveLabel {
			out[i] = 1
		}
	}
	return out
}

func scoreMultiClass(ev *Evaluation, labels []float64, classes int) error {
	var err error
	if ev.Accuracy, err = metrics.Accuracy(labels, ev.Predictions); err != nil {
		return err
	}
	ev.Confusion, err = metrics.ConfusionMatrix(labels, ev.Predictions, classes)
	return err
}
