package nn

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/mlp/internal/tensor"
)

// TaskType selects the output head of a network.
//
// It is fixed at construction and is the single source of truth for the
// output activation, the prediction post-processing, the target encoding
// used in training and the loss reported for monitoring:
//
//	Regression                identity  →  half squared error, raw output
//	BinaryClassification      sigmoid   →  binary cross-entropy, ±1 label
//	MultiClassClassification  softmax   →  cross-entropy, class index
//
// Each pairing makes the output-layer error signal a_L - target.
type TaskType int

// Task types.
const (
	Regression TaskType = iota
	BinaryClassification
	MultiClassClassification
)

// Binary class labels. Networks predict these and binary training targets must use them.
const (
	NegativeLabel = -1.0
	PositiveLabel = 1.0
)

// String returns the task name accepted by ParseTaskType.
func (t TaskType) String() string {
	switch t {
	case Regression:
		return "regression"
	case BinaryClassification:
		return "binary"
	case MultiClassClassification:
		return "multiclass"
	default:
		return fmt.Sprintf("TaskType(%d)", int(t))
	}
}

// ParseTaskType parses "regression", "binary" or "multiclass" (case-insensitive).
func ParseTaskType(s string) (TaskType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regression":
		return Regression, nil
	case "binary", "binary-classification":
		return BinaryClassification, nil
	case "multiclass", "multi-class", "multiclass-classification":
		return MultiClassClassification, nil
	default:
		return 0, fmt.Errorf("unknown task type %q: %w", s, ErrInvalidConfig)
	}
}

// IsClassification reports whether the task predicts class labels.
func (t TaskType) IsClassification() bool {
	return t == BinaryClassification || t == MultiClassClassification
}

// OutputActivation returns the activation of the final layer.
func (t TaskType) OutputActivation() Activation {
	switch t {
	case BinaryClassification:
		return ActSigmoid
	case MultiClassClassification:
		return ActSoftmax
	default:
		return ActIdentity
	}
}

// validateOutput checks that outputDim is compatible with the head.
func (t TaskType) validateOutput(outputDim int) error {
	switch t {
	case Regression:
		return nil
	case BinaryClassification:
		if outputDim != 1 {
			return fmt.Errorf("binary classification needs 1 output, got %d: %w", outputDim, ErrInvalidTopology)
		}
		return nil
	case MultiClassClassification:
		if outputDim < 2 {
			return fmt.Errorf("multi-class classification needs at least 2 outputs, got %d: %w", outputDim, ErrInvalidTopology)
		}
		return nil
	default:
		return fmt.Errorf("unknown task %v: %w", t, ErrInvalidTopology)
	}
}

// Decode turns a network output into a prediction.
//
// Regression returns output[0], binary classification returns +1 when the
// sigmoid output is at least 0.5 and -1 otherwise, multi-class returns the
// arg-max index.
func (t TaskType) Decode(output []float64) float64 {
	switch t {
	case BinaryClassification:
		if output[0] >= 0.5 {
			return PositiveLabel
		}
		return NegativeLabel
	case MultiClassClassification:
		return float64(ArgMax(output))
	default:
		return output[0]
	}
}

// EncodeTarget converts a label into the target vector the head trains against.
//
// Regression uses [label] and needs outputDim == 1. Binary classification
// accepts exactly -1 or +1 and maps them to 0 and 1, the range of the
// sigmoid output. Multi-class classification accepts an integer in
// [0, outputDim) and returns its one-hot encoding.
func (t TaskType) EncodeTarget(label float64, outputDim int) ([]float64, error) {
	switch t {
	case Regression:
		if outputDim != 1 {
			return nil, fmt.Errorf("scalar regression label for %d outputs: %w", outputDim, ErrDimensionMismatch)
		}
		return []float64{label}, nil
	case BinaryClassification:
		switch label {
		case PositiveLabel:
			return []float64{1}, nil
		case NegativeLabel:
			return []float64{0}, nil
		default:
			return nil, fmt.Errorf("binary label %v not in {-1, +1}: %w", label, ErrInvalidLabel)
		}
	case MultiClassClassification:
		if label != math.Trunc(label) {
			return nil, fmt.Errorf("class label %v is not an integer: %w", label, ErrInvalidLabel)
		}
		if label < 0 || label >= float64(outputDim) {
			return nil, fmt.Errorf("class label %v outside [0, %d): %w", label, outputDim, ErrInvalidLabel)
		}
		return OneHot(int(label), outputDim)
	default:
		return nil, fmt.Errorf("unknown task %v: %w", t, ErrInvalidConfig)
	}
}

// Loss returns the monitoring loss of one sample for this head:
// MSE for regression, binary cross-entropy and categorical cross-entropy
// for the classification heads. target is an encoded target vector.
func (t TaskType) Loss(target, output []float64) (float64, error) {
	switch t {
	case BinaryClassification:
		return BinaryCrossEntropy(target, output)
	case MultiClassClassification:
		return CrossEntropy(target, output)
	default:
		return MSE(target, output)
	}
}

// OneHot returns a vector of length dim with a single 1 at index class.
func OneHot(class, dim int) ([]float64, error) {
	if class < 0 || class >= dim {
		return nil, fmt.Errorf("class %d outside [0, %d): %w", class, dim, ErrInvalidLabel)
	}
	v := make([]float64, dim)
	v[class] = 1
	return v, nil
}

// ArgMax returns the index of the largest element of v (lowest index on ties).
func ArgMax(v []float64) int {
	return tensor.ArgMax(v)
}
