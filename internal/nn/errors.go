package nn

import (
	"errors"

	"github.com/born-ml/mlp/internal/tensor"
)

// Common errors.
var (
	// ErrDimensionMismatch reports an input, target, trace or parameter whose
	// shape disagrees with the network topology.
	ErrDimensionMismatch = tensor.ErrDimensionMismatch
	ErrInvalidTopology   = errors.New("invalid topology")
	ErrInvalidLabel      = errors.New("invalid label")
	ErrInvalidConfig     = errors.New("invalid config")
)
