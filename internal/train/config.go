package train

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/nn"
)

// Normalization selects how the learning rate is scaled for a run.
type Normalization int

const (
	// PerSample applies the learning rate unchanged to every per-sample update.
	PerSample Normalization = iota
	// BySampleCount divides the learning rate by the number of training
	// samples, for weights and biases alike, for the whole run.
	BySampleCount
)

// String returns the normalization name.
func (n Normalization) String() string {
	switch n {
	case PerSample:
		return "per-sample"
	case BySampleCount:
		return "by-sample-count"
	default:
		return fmt.Sprintf("Normalization(%d)", int(n))
	}
}

// defaultLogEvery is used when a Logger is set but LogEvery is not.
const defaultLogEvery = 100

// Config holds training parameters.
//
// Zero values select defaults: the network's own epoch count and learning
// rate, per-sample updates, no momentum and a randomly seeded shuffle.
type Config struct {
	Epochs        int           // Passes over the data (default: net.Epochs())
	LearningRate  float64       // Step size (default: net.LearningRate())
	Normalization Normalization // Learning rate scaling (default: PerSample)
	Momentum      float64       // SGD momentum in [0, 1) (default: 0)

	// Rand draws the per-epoch sample order. It is independent of the
	// source used to initialize the network.
	Rand *rand.Rand

	Logger   *log.Logger // Progress output; nil disables logging
	LogEvery int         // Log every N epochs (default: 100)
}

// resolved is a Config with defaults applied.
type resolved struct {
	Config
	stepLR float64
}

func (c Config) resolve(net *nn.Network, samples int) (resolved, error) {
	if c.Epochs < 0 {
		return resolved{}, fmt.Errorf("epochs %d: %w", c.Epochs, nn.ErrInvalidConfig)
	}
	if c.Epochs == 0 {
		c.Epochs = net.Epochs()
	}
	if c.LearningRate < 0 {
		return resolved{}, fmt.Errorf("learning rate %v: %w", c.LearningRate, nn.ErrInvalidConfig)
	}
	if c.LearningRate == 0 {
		c.LearningRate = net.LearningRate()
	}
	if c.LogEvery < 0 {
		return resolved{}, fmt.Errorf("log interval %d: %w", c.LogEvery, nn.ErrInvalidConfig)
	}
	if c.LogEvery == 0 {
		c.LogEvery = defaultLogEvery
	}
	if c.Rand == nil {
		//nolint:gosec // Shuffling is not security-critical.
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	r := resolved{Config: c, stepLR: c.LearningRate}
	switch c.Normalization {
	case PerSample:
	case BySampleCount:
		r.stepLR = c.LearningRate / float64(samples)
	default:
		return resolved{}, fmt.Errorf("normalization %v: %w", c.Normalization, nn.ErrInvalidConfig)
	}
	return r, nil
}
