package nn

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Config holds the construction parameters of a Network.
//
// Zero values select defaults: learning rate 0.01, 1000 epochs, sigmoid hidden
// activation, uniform initialization with bound 0.5 and a randomly seeded
// random source.
type Config struct {
	InputDim  int   // Number of input features
	Hidden    []int // Hidden layer widths, input side first; may be empty
	OutputDim int   // Number of outputs
	Task      TaskType

	LearningRate float64 // Default learning rate used by training (default: 0.01)
	Epochs       int     // Default epoch count used by training (default: 1000)

	HiddenActivation Activation // ActSigmoid (default) or ActTanh
	Init             Init       // Weight initialization scheme (default: InitUniform)
	InitBound        float64    // Half-width for InitUniform (default: 0.5)

	// Rand is the only source of randomness used to initialize weights.
	// Pass a seeded generator for reproducible networks.
	Rand *rand.Rand
}

// Network is a fully connected feed-forward network.
//
// Layer l maps Topology()[l] values to Topology()[l+1] values. Hidden layers
// share one saturating activation; the output activation is chosen by the
// TaskType. The network exclusively owns its parameters: every accessor
// returns a copy, and only ApplyGradients and SetLayer modify them.
//
// Forward and the Predict methods never modify the network and may be called
// concurrently with each other, but not concurrently with training.
//
// Example:
//
//	net, err := nn.New(nn.Config{
//	    InputDim:  2,
//	    Hidden:    []int{4},
//	    OutputDim: 1,
//	    Task:      nn.BinaryClassification,
//	    Rand:      rand.New(rand.NewPCG(1, 2)),
//	})
//	label, err := net.Predict([]float64{0, 1}) // -1 or +1
type Network struct {
	shape  tensor.Shape
	layers []*layer
	task   TaskType
	hidden Activation
	lr     float64
	epochs int
}

// New creates a Network from cfg.
//
// Returns ErrInvalidTopology when a width is not positive or the output
// width does not suit the task, and ErrInvalidConfig for a negative learning
// rate or epoch count or a non-saturating hidden activation.
func New(cfg Config) (*Network, error) {
	shape := make(tensor.Shape, 0, len(cfg.Hidden)+2)
	shape = append(shape, cfg.InputDim)
	shape = append(shape, cfg.Hidden...)
	shape = append(shape, cfg.OutputDim)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("nn.New: %w: %w", ErrInvalidTopology, err)
	}
	if err := cfg.Task.validateOutput(cfg.OutputDim); err != nil {
		return nil, fmt.Errorf("nn.New: %w", err)
	}

	if cfg.LearningRate < 0 {
		return nil, fmt.Errorf("nn.New: learning rate %v: %w", cfg.LearningRate, ErrInvalidConfig)
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.Epochs < 0 {
		return nil, fmt.Errorf("nn.New: epochs %d: %w", cfg.Epochs, ErrInvalidConfig)
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 1000
	}
	if cfg.HiddenActivation == 0 {
		cfg.HiddenActivation = ActSigmoid
	}
	if !cfg.HiddenActivation.validHidden() {
		return nil, fmt.Errorf("nn.New: hidden activation %v: %w", cfg.HiddenActivation, ErrInvalidConfig)
	}
	if cfg.InitBound < 0 {
		return nil, fmt.Errorf("nn.New: init bound %v: %w", cfg.InitBound, ErrInvalidConfig)
	}
	if cfg.InitBound == 0 {
		cfg.InitBound = 0.5
	}
	rng := cfg.Rand
	if rng == nil {
		//nolint:gosec // Weight initialization is not security-critical.
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	layers := make([]*layer, len(shape)-1)
	for i := range layers {
		layers[i] = newLayer(shape[i], shape[i+1], cfg.Init, cfg.InitBound, rng)
	}

	return &Network{
		shape:  shape,
		layers: layers,
		task:   cfg.Task,
		hidden: cfg.HiddenActivation,
		lr:     cfg.LearningRate,
		epochs: cfg.Epochs,
	}, nil
}

// Construct is the positional form of New with default epochs, activation
// and initialization.
func Construct(inputDim int, hidden []int, outputDim int, learningRate float64, task TaskType, rng *rand.Rand) (*Network, error) {
	return New(Config{
		InputDim:     inputDim,
		Hidden:       hidden,
		OutputDim:    outputDim,
		Task:         task,
		LearningRate: learningRate,
		Rand:         rng,
	})
}

// Forward runs input through every layer.
//
// Returns the output vector and the trace needed by ComputeGradients for
// this sample. Fails with ErrDimensionMismatch if len(input) != InputDim().
func (n *Network) Forward(input []float64) ([]float64, *Trace, error) {
	if len(input) != n.shape[0] {
		return nil, nil, fmt.Errorf("Network.Forward: input has %d features, want %d: %w",
			len(input), n.shape[0], ErrDimensionMismatch)
	}

	trace := newTrace(n.shape, input)
	a := trace.Input()
	for i, l := range n.layers {
		z, err := l.affine(a)
		if err != nil {
			return nil, nil, fmt.Errorf("Network.Forward: layer %d: %w", i, err)
		}
		a = n.activationAt(i).apply(z)
		trace.record(z, a)
	}

	return slices.Clone(a), trace, nil
}

// activationAt returns the activation applied after layer i.
func (n *Network) activationAt(i int) Activation {
	if i == len(n.layers)-1 {
		return n.task.OutputActivation()
	}
	return n.hidden
}

// PredictVector returns the raw output: values for regression, the sigmoid
// probability for binary classification and class probabilities for
// multi-class classification.
func (n *Network) PredictVector(input []float64) ([]float64, error) {
	out, _, err := n.Forward(input)
	return out, err
}

// Predict returns a decoded prediction, see TaskType.Decode.
func (n *Network) Predict(input []float64) (float64, error) {
	out, _, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	return n.task.Decode(out), nil
}

// PredictBatch predicts every input, fanning the work out over CPU cores.
func (n *Network) PredictBatch(inputs [][]float64) ([]float64, error) {
	preds := make([]float64, len(inputs))
	err := parallel.ForErr(len(inputs), func(i int) error {
		p, err := n.Predict(inputs[i])
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		preds[i] = p
		return nil
	}, parallel.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("Network.PredictBatch: %w", err)
	}
	return preds, nil
}

// ValidateGradients checks that grads has one entry per layer with
// parameter-shaped weight and bias gradients.
func (n *Network) ValidateGradients(grads Gradients) error {
	if len(grads) != len(n.layers) {
		return fmt.Errorf("%d layer gradients for %d layers: %w", len(grads), len(n.layers), ErrDimensionMismatch)
	}
	for i, l := range n.layers {
		if err := l.checkGradient(grads[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// ApplyGradients performs W -= lr·∂W and b -= lr·∂b on every layer.
//
// All gradients are validated before any parameter changes, so on error the
// network is left untouched.
func (n *Network) ApplyGradients(grads Gradients, lr float64) error {
	if err := n.ValidateGradients(grads); err != nil {
		return fmt.Errorf("Network.ApplyGradients: %w", err)
	}
	for i, l := range n.layers {
		l.descend(grads[i], lr)
	}
	return nil
}

// SetLayer replaces the parameters of layer l with copies of weights
// ([out, in]) and bias ([out]).
func (n *Network) SetLayer(l int, weights mat.Matrix, bias []float64) error {
	if l < 0 || l >= len(n.layers) {
		return fmt.Errorf("Network.SetLayer: layer %d outside [0, %d): %w", l, len(n.layers), ErrDimensionMismatch)
	}
	target := n.layers[l]
	if r, c := weights.Dims(); r != target.out || c != target.in {
		return fmt.Errorf("Network.SetLayer: weights [%d %d], want [%d %d]: %w", r, c, target.out, target.in, ErrDimensionMismatch)
	}
	if len(bias) != target.out {
		return fmt.Errorf("Network.SetLayer: bias has %d values, want %d: %w", len(bias), target.out, ErrDimensionMismatch)
	}
	target.weights.Copy(weights)
	copy(target.bias.RawVector().Data, bias)
	return nil
}

// Topology returns the layer widths, input first.
func (n *Network) Topology() []int {
	return n.shape.Clone()
}

// InputDim returns the number of input features.
func (n *Network) InputDim() int {
	return n.shape[0]
}

// OutputDim returns the number of outputs.
func (n *Network) OutputDim() int {
	return n.shape[len(n.shape)-1]
}

// NumLayers returns the number of weight layers (hidden layers + 1).
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Task returns the task type.
func (n *Network) Task() TaskType {
	return n.task
}

// HiddenActivation returns the activation used by hidden layers.
func (n *Network) HiddenActivation() Activation {
	return n.hidden
}

// LearningRate returns the default learning rate for training.
func (n *Network) LearningRate() float64 {
	return n.lr
}

// Epochs returns the default epoch count for training.
func (n *Network) Epochs() int {
	return n.epochs
}

// NumParameters returns the number of trainable weights and biases.
func (n *Network) NumParameters() int {
	return n.shape.NumElements()
}

// LayerWeights returns a copy of layer l's [out, in] weight matrix.
//
// Panics if l is out of bounds.
func (n *Network) LayerWeights(l int) *mat.Dense {
	if l < 0 || l >= len(n.layers) {
		panic("Network.LayerWeights: index out of bounds")
	}
	return mat.DenseCopyOf(n.layers[l].weights)
}

// LayerBias returns a copy of layer l's bias vector.
//
// Panics if l is out of bounds.
func (n *Network) LayerBias(l int) []float64 {
	if l < 0 || l >= len(n.layers) {
		panic("Network.LayerBias: index out of bounds")
	}
	return slices.Clone(n.layers[l].bias.RawVector().Data)
}

// FlattenedWeights returns all parameters as one vector: for each layer,
// its weights in row-major [out][in] order followed by its biases.
func (n *Network) FlattenedWeights() []float64 {
	flat := make([]float64, 0, n.NumParameters())
	for _, l := range n.layers {
		flat = tensor.Flatten(flat, l.weights)
		flat = append(flat, l.bias.RawVector().Data...)
	}
	return flat
}
