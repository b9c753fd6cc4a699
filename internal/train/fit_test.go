package train

import (
	"bytes"
	"log"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

var (
	gateInputs = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	orLabels   = []float64{-1, 1, 1, 1}
	xorLabels  = []float64{-1, 1, 1, -1}
)

func predictAll(t *testing.T, net *nn.Network, inputs [][]float64) []float64 {
	t.Helper()
	preds, err := net.PredictBatch(inputs)
	require.NoError(t, err)
	return preds
}

func TestFit_OR(t *testing.T) {
	net, err := nn.Construct(2, []int{2}, 1, 0.1, nn.BinaryClassification, seeded(42))
	require.NoError(t, err)

	hist, err := Fit(net, gateInputs, orLabels, Config{Epochs: 3000, Rand: seeded(7)})
	require.NoError(t, err)

	assert.Equal(t, orLabels, predictAll(t, net, gateInputs))
	require.Len(t, hist.Epochs, 3000)
	assert.Less(t, hist.Final().Loss, hist.Epochs[0].Loss)
	assert.Equal(t, 3000, hist.Final().Epoch)
}

// fitXOR trains a 2-2-1 network with default settings on XOR.
func fitXOR(t *testing.T, seed uint64) *nn.Network {
	t.Helper()
	net, err := nn.Construct(2, []int{2}, 1, 0.5, nn.BinaryClassification, seeded(seed))
	require.NoError(t, err)
	require.Equal(t, nn.ActSigmoid, net.HiddenActivation())

	hist, err := Fit(net, gateInputs, xorLabels, Config{Epochs: 5000, Rand: seeded(seed + 100)})
	require.NoError(t, err)
	require.Len(t, hist.Epochs, 5000)
	return net
}

func TestFit_XOR(t *testing.T) {
	net := fitXOR(t, 1)
	assert.Equal(t, xorLabels, predictAll(t, net, gateInputs))

	ev, err := Evaluate(net, gateInputs, xorLabels)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ev.Accuracy, 1e-12)
	assert.Less(t, ev.Loss, 0.05)
}

// TestFit_XORAcrossSeeds checks that the default setup solves XOR for most
// initializations, not just a lucky one.
func TestFit_XORAcrossSeeds(t *testing.T) {
	solved := 0
	for seed := uint64(1); seed <= 10; seed++ {
		if assert.ObjectsAreEqual(xorLabels, predictAll(t, fitXOR(t, seed), gateInputs)) {
			solved++
		}
	}
	assert.GreaterOrEqual(t, solved, 7, "default 2-2-1 setup solved XOR for %d of 10 seeds", solved)
}

// TestFit_XORWithoutHiddenLayer checks that a single affine layer cannot
// separate XOR, however long it trains.
func TestFit_XORWithoutHiddenLayer(t *testing.T) {
	net, err := nn.Construct(2, nil, 1, 0.2, nn.BinaryClassification, seeded(1))
	require.NoError(t, err)

	_, err = Fit(net, gateInputs, xorLabels, Config{Epochs: 2000, Rand: seeded(2)})
	require.NoError(t, err)

	ev, err := Evaluate(net, gateInputs, xorLabels)
	require.NoError(t, err)
	assert.Less(t, ev.Accuracy, 1.0)
}

func TestFit_Regression(t *testing.T) {
	inputs := [][]float64{{1}, {2}, {3}, {4}}
	labels := []float64{2, 4, 6, 8}
	baseline := (4.0 + 16 + 36 + 64) / 4 // MSE of always predicting 0

	net, err := nn.Construct(1, []int{2}, 1, 0.01, nn.Regression, seeded(3))
	require.NoError(t, err)

	hist, err := Fit(net, inputs, labels, Config{Epochs: 5000, Rand: seeded(4)})
	require.NoError(t, err)

	ev, err := Evaluate(net, inputs, labels)
	require.NoError(t, err)
	assert.Less(t, ev.MSE, baseline)
	assert.Less(t, hist.Final().Loss, hist.Epochs[0].Loss)
	assert.InDelta(t, ev.MSE, ev.Loss, 1e-9, "regression loss is the MSE")
}

func blobs() ([][]float64, []float64) {
	centers := [][2]float64{{-2, 0}, {2, 0}, {0, 3}}
	offsets := [][2]float64{{0, 0}, {0.3, 0.3}, {-0.3, 0.3}, {0.3, -0.3}, {-0.3, -0.3}}
	var inputs [][]float64
	var labels []float64
	for class, c := range centers {
		for _, o := range offsets {
			inputs = append(inputs, []float64{c[0] + o[0], c[1] + o[1]})
			labels = append(labels, float64(class))
		}
	}
	return inputs, labels
}

func TestFit_MultiClass(t *testing.T) {
	inputs, labels := blobs()
	net, err := nn.Construct(2, []int{4}, 3, 0.1, nn.MultiClassClassification, seeded(5))
	require.NoError(t, err)

	hist, err := Fit(net, inputs, labels, Config{Epochs: 1000, Rand: seeded(6)})
	require.NoError(t, err)
	assert.Less(t, hist.Final().Loss, hist.Epochs[0].Loss)

	ev, err := Evaluate(net, inputs, labels)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ev.Accuracy, 1e-12)
	assert.Equal(t, labels, ev.Predictions)
	for c := 0; c < 3; c++ {
		assert.Equal(t, 5.0, ev.Confusion.At(c, c))
	}
}

// TestFit_SingleStepMovesTowardTarget uses a 1-1 regression network so the
// effect of one update can be checked exactly.
func TestFit_SingleStepMovesTowardTarget(t *testing.T) {
	net, err := nn.Construct(1, nil, 1, 0.1, nn.Regression, seeded(1))
	require.NoError(t, err)
	require.NoError(t, net.SetLayer(0, mat.NewDense(1, 1, []float64{0.5}), []float64{0}))

	x, target := []float64{1}, 3.0
	before, err := net.Predict(x)
	require.NoError(t, err)

	_, err = Fit(net, [][]float64{x}, []float64{target}, Config{Epochs: 1, Rand: seeded(1)})
	require.NoError(t, err)

	after, err := net.Predict(x)
	require.NoError(t, err)
	// w = 0.5 - 0.1*(0.5-3)*1 = 0.75, b = 0.25
	assert.InDelta(t, 1.0, after, 1e-12)
	assert.Less(t, target-after, target-before)
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name   string
		task   nn.TaskType
		out    int
		inputs [][]float64
		labels []float64
		cfg    Config
		want   error
	}{
		{"length mismatch", nn.Regression, 1, [][]float64{{1, 2}}, []float64{1, 2}, Config{}, nn.ErrDimensionMismatch},
		{"empty", nn.Regression, 1, nil, nil, Config{}, nn.ErrDimensionMismatch},
		{"input width", nn.Regression, 1, [][]float64{{1, 2}, {3}}, []float64{1, 2}, Config{}, nn.ErrDimensionMismatch},
		{"binary zero label", nn.BinaryClassification, 1, gateInputs, []float64{-1, 1, 0, 1}, Config{}, nn.ErrInvalidLabel},
		{"class out of range", nn.MultiClassClassification, 3, gateInputs, []float64{0, 1, 2, 3}, Config{}, nn.ErrInvalidLabel},
		{"fractional class", nn.MultiClassClassification, 3, gateInputs, []float64{0, 1, 2, 0.5}, Config{}, nn.ErrInvalidLabel},
		{"negative epochs", nn.Regression, 1, gateInputs, []float64{1, 2, 3, 4}, Config{Epochs: -1}, nn.ErrInvalidConfig},
		{"negative learning rate", nn.Regression, 1, gateInputs, []float64{1, 2, 3, 4}, Config{LearningRate: -1}, nn.ErrInvalidConfig},
		{"momentum of one", nn.Regression, 1, gateInputs, []float64{1, 2, 3, 4}, Config{Momentum: 1}, nn.ErrInvalidConfig},
		{"unknown normalization", nn.Regression, 1, gateInputs, []float64{1, 2, 3, 4}, Config{Normalization: Normalization(5)}, nn.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := nn.Construct(2, []int{3}, tt.out, 0.1, tt.task, seeded(1))
			require.NoError(t, err)
			before := net.FlattenedWeights()

			tt.cfg.Rand = seeded(2)
			_, err = Fit(net, tt.inputs, tt.labels, tt.cfg)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, net.FlattenedWeights(), "network must be untouched on error")
		})
	}
}

func TestFitVectors_MultiOutputRegression(t *testing.T) {
	inputs := [][]float64{{0}, {0.5}, {1}}
	targets := [][]float64{{0, 1}, {0.5, 0.5}, {1, 0}}

	net, err := nn.Construct(1, []int{4}, 2, 0.05, nn.Regression, seeded(8))
	require.NoError(t, err)

	hist, err := FitVectors(net, inputs, targets, Config{Epochs: 500, Rand: seeded(9)})
	require.NoError(t, err)
	assert.Less(t, hist.Final().Loss, hist.Epochs[0].Loss)

	_, err = FitVectors(net, inputs, [][]float64{{0}, {1}, {2}}, Config{})
	require.ErrorIs(t, err, nn.ErrDimensionMismatch)
}

// TestFit_Reproducible checks that identical seeds give bit-identical runs.
func TestFit_Reproducible(t *testing.T) {
	run := func(shuffleSeed uint64) ([]float64, []float64) {
		net, err := nn.Construct(2, []int{3}, 1, 0.1, nn.BinaryClassification, seeded(11))
		require.NoError(t, err)
		hist, err := Fit(net, gateInputs, xorLabels, Config{Epochs: 50, Rand: seeded(shuffleSeed)})
		require.NoError(t, err)
		return net.FlattenedWeights(), hist.Losses()
	}

	w1, l1 := run(12)
	w2, l2 := run(12)
	w3, _ := run(13)
	assert.Equal(t, w1, w2)
	assert.Equal(t, l1, l2)
	assert.NotEqual(t, w1, w3, "a different shuffle order changes the result")
}

func TestFit_Normalization(t *testing.T) {
	fit := func(samples int, lr float64, norm Normalization) []float64 {
		net, err := nn.Construct(2, []int{2}, 1, 0.1, nn.Regression, seeded(21))
		require.NoError(t, err)
		inputs := [][]float64{{1, 0}, {0, 1}, {1, 1}, {0, 0}}[:samples]
		labels := []float64{1, 2, 3, 0}[:samples]
		_, err = Fit(net, inputs, labels, Config{Epochs: 20, LearningRate: lr, Normalization: norm, Rand: seeded(22)})
		require.NoError(t, err)
		return net.FlattenedWeights()
	}

	// With one sample the two conventions coincide.
	assert.Equal(t, fit(1, 0.1, PerSample), fit(1, 0.1, BySampleCount))

	// Otherwise BySampleCount is PerSample with the learning rate divided by n.
	assert.NotEqual(t, fit(4, 0.1, PerSample), fit(4, 0.1, BySampleCount))
	assert.Equal(t, fit(4, 0.1/4, PerSample), fit(4, 0.1, BySampleCount))
}

func TestFit_Momentum(t *testing.T) {
	fit := func(momentum float64) *History {
		net, err := nn.Construct(2, []int{2}, 1, 0.05, nn.BinaryClassification, seeded(31))
		require.NoError(t, err)
		hist, err := Fit(net, gateInputs, orLabels, Config{Epochs: 100, Momentum: momentum, Rand: seeded(32)})
		require.NoError(t, err)
		return hist
	}

	plain, heavy := fit(0), fit(0.9)
	assert.NotEqual(t, plain.Losses(), heavy.Losses())
	assert.Less(t, heavy.Final().Loss, heavy.Epochs[0].Loss)
}

func TestFit_UsesNetworkDefaults(t *testing.T) {
	net, err := nn.New(nn.Config{InputDim: 1, OutputDim: 1, Epochs: 7, LearningRate: 0.02, Rand: seeded(1)})
	require.NoError(t, err)

	hist, err := Fit(net, [][]float64{{1}}, []float64{1}, Config{Rand: seeded(1)})
	require.NoError(t, err)
	assert.Len(t, hist.Epochs, 7)
}

func TestFit_Logging(t *testing.T) {
	var buf bytes.Buffer
	net, err := nn.Construct(2, []int{2}, 1, 0.1, nn.BinaryClassification, seeded(1))
	require.NoError(t, err)

	_, err = Fit(net, gateInputs, orLabels, Config{
		Epochs:   10,
		LogEvery: 4,
		Rand:     seeded(2),
		Logger:   log.New(&buf, "", 0),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4) // epochs 1, 4, 8, 10
	assert.True(t, strings.HasPrefix(lines[0], "Epoch 1 | Loss: "))
	assert.True(t, strings.HasPrefix(lines[1], "Epoch 4 | Loss: "))
	assert.True(t, strings.HasPrefix(lines[3], "Epoch 10 | Loss: "))
}

func TestHistory(t *testing.T) {
	var h History
	assert.Equal(t, EpochStats{}, h.Final())
	assert.Empty(t, h.Losses())

	h.Epochs = []EpochStats{{Epoch: 1, Loss: 2}, {Epoch: 2, Loss: 1}}
	assert.Equal(t, []float64{2, 1}, h.Losses())
	assert.Equal(t, 2, h.Final().Epoch)
}

func TestEncodeTargets(t *testing.T) {
	net, err := nn.Construct(2, nil, 3, 0.1, nn.MultiClassClassification, seeded(1))
	require.NoError(t, err)

	targets, err := EncodeTargets(net, []float64{2, 0})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0, 1}, {1, 0, 0}}, targets)

	_, err = EncodeTargets(net, []float64{1, 4})
	require.ErrorIs(t, err, nn.ErrInvalidLabel)
	assert.Contains(t, err.Error(), "sample 1")
}
