// Package main provides the mlp command: train and evaluate a multi-layer
// perceptron on a CSV dataset.
//
// Usage:
//
//	mlp -data iris.csv -header -task multiclass -hidden 8 -epochs 2000 -lr 0.05
//	mlp version
//
// The last CSV column holds the label: a value for regression, -1 or +1 for
// binary classification, a class index for multi-class classification.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/train"
	"gonum.org/v1/gonum/mat"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("mlp %s\n", version)
		return
	}

	dataPath := flag.String("data", "", "CSV file, last column is the label (required)")
	header := flag.Bool("header", false, "Skip the first CSV row")
	comma := flag.String("comma", ",", "CSV field delimiter")
	taskName := flag.String("task", "binary", "Task: regression, binary or multiclass")
	hiddenFlag := flag.String("hidden", "4", "Comma-separated hidden layer widths, empty for none")
	classes := flag.Int("classes", 0, "Number of classes for multiclass (0 = infer from labels)")
	activation := flag.String("activation", "sigmoid", "Hidden activation: sigmoid or tanh")
	initName := flag.String("init", "uniform", "Weight init: uniform or xavier")
	lr := flag.Float64("lr", 0.01, "Learning rate")
	epochs := flag.Int("epochs", 1000, "Training epochs")
	momentum := flag.Float64("momentum", 0, "SGD momentum in [0, 1)")
	normalize := flag.Bool("normalize", false, "Divide the learning rate by the number of samples")
	split := flag.Float64("split", 0.8, "Fraction of samples used for training")
	shuffle := flag.Bool("shuffle", true, "Shuffle before splitting")
	seed := flag.Uint64("seed", 42, "Random seed")
	logEvery := flag.Int("log-every", 100, "Log the training loss every N epochs")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	task, err := nn.ParseTaskType(*taskName)
	if err != nil {
		log.Fatalf("Invalid -task: %v", err)
	}
	hidden, err := parseHidden(*hiddenFlag)
	if err != nil {
		log.Fatalf("Invalid -hidden: %v", err)
	}
	act, err := parseActivation(*activation)
	if err != nil {
		log.Fatalf("Invalid -activation: %v", err)
	}
	scheme, err := parseInit(*initName)
	if err != nil {
		log.Fatalf("Invalid -init: %v", err)
	}
	delim, err := parseComma(*comma)
	if err != nil {
		log.Fatalf("Invalid -comma: %v", err)
	}

	fmt.Println("Loading data...")
	ds, err := dataset.LoadCSVFile(*dataPath, dataset.CSVOptions{Header: *header, Comma: delim})
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}
	fmt.Printf("  Samples: %d, features: %d\n", ds.Len(), ds.NumFeatures())

	src := newSources(*seed)
	var splitRand *rand.Rand
	if *shuffle {
		splitRand = src.split
	}
	trainSet, testSet, err := ds.Split(*split, splitRand)
	if err != nil {
		log.Fatalf("Failed to split data: %v", err)
	}
	fmt.Printf("  Train: %d, test: %d\n\n", trainSet.Len(), testSet.Len())

	outputDim := outputWidth(task, *classes, ds.Labels)
	net, err := nn.New(nn.Config{
		InputDim:         ds.NumFeatures(),
		Hidden:           hidden,
		OutputDim:        outputDim,
		Task:             task,
		LearningRate:     *lr,
		Epochs:           *epochs,
		HiddenActivation: act,
		Init:             scheme,
		Rand:             src.init,
	})
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	fmt.Printf("Network: %v (%s, %s hidden), %d parameters\n",
		net.Topology(), net.Task(), net.HiddenActivation(), net.NumParameters())

	norm := train.PerSample
	if *normalize {
		norm = train.BySampleCount
	}
	hist, err := train.Fit(net, trainSet.Features, trainSet.Labels, train.Config{
		Normalization: norm,
		Momentum:      *momentum,
		Rand:          src.shuffle,
		Logger:        log.New(os.Stdout, "", 0),
		LogEvery:      *logEvery,
	})
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	fmt.Printf("Final training loss: %.6f\n\n", hist.Final().Loss)

	report("Train", net, trainSet)
	if testSet.Len() > 0 {
		report("Test", net, testSet)
	}
}

// sources holds an independent random stream per use of randomness.
type sources struct {
	split   *rand.Rand
	init    *rand.Rand
	shuffle *rand.Rand
}

func newSources(seed uint64) sources {
	//nolint:gosec // Reproducible experiments, not security.
	stream := func(n uint64) *rand.Rand {
		return rand.New(rand.NewPCG(seed, (seed^0x5bd1e995)+n))
	}
	return sources{split: stream(0), init: stream(1), shuffle: stream(2)}
}

// outputWidth returns the output layer width for task. CSV labels are
// scalars, so regression always predicts a single value.
func outputWidth(task nn.TaskType, classes int, labels []float64) int {
	if task != nn.MultiClassClassification {
		return 1
	}
	if classes > 0 {
		return classes
	}
	return inferClasses(labels)
}

// report prints the evaluation of net on ds.
func report(name string, net *nn.Network, ds *dataset.Dataset) {
	ev, err := train.Evaluate(net, ds.Features, ds.Labels)
	if err != nil {
		log.Fatalf("%s evaluation failed: %v", name, err)
	}

	fmt.Printf("%s set (%d samples)\n", name, ds.Len())
	fmt.Printf("  Loss:      %.6f\n", ev.Loss)
	switch net.Task() {
	case nn.Regression:
		fmt.Printf("  MSE:       %.6f\n", ev.MSE)
		fmt.Printf("  MAE:       %.6f\n", ev.MAE)
	case nn.BinaryClassification:
		fmt.Printf("  Accuracy:  %.4f\n", ev.Accuracy)
		fmt.Printf("  Precision: %.4f\n", ev.Precision)
		fmt.Printf("  Recall:    %.4f\n", ev.Recall)
		fmt.Printf("  F1:        %.4f\n", ev.F1)
		fmt.Printf("  AUC:       %.4f\n", ev.AUC)
	default:
		fmt.Printf("  Accuracy:  %.4f\n", ev.Accuracy)
	}
	if ev.Confusion != nil {
		fmt.Printf("  Confusion (rows: true, cols: predicted):\n%v\n",
			mat.Formatted(ev.Confusion, mat.Prefix("    "), mat.Squeeze()))
	}
	fmt.Println()
}

func parseHidden(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("layer %d: width %d must be positive", i, w)
		}
		widths[i] = w
	}
	return widths, nil
}

func parseActivation(name string) (nn.Activation, error) {
	switch strings.ToLower(name) {
	case "tanh":
		return nn.ActTanh, nil
	case "sigmoid":
		return nn.ActSigmoid, nil
	default:
		return 0, fmt.Errorf("unknown activation %q", name)
	}
}

func parseInit(name string) (nn.Init, error) {
	switch strings.ToLower(name) {
	case "uniform":
		return nn.InitUniform, nil
	case "xavier":
		return nn.InitXavier, nil
	default:
		return 0, fmt.Errorf("unknown init %q", name)
	}
}

func parseComma(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s)
	}
	return r[0], nil
}

// inferClasses returns one more than the largest label, at least 2.
func inferClasses(labels []float64) int {
	maxLabel := 0
	for _, l := range labels {
		if int(l) > maxLabel {
			maxLabel = int(l)
		}
	}
	return max(maxLabel+1, 2)
}
