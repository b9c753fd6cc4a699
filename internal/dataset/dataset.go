// Package dataset loads tabular training data and splits it into train and
// test sets.
//
// A Dataset is a list of feature vectors with one scalar label each. On
// disk it is a CSV file whose last column holds the label.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
)

// Common errors.
var (
	ErrEmptyDataset = errors.New("empty dataset")
	ErrMalformedRow = errors.New("malformed row")
	ErrInvalidSplit = errors.New("invalid split ratio")
)

// Dataset holds feature vectors and their labels.
type Dataset struct {
	Features [][]float64 // [num_samples, num_features]
	Labels   []float64   // [num_samples]
}

// CSVOptions configures LoadCSV.
type CSVOptions struct {
	Header     bool // Skip the first record
	Comma      rune // Field delimiter (default: ',')
	MaxSamples int  // Maximum number of samples to load (0 = load all)
}

// LoadCSV reads a dataset from r.
//
// CSV Format:
//
//	x0,x1,...,label
//	0.5,1.25,...,1
//
// Every record must have the same number of fields, at least two, and every
// field must parse as a float. Returns ErrMalformedRow (with the 1-based
// line number) otherwise and ErrEmptyDataset if no samples remain.
func LoadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 0

	ds := &Dataset{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("dataset.LoadCSV: %w: %w", ErrMalformedRow, err)
			}
			return nil, fmt.Errorf("dataset.LoadCSV: failed to read CSV: %w", err)
		}
		if line == 1 && opts.Header {
			continue
		}
		if opts.MaxSamples > 0 && ds.Len() == opts.MaxSamples {
			break
		}

		features, label, err := parseRecord(record)
		if err != nil {
			pos, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("dataset.LoadCSV: line %d: %w", pos, err)
		}
		ds.Features = append(ds.Features, features)
		ds.Labels = append(ds.Labels, label)
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataset.LoadCSV: %w", ErrEmptyDataset)
	}
	return ds, nil
}

func parseRecord(record []string) ([]float64, float64, error) {
	if len(record) < 2 {
		return nil, 0, fmt.Errorf("%w: %d fields, need at least one feature and a label", ErrMalformedRow, len(record))
	}
	values := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: column %d: %w", ErrMalformedRow, i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, 0, fmt.Errorf("%w: column %d: non-finite value %q", ErrMalformedRow, i+1, field)
		}
		values[i] = v
	}
	last := len(values) - 1
	return values[:last:last], values[last], nil
}

// LoadCSVFile opens filename and reads it with LoadCSV.
func LoadCSVFile(filename string, opts CSVOptions) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dataset.LoadCSVFile: failed to open file: %w", err)
	}
	defer file.Close()

	return LoadCSV(file, opts)
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Labels)
}

// NumFeatures returns the width of the feature vectors, or 0 for an empty dataset.
func (d *Dataset) NumFeatures() int {
	if len(d.Features) == 0 {
		return 0
	}
	return len(d.Features[0])
}

// Split divides the dataset into a training set holding round(ratio·Len())
// samples and a test set holding the rest.
//
// With a nil rng the split keeps file order. Otherwise the samples are
// shuffled with rng first. The returned datasets share feature vectors with
// d. Returns ErrInvalidSplit if ratio is outside [0, 1].
func (d *Dataset) Split(ratio float64, rng *rand.Rand) (train, test *Dataset, err error) {
	if !(ratio >= 0 && ratio <= 1) {
		return nil, nil, fmt.Errorf("dataset.Split: ratio %v: %w", ratio, ErrInvalidSplit)
	}

	order := make([]int, d.Len())
	for i := range order {
		order[i] = i
	}
	if rng != nil {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	cut := int(math.Round(float64(d.Len()) * ratio))
	return d.subset(order[:cut]), d.subset(order[cut:]), nil
}

func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{
		Features: make([][]float64, len(idx)),
		Labels:   make([]float64, len(idx)),
	}
	for i, j := range idx {
		out.Features[i] = d.Features[j]
		out.Labels[i] = d.Labels[j]
	}
	return out
}
