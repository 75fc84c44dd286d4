// Package forest implements a seeded random-forest binary classifier
// together with a train/test split and classification metrics.
package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var ErrNoTrainingData = errors.New("no training data")

type Options struct {
	// Trees is the ensemble size.
	Trees int
	// Seed drives bootstrap sampling and feature selection.
	Seed uint64
	// MaxFeatures per split; 0 means floor(sqrt(features)).
	MaxFeatures int
	// MinSamplesSplit is the smallest node that is still split.
	MinSamplesSplit int
}

func DefaultOptions() Options {
	return Options{
		Trees:           100,
		Seed:            42,
		MinSamplesSplit: 2,
	}
}

// Forest is an in-memory ensemble. It is never persisted.
type Forest struct {
	trees     []*node
	nFeatures int
}

// Train fits opts.Trees bootstrap trees on x/y. y holds 0 or 1.
func Train(x [][]float64, y []int, opts Options) (*Forest, error) {
	if len(x) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("train: %d rows but %d labels", len(x), len(y))
	}
	nFeatures := len(x[0])
	if nFeatures == 0 {
		return nil, fmt.Errorf("train: rows have no features")
	}
	for i, row := range x {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("train: row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}

	if opts.Trees <= 0 {
		opts.Trees = DefaultOptions().Trees
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = max(1, int(math.Sqrt(float64(nFeatures))))
	}
	if opts.MinSamplesSplit < 2 {
		opts.MinSamplesSplit = 2
	}

	f := &Forest{trees: make([]*node, 0, opts.Trees), nFeatures: nFeatures}
	n := len(x)
	for t := 0; t < opts.Trees; t++ {
		rng := rand.New(rand.NewPCG(opts.Seed, uint64(t)))

		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.IntN(n)
		}

		b := &treeBuilder{
			x:           x,
			y:           y,
			maxFeatures: opts.MaxFeatures,
			minSplit:    opts.MinSamplesSplit,
			rng:         rng,
		}
		f.trees = append(f.trees, b.build(sample))
	}
	return f, nil
}

// Features is the row width the forest was trained on.
func (f *Forest) Features() int {
	return f.nFeatures
}

// Proba returns the mean per-tree probability of class 1.
func (f *Forest) Proba(row []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees))
}

// Predict returns 1 when class 1 is strictly more probable, else 0.
func (f *Forest) Predict(row []float64) int {
	if f.Proba(row) > 0.5 {
		return 1
	}
	return 0
}

func (f *Forest) PredictAll(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = f.Predict(row)
	}
	return out
}
