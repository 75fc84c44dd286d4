package forest

import (
	"math"
	"math/rand/v2"
)

// Split is a shuffled partition of row indices.
type Split struct {
	Train []int
	Test  []int
}

// NewSplit shuffles n indices with seed and puts ceil(testFraction*n) of them
// in the test partition.
func NewSplit(n int, testFraction float64, seed uint64) Split {
	if n <= 0 {
		return Split{}
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	nTest := int(math.Ceil(testFraction * float64(n)))
	nTest = min(max(nTest, 0), n)

	return Split{Test: perm[:nTest], Train: perm[nTest:]}
}

// Apply selects the rows of x and y named by idx.
func Apply(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for k, i := range idx {
		xs[k] = x[i]
		ys[k] = y[i]
	}
	return xs, ys
}
