package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable: class 1 iff second feature > 50.
func separable(n int) ([][]float64, []int) {
	x := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		v := float64(i * 100 / n)
		x[i] = []float64{float64(20 + i%10), v, float64(i % 7)}
		if v > 50 {
			y[i] = 1
		}
	}
	return x, y
}

func TestTrain_Errors(t *testing.T) {
	_, err := Train(nil, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTrainingData)

	_, err = Train([][]float64{{1}, {2}}, []int{1}, DefaultOptions())
	assert.Error(t, err)

	_, err = Train([][]float64{{1, 2}, {2}}, []int{1, 0}, DefaultOptions())
	assert.Error(t, err)
}

func TestTrain_Separable(t *testing.T) {
	x, y := separable(60)
	opts := DefaultOptions()
	opts.MaxFeatures = 3
	f, err := Train(x, y, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Features())

	preds := f.PredictAll(x)
	r := Evaluate(y, preds)
	assert.GreaterOrEqual(t, r.Accuracy, 0.95)

	assert.Equal(t, 1, f.Predict([]float64{25, 95, 3}))
	assert.Equal(t, 0, f.Predict([]float64{25, 5, 3}))
}

func TestTrain_AllOneClass(t *testing.T) {
	x := [][]float64{{22, 70}, {25, 80}, {19, 45}, {28, 99}}
	y := []int{1, 1, 1, 1}

	f, err := Train(x, y, DefaultOptions())
	require.NoError(t, err)

	for _, row := range [][]float64{{18, 40}, {30, 100}, {0, 0}} {
		assert.Equal(t, 1, f.Predict(row))
		assert.Equal(t, 1.0, f.Proba(row))
	}

	// класса 0 нет ни в истине, ни в предсказаниях
	assert.NotPanics(t, func() {
		r := Evaluate([]int{1, 1}, f.PredictAll(x[:2]))
		assert.Equal(t, 1.0, r.Accuracy)
		assert.Zero(t, r.Classes[0].Support)
		assert.Zero(t, r.Classes[0].Precision)
		_ = r.String()
	})
}

func TestTrain_Deterministic(t *testing.T) {
	x, y := separable(40)
	probe := [][]float64{{21, 49, 1}, {27, 52, 6}, {23, 50, 0}, {29, 51, 2}}

	a, err := Train(x, y, DefaultOptions())
	require.NoError(t, err)
	b, err := Train(x, y, DefaultOptions())
	require.NoError(t, err)

	for _, row := range probe {
		assert.Equal(t, a.Proba(row), b.Proba(row))
	}
}

func TestTrain_ConstantFeatures(t *testing.T) {
	x := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	y := []int{0, 1, 0, 1}

	f, err := Train(x, y, Options{Trees: 5, Seed: 1})
	require.NoError(t, err)
	p := f.Proba([]float64{1, 1})
	assert.True(t, p >= 0 && p <= 1)
}

func TestNewSplit(t *testing.T) {
	s := NewSplit(20, 0.2, 42)
	assert.Len(t, s.Test, 4)
	assert.Len(t, s.Train, 16)

	seen := map[int]bool{}
	for _, i := range append(append([]int{}, s.Train...), s.Test...) {
		assert.False(t, seen[i], "index %d repeated", i)
		seen[i] = true
	}
	assert.Len(t, seen, 20)

	assert.Equal(t, s, NewSplit(20, 0.2, 42))

	// ceil: 0.2*7 = 1.4 -> 2
	assert.Len(t, NewSplit(7, 0.2, 42).Test, 2)

	one := NewSplit(1, 0.2, 42)
	assert.Len(t, one.Test, 1)
	assert.Empty(t, one.Train)

	assert.Equal(t, Split{}, NewSplit(0, 0.2, 42))
}

func TestApply(t *testing.T) {
	x := [][]float64{{0}, {1}, {2}}
	y := []int{0, 1, 0}
	xs, ys := Apply(x, y, []int{2, 1})
	assert.Equal(t, [][]float64{{2}, {1}}, xs)
	assert.Equal(t, []int{0, 1}, ys)
}
