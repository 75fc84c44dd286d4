package charts

import (
	"bytes"
	"math"
	"testing"

	"defense-dash/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func loadFixture(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Load("../dataset/testdata/candidates.csv")
	require.NoError(t, err)
	return tbl
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 11, total)
	assert.Equal(t, 0.0, bins[0].Lo)
	assert.Equal(t, 10.0, bins[4].Hi)
	// max lands in the last bin
	assert.Equal(t, 3, bins[4].Count)

	single := Histogram([]float64{7, 7, 7}, 3)
	require.Len(t, single, 3)
	assert.Equal(t, 6.5, single[0].Lo)
	assert.Equal(t, 7.5, single[2].Hi)
	assert.Equal(t, 3, single[1].Count)

	assert.Nil(t, Histogram(nil, 30))
	assert.Nil(t, Histogram([]float64{1}, 0))

	withInf := Histogram([]float64{1, math.NaN(), 2, math.Inf(1), math.Inf(-1), 3}, 2)
	require.Len(t, withInf, 2)
	assert.Equal(t, 1.0, withInf[0].Lo)
	assert.Equal(t, 3.0, withInf[1].Hi)
	assert.Equal(t, 3, withInf[0].Count+withInf[1].Count)
	assert.Nil(t, Histogram([]float64{math.NaN(), math.Inf(1)}, 30))
}

func TestBoxStats(t *testing.T) {
	b := BoxStats([]float64{5, 1, 3, 2, 4})
	assert.Equal(t, Box{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5, N: 5}, b)

	even := BoxStats([]float64{1, 2, 3, 4})
	assert.InDelta(t, 1.75, even.Q1, 1e-9)
	assert.InDelta(t, 2.5, even.Median, 1e-9)
	assert.InDelta(t, 3.25, even.Q3, 1e-9)

	assert.Equal(t, Box{}, BoxStats(nil))
	assert.Equal(t, Box{Min: 1, Q1: 1.5, Median: 2, Q3: 2.5, Max: 3, N: 3}, BoxStats([]float64{3, math.NaN(), 1, 2}))
}

func TestOLQByLabel(t *testing.T) {
	groups := OLQByLabel(loadFixture(t))
	require.Len(t, groups, 2)
	assert.Equal(t, "No", groups[0].Label)
	assert.Equal(t, "Yes", groups[1].Label)
	assert.Equal(t, 10, groups[0].Box.N)
	assert.Equal(t, 10, groups[1].Box.N)
}

func TestRegionByLabel(t *testing.T) {
	counts := RegionByLabel(loadFixture(t))
	require.Len(t, counts, 8)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 20, total)
	assert.Equal(t, RegionCount{Region: "North", Label: "No", Count: 4}, counts[0])
	assert.Equal(t, RegionCount{Region: "North", Label: "Yes", Count: 1}, counts[1])
}

func TestRender(t *testing.T) {
	set, err := Render(loadFixture(t))
	require.NoError(t, err)

	for _, img := range [][]byte{set.SSBHistogram, set.OLQBox, set.RegionCounts} {
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	}
}

func TestRender_Empty(t *testing.T) {
	set, err := Render(&dataset.Table{Header: dataset.Columns})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(set.SSBHistogram, pngMagic))
	assert.True(t, bytes.HasPrefix(set.OLQBox, pngMagic))
	assert.True(t, bytes.HasPrefix(set.RegionCounts, pngMagic))
}

func TestRenderOLQBox_SingleLabel(t *testing.T) {
	tbl := loadFixture(t)
	yes := &dataset.Table{Header: tbl.Header}
	for _, c := range tbl.Rows {
		if c.Recommended == dataset.LabelYes {
			yes.Rows = append(yes.Rows, c)
		}
	}
	require.Len(t, OLQByLabel(yes), 1)

	img, err := RenderOLQBox(yes)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	// a single row has zero spread on both axes
	one := &dataset.Table{Header: tbl.Header, Rows: yes.Rows[:1]}
	set, err := Render(one)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(set.OLQBox, pngMagic))
	assert.True(t, bytes.HasPrefix(set.SSBHistogram, pngMagic))
}
