// Package charts computes and renders the dashboard's descriptive charts.
package charts

import (
	"math"
	"sort"

	"defense-dash/internal/dataset"
)

// Bin is one histogram bucket covering [Lo, Hi); the last bin also includes Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram splits values into n equal-width bins over their range.
// A zero-width range is widened to ±0.5 around the single value.
// NaN and infinite values are skipped.
func Histogram(values []float64, n int) []Bin {
	values = finite(values)
	if len(values) == 0 || n <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Box is a five-number summary.
type Box struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	N      int
}

// BoxStats summarizes values using linearly interpolated quantiles.
func BoxStats(values []float64) Box {
	sorted := finite(values)
	if len(sorted) == 0 {
		return Box{}
	}
	sort.Float64s(sorted)

	return Box{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		N:      len(sorted),
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// LabeledBox is the OLQ summary of one Recommended value.
type LabeledBox struct {
	Label string
	Box   Box
}

// OLQByLabel groups OLQ_Score by Recommended in first-seen label order.
func OLQByLabel(t *dataset.Table) []LabeledBox {
	var order []string
	groups := make(map[string][]float64)
	for _, c := range t.Rows {
		if _, ok := groups[c.Recommended]; !ok {
			order = append(order, c.Recommended)
		}
		groups[c.Recommended] = append(groups[c.Recommended], c.OLQScore)
	}

	out := make([]LabeledBox, 0, len(order))
	for _, label := range order {
		out = append(out, LabeledBox{Label: label, Box: BoxStats(groups[label])})
	}
	return out
}

// RegionCount is the number of rows with a given Region and Recommended value.
type RegionCount struct {
	Region string
	Label  string
	Count  int
}

// RegionByLabel counts every region/label pair, zero counts included,
// with regions and labels in first-seen order.
func RegionByLabel(t *dataset.Table) []RegionCount {
	regions := t.Regions()
	var labels []string
	seen := make(map[string]struct{})
	counts := make(map[[2]string]int)
	for _, c := range t.Rows {
		if _, ok := seen[c.Recommended]; !ok {
			seen[c.Recommended] = struct{}{}
			labels = append(labels, c.Recommended)
		}
		counts[[2]string{c.Region, c.Recommended}]++
	}

	out := make([]RegionCount, 0, len(regions)*len(labels))
	for _, r := range regions {
		for _, l := range labels {
			out = append(out, RegionCount{Region: r, Label: l, Count: counts[[2]string{r, l}]})
		}
	}
	return out
}

// SSBScores extracts the SSB_Score column.
func SSBScores(t *dataset.Table) []float64 {
	out := make([]float64, 0, t.Len())
	for _, c := range t.Rows {
		out = append(out, c.SSBScore)
	}
	return out
}
