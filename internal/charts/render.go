package charts

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"defense-dash/internal/dataset"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width      = 900
	height     = 420
	ssbBins    = 30
	noDataText = "no data"
)

// Set holds the three rendered PNG charts.
type Set struct {
	SSBHistogram []byte
	OLQBox       []byte
	RegionCounts []byte
}

// Render draws every chart for the filtered table.
func Render(t *dataset.Table) (*Set, error) {
	var (
		s   Set
		err error
	)
	if s.SSBHistogram, err = RenderSSBHistogram(t); err != nil {
		return nil, fmt.Errorf("ssb histogram: %w", err)
	}
	if s.OLQBox, err = RenderOLQBox(t); err != nil {
		return nil, fmt.Errorf("olq box plot: %w", err)
	}
	if s.RegionCounts, err = RenderRegionCounts(t); err != nil {
		return nil, fmt.Errorf("region counts: %w", err)
	}
	return &s, nil
}

func labelColor(label string) drawing.Color {
	switch label {
	case dataset.LabelYes:
		return chart.ColorGreen
	case dataset.LabelNo:
		return chart.ColorAlternateGray
	default:
		return chart.ColorBlue
	}
}

// RenderSSBHistogram draws SSB_Score in 30 bins.
func RenderSSBHistogram(t *dataset.Table) ([]byte, error) {
	bins := Histogram(SSBScores(t), ssbBins)

	bars := make([]chart.Value, 0, len(bins))
	maxCount := 0
	for _, b := range bins {
		bars = append(bars, chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.0f", b.Lo),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue},
		})
		maxCount = max(maxCount, b.Count)
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Value: 0, Label: noDataText})
	}

	bc := chart.BarChart{
		Title:      "SSB Score Histogram",
		Width:      width,
		Height:     height,
		BarWidth:   20,
		BarSpacing: 6,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Range: countRange(maxCount)},
		Bars:       bars,
	}
	return renderPNG(bc.Render)
}

// RenderRegionCounts draws one bar per region/label pair.
func RenderRegionCounts(t *dataset.Table) ([]byte, error) {
	counts := RegionByLabel(t)

	bars := make([]chart.Value, 0, len(counts))
	maxCount := 0
	for _, rc := range counts {
		col := labelColor(rc.Label)
		bars = append(bars, chart.Value{
			Value: float64(rc.Count),
			Label: rc.Region + " / " + rc.Label,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
		maxCount = max(maxCount, rc.Count)
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Value: 0, Label: noDataText})
	}

	bc := chart.BarChart{
		Title:      "Region-wise Recommendation",
		Width:      width,
		Height:     height,
		BarWidth:   60,
		BarSpacing: 20,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Range: countRange(maxCount)},
		Bars:       bars,
	}
	return renderPNG(bc.Render)
}

// RenderOLQBox draws a box-and-whisker per Recommended value.
func RenderOLQBox(t *dataset.Table) ([]byte, error) {
	groups := OLQByLabel(t)

	var (
		series []chart.Series
		ticks  []chart.Tick
		lo     = math.Inf(1)
		hi     = math.Inf(-1)
	)
	for i, g := range groups {
		x := float64(i + 1)
		st := chart.Style{StrokeColor: labelColor(g.Label), StrokeWidth: 2}
		b := g.Box

		series = append(series,
			chart.ContinuousSeries{
				Name:    g.Label,
				Style:   st,
				XValues: []float64{x - 0.3, x + 0.3, x + 0.3, x - 0.3, x - 0.3},
				YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
			},
			chart.ContinuousSeries{Style: st, XValues: []float64{x - 0.3, x + 0.3}, YValues: []float64{b.Median, b.Median}},
			chart.ContinuousSeries{Style: st, XValues: []float64{x, x}, YValues: []float64{b.Min, b.Q1}},
			chart.ContinuousSeries{Style: st, XValues: []float64{x, x}, YValues: []float64{b.Q3, b.Max}},
		)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Label})
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
	}

	if len(series) == 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    noDataText,
			Style:   chart.Style{StrokeColor: chart.ColorAlternateGray},
			XValues: []float64{0.5, 1.5},
			YValues: []float64{0, 0},
		})
		ticks = append(ticks, chart.Tick{Value: 1, Label: noDataText})
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05

	// go-chart derives the x-range from the ticks; bound it so one group still has width
	xMax := float64(len(ticks)) + 0.5
	ticks = append([]chart.Tick{{Value: 0.5}}, append(ticks, chart.Tick{Value: xMax})...)

	ch := chart.Chart{
		Title:      "OLQ Score vs Recommendation",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  dataset.ColRecommended,
			Range: &chart.ContinuousRange{Min: 0.5, Max: xMax},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  dataset.ColOLQScore,
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: series,
	}
	return renderPNG(ch.Render)
}

func countRange(maxCount int) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: 0, Max: float64(max(maxCount, 1))}
}

func renderPNG(render func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
