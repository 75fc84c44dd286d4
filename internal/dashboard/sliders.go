package dashboard

import (
	"math"
	"strconv"
	"strings"

	"defense-dash/internal/dataset"
)

// Slider is one bounded numeric input of the prediction form.
type Slider struct {
	Param   string
	Label   string
	Column  string
	Min     float64
	Max     float64
	Default float64
}

// Sliders follow dataset.FeatureColumns order.
var Sliders = []Slider{
	{Param: "age", Label: "Age", Column: dataset.ColAge, Min: 18, Max: 30, Default: 22},
	{Param: "olq", Label: "OLQ Score", Column: dataset.ColOLQScore, Min: 40, Max: 100, Default: 70},
	{Param: "psych", Label: "Psych Test Score", Column: dataset.ColPsychTest, Min: 20, Max: 80, Default: 60},
	{Param: "gto", Label: "GTO Result", Column: dataset.ColGTOResult, Min: 10, Max: 50, Default: 30},
	{Param: "pi", Label: "PI Marks", Column: dataset.ColPIMarks, Min: 10, Max: 50, Default: 35},
}

// Parse reads a slider value; blanks and garbage give the default,
// out-of-range values are clamped.
func (s Slider) Parse(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return s.Default
	}
	return math.Min(math.Max(v, s.Min), s.Max)
}

// DefaultProbe is the feature vector of all slider defaults.
func DefaultProbe() []float64 {
	out := make([]float64, len(Sliders))
	for i, s := range Sliders {
		out[i] = s.Default
	}
	return out
}

// ParseProbe builds a feature vector from a parameter lookup such as url.Values.Get.
func ParseProbe(get func(string) string) []float64 {
	out := make([]float64, len(Sliders))
	for i, s := range Sliders {
		out[i] = s.Parse(get(s.Param))
	}
	return out
}
