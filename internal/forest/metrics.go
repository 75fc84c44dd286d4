package forest

import (
	"fmt"
	"strings"
)

// ClassNames labels class 0 and class 1 in reports.
var ClassNames = [2]string{"No", "Yes"}

type ClassMetrics struct {
	Name      string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report is a descriptive summary of predictions against truth.
type Report struct {
	Classes     [2]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	// Confusion[i][j] counts rows of true class i predicted as j.
	Confusion [2][2]int
	Total     int
}

// Evaluate builds a report for binary labels. Ratios with a zero
// denominator are reported as 0.
func Evaluate(yTrue, yPred []int) Report {
	var r Report
	n := min(len(yTrue), len(yPred))
	for i := 0; i < n; i++ {
		t, p := clampClass(yTrue[i]), clampClass(yPred[i])
		r.Confusion[t][p]++
	}
	r.Total = n

	correct := r.Confusion[0][0] + r.Confusion[1][1]
	r.Accuracy = ratio(correct, n)

	for c := 0; c < 2; c++ {
		tp := r.Confusion[c][c]
		predicted := r.Confusion[0][c] + r.Confusion[1][c]
		actual := r.Confusion[c][0] + r.Confusion[c][1]

		m := ClassMetrics{
			Name:      ClassNames[c],
			Precision: ratio(tp, predicted),
			Recall:    ratio(tp, actual),
			Support:   actual,
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes[c] = m
	}

	r.MacroAvg = ClassMetrics{Name: "macro avg", Support: n}
	r.WeightedAvg = ClassMetrics{Name: "weighted avg", Support: n}
	for _, m := range r.Classes {
		r.MacroAvg.Precision += m.Precision / 2
		r.MacroAvg.Recall += m.Recall / 2
		r.MacroAvg.F1 += m.F1 / 2
		if n > 0 {
			w := float64(m.Support) / float64(n)
			r.WeightedAvg.Precision += m.Precision * w
			r.WeightedAvg.Recall += m.Recall * w
			r.WeightedAvg.F1 += m.F1 * w
		}
	}
	return r
}

// String renders the report as a fixed-width text table.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s %9s %9s %9s %9s\n\n", "", "precision", "recall", "f1-score", "support")
	for _, m := range r.Classes {
		writeRow(&b, m)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%12s %9s %9s %9.2f %9d\n", "accuracy", "", "", r.Accuracy, r.Total)
	writeRow(&b, r.MacroAvg)
	writeRow(&b, r.WeightedAvg)
	return b.String()
}

// ConfusionString renders the confusion matrix with class labels.
func (r Report) ConfusionString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%8s %8s %8s\n", "", "pred "+ClassNames[0], "pred "+ClassNames[1])
	for i := 0; i < 2; i++ {
		fmt.Fprintf(&b, "%8s %8d %8d\n", ClassNames[i], r.Confusion[i][0], r.Confusion[i][1])
	}
	return b.String()
}

func writeRow(b *strings.Builder, m ClassMetrics) {
	fmt.Fprintf(b, "%12s %9.2f %9.2f %9.2f %9d\n", m.Name, m.Precision, m.Recall, m.F1, m.Support)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func clampClass(v int) int {
	if v != 0 {
		return 1
	}
	return 0
}
