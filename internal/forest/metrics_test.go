package forest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	yTrue := []int{1, 1, 1, 0, 0}
	yPred := []int{1, 0, 1, 0, 1}

	r := Evaluate(yTrue, yPred)

	assert.Equal(t, [2][2]int{{1, 1}, {1, 2}}, r.Confusion)
	assert.Equal(t, 5, r.Total)
	assert.InDelta(t, 0.6, r.Accuracy, 1e-9)

	yes := r.Classes[1]
	assert.Equal(t, "Yes", yes.Name)
	assert.InDelta(t, 2.0/3.0, yes.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, yes.Recall, 1e-9)
	assert.Equal(t, 3, yes.Support)

	no := r.Classes[0]
	assert.InDelta(t, 0.5, no.Precision, 1e-9)
	assert.InDelta(t, 0.5, no.Recall, 1e-9)
	assert.InDelta(t, 0.5, no.F1, 1e-9)

	assert.InDelta(t, (0.5+2.0/3.0)/2, r.MacroAvg.Precision, 1e-9)
	assert.InDelta(t, 0.5*0.4+2.0/3.0*0.6, r.WeightedAvg.F1, 1e-9)
}

func TestEvaluate_Empty(t *testing.T) {
	r := Evaluate(nil, nil)
	assert.Zero(t, r.Accuracy)
	assert.Zero(t, r.Total)
	assert.Zero(t, r.WeightedAvg.Precision)
}

func TestReport_String(t *testing.T) {
	r := Evaluate([]int{1, 0}, []int{1, 1})
	out := r.String()

	assert.Contains(t, out, "precision")
	assert.Contains(t, out, "accuracy")
	assert.Contains(t, out, "macro avg")
	assert.Contains(t, out, "weighted avg")

	lines := strings.Split(out, "\n")
	assert.Equal(t, "          No      0.00      0.00      0.00         1", lines[2])
	assert.Equal(t, "         Yes      0.50      1.00      0.67         1", lines[3])

	cm := r.ConfusionString()
	assert.Contains(t, cm, "pred Yes")
}
