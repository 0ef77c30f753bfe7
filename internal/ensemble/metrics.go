package ensemble

import "github.com/pdiddy/motel/pkg/types"

// Metrics holds one strategy's performance against the ground truth.
type Metrics struct {
	Precision     float64
	Recall        float64
	F1            float64
	Predicted     int
	TruePositives int
}

// Statistics computes precision, recall, and F1 of a prediction set. An
// empty prediction set has precision 0 and an empty ground truth has
// recall 0 by convention; neither produces NaN.
func Statistics(predicted, truth map[types.Point]bool) Metrics {
	tp := 0
	for p := range predicted {
		if truth[p] {
			tp++
		}
	}

	m := Metrics{Predicted: len(predicted), TruePositives: tp}
	if len(predicted) > 0 {
		m.Precision = float64(tp) / float64(len(predicted))
	}
	if len(truth) > 0 {
		m.Recall = float64(tp) / float64(len(truth))
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
