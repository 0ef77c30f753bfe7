package ensemble

import (
	"math"
	"math/rand"
)

// Learner runs the active-learning loop for the weighted vote: each step
// reveals the true label of the most uncertain unrevealed point and
// applies a multiplicative weight update. Revealed labels accumulate
// monotonically; nothing is ever un-revealed.
type Learner struct {
	ensemble *Ensemble
	weights  []float64
	rate     float64
	rng      *rand.Rand

	revealed map[int]bool
}

// DefaultLearningRate scales weight updates when the config leaves the
// rate unset.
const DefaultLearningRate = 1.0

// NewLearner starts a learner at uniform weights.
func NewLearner(e *Ensemble, rate float64, seed int64) *Learner {
	if rate <= 0 {
		rate = DefaultLearningRate
	}
	return &Learner{
		ensemble: e,
		weights:  e.UniformWeights(),
		rate:     rate,
		rng:      rand.New(rand.NewSource(seed)),
		revealed: map[int]bool{},
	}
}

// Weights returns a copy of the current weight vector.
func (l *Learner) Weights() []float64 {
	weights := make([]float64, len(l.weights))
	copy(weights, l.weights)
	return weights
}

// Revealed returns the number of labels revealed so far.
func (l *Learner) Revealed() int {
	return len(l.revealed)
}

// Step reveals one label and updates the weights. The selected point is
// the unrevealed domain point whose weighted score sits closest to the
// 0.5 decision boundary; ties are broken by the seeded generator. Returns
// false when every domain point is already revealed.
func (l *Learner) Step() bool {
	selected, ok := l.mostUncertain()
	if !ok {
		return false
	}
	l.revealed[selected] = true

	positive := l.ensemble.truth[l.ensemble.domain[selected]]
	factor := math.Exp(l.rate)
	if !positive {
		factor = math.Exp(-l.rate)
	}
	for m, fired := range l.ensemble.inclusion[selected] {
		if fired {
			l.weights[m] *= factor
		}
	}
	renormalize(l.weights)
	return true
}

// mostUncertain picks the unrevealed domain index with minimal distance
// between its score and the 0.5 cut, choosing uniformly among exact ties.
func (l *Learner) mostUncertain() (int, bool) {
	best := -1
	bestMargin := math.Inf(1)
	ties := 0
	for i := range l.ensemble.domain {
		if l.revealed[i] {
			continue
		}
		margin := math.Abs(l.ensemble.score(i, l.weights) - 0.5)
		switch {
		case margin < bestMargin:
			best, bestMargin, ties = i, margin, 1
		case margin == bestMargin:
			// Reservoir choice keeps selection uniform over ties.
			ties++
			if l.rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
