// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ensemble turns a match image and gold labels into extraction
// decisions and performance metrics. Individual motifs are weak
// predictors; the ensemble combines their firings under disjunction,
// majority-vote, and weighted-vote rules, with an optional
// active-learning loop refining the weighted vote.
package ensemble

import (
	"fmt"
	"math"

	"github.com/pdiddy/motel/internal/match"
	"github.com/pdiddy/motel/pkg/types"
)

// Ensemble holds the 0/1 inclusion matrix between the image's domain
// points and its firing motifs, plus the ground truth of the evaluation
// documents.
type Ensemble struct {
	domain   []types.Point
	index    map[types.Point]int
	motifIDs []string

	// inclusion[p][m] reports whether motif m fires at domain point p.
	inclusion [][]bool

	// docFiring counts, per document, the motifs firing anywhere in it.
	docFiring map[string]int

	truth map[types.Point]bool
}

// New builds an ensemble over the image's domain. Every document the
// image references must be present in docs; otherwise the artifacts are
// inconsistent and the error wraps types.ErrEvaluationMismatch.
func New(img *match.Image, docs []types.Document) (*Ensemble, error) {
	known := make(map[string]bool, len(docs))
	truth := map[types.Point]bool{}
	for _, doc := range docs {
		known[doc.ID] = true
		for _, p := range doc.GoldPoints() {
			truth[p] = true
		}
	}
	for _, rec := range img.Records() {
		if !known[rec.DocumentID] {
			return nil, fmt.Errorf("image references document %s absent from the document set: %w",
				rec.DocumentID, types.ErrEvaluationMismatch)
		}
	}

	domain := img.Domain()
	index := make(map[types.Point]int, len(domain))
	for i, p := range domain {
		index[p] = i
	}

	motifIDs := img.MotifIDs()
	inclusion := make([][]bool, len(domain))
	for i := range inclusion {
		inclusion[i] = make([]bool, len(motifIDs))
	}
	docFiring := map[string]int{}
	for m, id := range motifIDs {
		docs := map[string]bool{}
		for _, p := range img.Row(id) {
			inclusion[index[p]][m] = true
			docs[p.DocumentID] = true
		}
		for docID := range docs {
			docFiring[docID]++
		}
	}

	return &Ensemble{
		domain:    domain,
		index:     index,
		motifIDs:  motifIDs,
		inclusion: inclusion,
		docFiring: docFiring,
		truth:     truth,
	}, nil
}

// Domain returns the points classified by the ensemble, in canonical
// order. Points outside the domain are always predicted negative.
func (e *Ensemble) Domain() []types.Point {
	return e.domain
}

// Size returns the number of firing motifs in the ensemble.
func (e *Ensemble) Size() int {
	return len(e.motifIDs)
}

// Truth returns the gold-positive point set of the evaluation documents.
func (e *Ensemble) Truth() map[types.Point]bool {
	return e.truth
}

// fires counts the motifs firing at domain index i.
func (e *Ensemble) fires(i int) int {
	count := 0
	for _, fired := range e.inclusion[i] {
		if fired {
			count++
		}
	}
	return count
}

// Disjunction predicts positive wherever any motif fires — exactly the
// image domain. The weakest evidence requirement and the widest
// prediction set.
func (e *Ensemble) Disjunction() map[types.Point]bool {
	predicted := make(map[types.Point]bool, len(e.domain))
	for _, p := range e.domain {
		predicted[p] = true
	}
	return predicted
}

// MajorityVote predicts positive where at least half of the motifs that
// fire anywhere in the point's document fire at the point itself. The
// inclusive cut keeps the strategy lattice monotone: every majority
// positive is a disjunction positive, and every uniform weighted-vote
// positive at threshold >= 0.5 is a majority positive.
func (e *Ensemble) MajorityVote() map[types.Point]bool {
	predicted := map[types.Point]bool{}
	for i, p := range e.domain {
		firing := e.docFiring[p.DocumentID]
		if firing == 0 {
			continue
		}
		share := float64(e.fires(i)) / float64(firing)
		if share >= 0.5 {
			predicted[p] = true
		}
	}
	return predicted
}

// WeightedVote predicts positive where the weight share of firing motifs
// reaches the threshold. weights must align with the ensemble's motifs;
// use UniformWeights for the static pass.
func (e *Ensemble) WeightedVote(weights []float64, threshold float64) map[types.Point]bool {
	predicted := map[types.Point]bool{}
	for i, p := range e.domain {
		if e.score(i, weights) >= threshold {
			predicted[p] = true
		}
	}
	return predicted
}

// score is the weight share of the motifs firing at domain index i.
func (e *Ensemble) score(i int, weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 0
	}
	sum := 0.0
	for m, fired := range e.inclusion[i] {
		if fired {
			sum += weights[m]
		}
	}
	return sum / total
}

// UniformWeights returns the initial weight vector: every motif weighted
// equally.
func (e *Ensemble) UniformWeights() []float64 {
	if len(e.motifIDs) == 0 {
		return nil
	}
	weights := make([]float64, len(e.motifIDs))
	for i := range weights {
		weights[i] = 1.0 / float64(len(e.motifIDs))
	}
	return weights
}

// SweepThresholds returns n evenly spaced interior cut points across
// [0,1]: i/(n+1) for i = 1..n. Non-positive n collapses to the single
// 0.5 cut.
func SweepThresholds(n int) []float64 {
	if n <= 0 {
		return []float64{0.5}
	}
	cuts := make([]float64, n)
	for i := 1; i <= n; i++ {
		cuts[i-1] = float64(i) / float64(n+1)
	}
	return cuts
}

// renormalize scales weights to sum to one, leaving an all-zero vector
// untouched.
func renormalize(weights []float64) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 || math.IsNaN(total) {
		return
	}
	for i := range weights {
		weights[i] /= total
	}
}
