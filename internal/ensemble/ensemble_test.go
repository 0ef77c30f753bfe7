package ensemble

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/motel/internal/match"
	"github.com/pdiddy/motel/internal/text"
	"github.com/pdiddy/motel/pkg/types"
)

func doc(id, raw string, gold ...int) types.Document {
	return types.Document{ID: id, Tokens: text.Tokenize(raw), Gold: gold}
}

func rec(docID string, pos int, motifID string) types.MatchRecord {
	return types.MatchRecord{DocumentID: docID, Position: pos, MotifID: motifID}
}

func pt(docID string, pos int) types.Point {
	return types.Point{DocumentID: docID, Position: pos}
}

// loadImage builds an image from hand-written records over docs.
func loadImage(t *testing.T, docs []types.Document, records []types.MatchRecord, motifs int) *match.Image {
	t.Helper()
	img, err := match.Load(records, docs, motifs)
	require.NoError(t, err)
	return img
}

func TestNewRejectsUnknownDocument(t *testing.T) {
	docs := []types.Document{doc("a", "the motel is cheap", 1)}
	img := loadImage(t, docs, []types.MatchRecord{rec("a", 1, "m1")}, 1)

	// Drop the document after loading: the ensemble must notice.
	_, err := New(img, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrEvaluationMismatch))
}

func TestDisjunctionIsImageDomain(t *testing.T) {
	docs := []types.Document{doc("a", "the motel is cheap", 1), doc("b", "far away motel here")}
	records := []types.MatchRecord{
		rec("a", 1, "m1"),
		rec("a", 3, "m2"),
		rec("b", 2, "m1"),
	}
	ens, err := New(loadImage(t, docs, records, 2), docs)
	require.NoError(t, err)

	predicted := ens.Disjunction()
	assert.Len(t, predicted, 3)
	assert.True(t, predicted[pt("a", 1)])
	assert.True(t, predicted[pt("a", 3)])
	assert.True(t, predicted[pt("b", 2)])
}

func TestMajorityVote(t *testing.T) {
	docs := []types.Document{doc("a", "the motel is cheap and clean", 1)}
	// Three motifs fire in the document; only position 1 attracts two of
	// them (share 2/3), position 4 attracts one (share 1/3).
	records := []types.MatchRecord{
		rec("a", 1, "m1"),
		rec("a", 1, "m2"),
		rec("a", 4, "m3"),
	}
	ens, err := New(loadImage(t, docs, records, 3), docs)
	require.NoError(t, err)

	predicted := ens.MajorityVote()
	assert.True(t, predicted[pt("a", 1)])
	assert.False(t, predicted[pt("a", 4)])
}

func TestWeightedVoteThresholds(t *testing.T) {
	docs := []types.Document{doc("a", "the motel is cheap", 1)}
	records := []types.MatchRecord{
		rec("a", 1, "m1"),
		rec("a", 1, "m2"),
		rec("a", 3, "m2"),
	}
	ens, err := New(loadImage(t, docs, records, 2), docs)
	require.NoError(t, err)

	weights := ens.UniformWeights()

	// Position 1 has both motifs (share 1.0), position 3 one (share 0.5).
	low := ens.WeightedVote(weights, 0.25)
	assert.Len(t, low, 2)

	mid := ens.WeightedVote(weights, 0.75)
	assert.Len(t, mid, 1)
	assert.True(t, mid[pt("a", 1)])
}

func TestStrategyMonotonicity(t *testing.T) {
	docs := []types.Document{
		doc("a", "the motel is cheap and clean", 1),
		doc("b", "that other motel is far away", 2),
	}
	records := []types.MatchRecord{
		rec("a", 1, "m1"),
		rec("a", 1, "m2"),
		rec("a", 4, "m2"),
		rec("b", 2, "m1"),
		rec("b", 2, "m3"),
		rec("b", 5, "m3"),
	}
	ens, err := New(loadImage(t, docs, records, 3), docs)
	require.NoError(t, err)

	disjunction := ens.Disjunction()
	majority := ens.MajorityVote()
	weights := ens.UniformWeights()

	for p := range majority {
		assert.True(t, disjunction[p], "majority positive %v missing from disjunction", p)
	}
	for _, cut := range []float64{0.5, 0.75, 1.0} {
		for p := range ens.WeightedVote(weights, cut) {
			assert.True(t, majority[p],
				"weighted positive %v at cut %.2f missing from majority", p, cut)
		}
	}
}

func TestStatisticsConventions(t *testing.T) {
	truth := map[types.Point]bool{pt("a", 1): true}

	empty := Statistics(map[types.Point]bool{}, truth)
	assert.Zero(t, empty.Precision, "empty prediction set has precision 0")
	assert.Zero(t, empty.Recall)
	assert.Zero(t, empty.F1)

	noTruth := Statistics(map[types.Point]bool{pt("a", 1): true}, map[types.Point]bool{})
	assert.Zero(t, noTruth.Recall, "empty ground truth has recall 0")

	perfect := Statistics(map[types.Point]bool{pt("a", 1): true}, truth)
	assert.Equal(t, 1.0, perfect.Precision)
	assert.Equal(t, 1.0, perfect.Recall)
	assert.Equal(t, 1.0, perfect.F1)
}

// mixedEnsemble builds a scenario with one reliable and one unreliable
// motif: m-good fires exactly on the gold points, m-bad only on
// negatives. Uniform weights cannot separate them; one revealed label
// can.
func mixedEnsemble(t *testing.T) (*Ensemble, []types.Document) {
	t.Helper()
	docs := []types.Document{
		doc("a", "the motel is cheap and clean", 1),
		doc("b", "that other motel is far away", 2),
	}
	records := []types.MatchRecord{
		rec("a", 1, "m-good"),
		rec("b", 2, "m-good"),
		rec("a", 4, "m-bad"),
		rec("b", 5, "m-bad"),
	}
	ens, err := New(loadImage(t, docs, records, 2), docs)
	require.NoError(t, err)
	return ens, docs
}

func TestLearnerRevealsMonotonically(t *testing.T) {
	ens, _ := mixedEnsemble(t)
	learner := NewLearner(ens, 1.0, 17)

	previous := learner.Revealed()
	for i := 0; i < 6; i++ {
		learner.Step()
		assert.GreaterOrEqual(t, learner.Revealed(), previous)
		previous = learner.Revealed()
	}
	// Domain has 4 points; extra steps reveal nothing further but never
	// regress.
	assert.Equal(t, 4, learner.Revealed())
}

func TestLearnerCorrectsWeightingError(t *testing.T) {
	ens, _ := mixedEnsemble(t)

	uniform := Statistics(ens.WeightedVote(ens.UniformWeights(), 0.5), ens.Truth())

	learner := NewLearner(ens, 1.0, 17)
	learner.Step()
	refined := Statistics(ens.WeightedVote(learner.Weights(), 0.5), ens.Truth())

	// Any single revealed label separates the good motif from the bad
	// one: precision must not regress, and here it strictly improves.
	assert.GreaterOrEqual(t, refined.Precision, uniform.Precision)
	assert.Equal(t, 1.0, refined.Precision)
	assert.Equal(t, 1.0, refined.Recall)
}

func TestLearnerDeterministicForSeed(t *testing.T) {
	ens, _ := mixedEnsemble(t)

	run := func(seed int64) []float64 {
		learner := NewLearner(ens, 1.0, seed)
		learner.Step()
		learner.Step()
		return learner.Weights()
	}

	assert.Equal(t, run(99), run(99), "same seed must reproduce the loop")
}

func TestEvaluateReportShape(t *testing.T) {
	docs := []types.Document{
		doc("a", "the motel is cheap and clean", 1),
		doc("b", "that other motel is far away", 2),
	}
	records := []types.MatchRecord{
		rec("a", 1, "m-good"),
		rec("b", 2, "m-good"),
		rec("a", 4, "m-bad"),
		rec("b", 5, "m-bad"),
	}
	img := loadImage(t, docs, records, 2)

	cfg := types.EnsembleConfig{Thresholds: 3, ActiveLearningSteps: 2, Seed: 1}
	report, err := Evaluate(img, docs, cfg, io.Discard)
	require.NoError(t, err)

	byStrategy := map[string][]types.ReportRow{}
	for _, row := range report.Rows {
		byStrategy[row.Strategy] = append(byStrategy[row.Strategy], row)
		assert.GreaterOrEqual(t, row.Precision, 0.0)
		assert.LessOrEqual(t, row.Precision, 1.0)
		assert.GreaterOrEqual(t, row.Recall, 0.0)
		assert.LessOrEqual(t, row.Recall, 1.0)
	}

	assert.Len(t, byStrategy[types.StrategyDisjunction], 1)
	assert.Len(t, byStrategy[types.StrategyMajorityVote], 1)
	// 3 thresholds x steps {0,1,2}.
	assert.Len(t, byStrategy[types.StrategyWeightedVote], 9)

	steps := map[int]int{}
	for _, row := range byStrategy[types.StrategyWeightedVote] {
		steps[row.Step]++
	}
	assert.Equal(t, map[int]int{0: 3, 1: 3, 2: 3}, steps)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Motifs)
	assert.Equal(t, 2, report.Documents)
}

func TestEvaluateUnknownStrategy(t *testing.T) {
	docs := []types.Document{doc("a", "the motel is cheap", 1)}
	img := loadImage(t, docs, nil, 0)

	_, err := Evaluate(img, docs, types.EnsembleConfig{Strategies: []string{"oracle"}}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestSweepThresholds(t *testing.T) {
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, SweepThresholds(3))
	assert.Equal(t, []float64{0.5}, SweepThresholds(0))
	assert.Equal(t, []float64{0.5}, SweepThresholds(1))
}
