// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ensemble

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/motel/internal/match"
	"github.com/pdiddy/motel/pkg/types"
)

// defaultStrategies is the full strategy set, reported when the config
// names none.
var defaultStrategies = []string{
	types.StrategyDisjunction,
	types.StrategyMajorityVote,
	types.StrategyWeightedVote,
}

// Evaluate aggregates a match image and the evaluation documents' gold
// labels into a performance report. Disjunction and majority-vote yield a
// single static row each; weighted-vote yields one row per (threshold,
// active-learning step) pair, step 0 being the uniform-weight pass.
func Evaluate(img *match.Image, docs []types.Document, cfg types.EnsembleConfig, w io.Writer) (types.Report, error) {
	ens, err := New(img, docs)
	if err != nil {
		return types.Report{}, err
	}

	strategies := cfg.Strategies
	if len(strategies) == 0 {
		strategies = defaultStrategies
	}

	report := types.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Motifs:      img.EvaluatedMotifs(),
		Documents:   len(docs),
	}

	for _, strategy := range strategies {
		switch strategy {
		case types.StrategyDisjunction:
			m := Statistics(ens.Disjunction(), ens.truth)
			report.Rows = append(report.Rows, row(strategy, 0, 0, 0, m))

		case types.StrategyMajorityVote:
			m := Statistics(ens.MajorityVote(), ens.truth)
			report.Rows = append(report.Rows, row(strategy, 0.5, 0, 0, m))

		case types.StrategyWeightedVote:
			report.Rows = append(report.Rows, weightedRows(ens, cfg)...)

		default:
			return types.Report{}, fmt.Errorf("unknown ensemble strategy %q", strategy)
		}
	}

	printReport(w, report)
	return report, nil
}

// weightedRows sweeps the thresholds at step 0 and after each
// active-learning step. The explicit step count is authoritative: the
// loop never stops early, though steps past domain exhaustion reveal
// nothing further.
func weightedRows(ens *Ensemble, cfg types.EnsembleConfig) []types.ReportRow {
	cuts := SweepThresholds(cfg.Thresholds)
	learner := NewLearner(ens, cfg.LearningRate, cfg.Seed)

	var rows []types.ReportRow
	record := func(step int) {
		weights := learner.Weights()
		for _, cut := range cuts {
			m := Statistics(ens.WeightedVote(weights, cut), ens.truth)
			rows = append(rows, row(types.StrategyWeightedVote, cut, step, learner.Revealed(), m))
		}
	}

	record(0)
	for step := 1; step <= cfg.ActiveLearningSteps; step++ {
		learner.Step()
		record(step)
	}
	return rows
}

func row(strategy string, threshold float64, step, revealed int, m Metrics) types.ReportRow {
	return types.ReportRow{
		Strategy:      strategy,
		Threshold:     threshold,
		Step:          step,
		Revealed:      revealed,
		Precision:     m.Precision,
		Recall:        m.Recall,
		F1:            m.F1,
		Predicted:     m.Predicted,
		TruePositives: m.TruePositives,
	}
}

func printReport(w io.Writer, report types.Report) {
	fmt.Fprintf(w, "%-14s  %-9s  %-4s  %-8s  %-9s  %-9s  %-9s\n",
		"Strategy", "Threshold", "Step", "Revealed", "Precision", "Recall", "F1")
	for _, r := range report.Rows {
		fmt.Fprintf(w, "%-14s  %-9.3f  %-4d  %-8d  %-9.3f  %-9.3f  %-9.3f\n",
			r.Strategy, r.Threshold, r.Step, r.Revealed, r.Precision, r.Recall, r.F1)
	}
	fmt.Fprintf(w, "\n%d rows over %d motifs and %d documents\n",
		len(report.Rows), report.Motifs, report.Documents)
}
