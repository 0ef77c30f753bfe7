// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReportRow is one measurement of one strategy at one operating point.
type ReportRow struct {
	// Strategy is the ensemble rule: disjunction, majority-vote, or
	// weighted-vote.
	Strategy string `json:"strategy" yaml:"strategy"`

	// Threshold is the decision cut the row was measured at. Disjunction
	// reports 0; majority-vote reports its fixed 0.5 cut.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Step is the active-learning step the measurement was taken at.
	// Step 0 is the static pass before any label is revealed.
	Step int `json:"step" yaml:"step"`

	// Revealed is the number of labels revealed up to and including Step.
	Revealed int `json:"revealed" yaml:"revealed"`

	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`

	// Predicted is the size of the positive-prediction set.
	Predicted int `json:"predicted" yaml:"predicted"`

	// TruePositives counts predictions that are in the ground truth.
	TruePositives int `json:"true_positives" yaml:"true_positives"`
}

// Report is the performance report produced by the evaluate stage.
type Report struct {
	RunID       string      `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Motifs      int         `json:"motifs" yaml:"motifs"`
	Documents   int         `json:"documents" yaml:"documents"`
	Rows        []ReportRow `json:"rows" yaml:"rows"`
}
