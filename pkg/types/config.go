package types

// NeighborhoodConfig holds settings for the neighborhood extraction stage.
type NeighborhoodConfig struct {
	// Window is the number of tokens kept on each side of an anchor
	// (default 2). Anchors closer than Window to a document edge are
	// skipped and counted.
	Window int `json:"window" yaml:"window"`
}

// StrategySample is the randomized sampling search over the
// generalization lattice. The only enumeration strategy currently
// implemented.
const StrategySample = "sample"

// EnumerationConfig holds settings for the motif enumeration stage.
type EnumerationConfig struct {
	// Strategy selects the search strategy (default "sample").
	Strategy string `json:"strategy" yaml:"strategy"`

	// SampleGoal is the maximum number of motifs to return. The result
	// may be smaller when the generalization space is exhausted first.
	SampleGoal int `json:"sample_goal" yaml:"sample_goal"`

	// Seed seeds the sampling generator. Runs with the same seed and
	// inputs produce identical motif sets.
	Seed int64 `json:"seed" yaml:"seed"`

	// MaxTrialsPerMotif bounds the sampling budget: the search stops
	// after MaxTrialsPerMotif * SampleGoal generalization trials even if
	// the goal is unmet (default 64).
	MaxTrialsPerMotif int `json:"max_trials_per_motif" yaml:"max_trials_per_motif"`
}

// MatchConfig holds settings for the motif evaluation stage. Matching
// needs no window: motif constraints carry their own offsets.
type MatchConfig struct {
	// Workers is the number of documents evaluated concurrently
	// (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// Ensemble strategy names accepted by EnsembleConfig.Strategies.
const (
	StrategyDisjunction  = "disjunction"
	StrategyMajorityVote = "majority-vote"
	StrategyWeightedVote = "weighted-vote"
)

// EnsembleConfig holds settings for the ensemble evaluation stage.
type EnsembleConfig struct {
	// Strategies lists the aggregation rules to report on. Empty means
	// all of them.
	Strategies []string `json:"strategies" yaml:"strategies"`

	// Thresholds is the number of evenly spaced interior cut points
	// swept by threshold-bearing strategies: cut i is i/(Thresholds+1),
	// so Thresholds=3 sweeps 0.25, 0.50, 0.75.
	Thresholds int `json:"thresholds" yaml:"thresholds"`

	// ActiveLearningSteps is the number of label-revealing refinement
	// iterations for weighted-vote. 0 means a single static pass.
	ActiveLearningSteps int `json:"active_learning_steps" yaml:"active_learning_steps"`

	// Seed seeds uncertainty-selection tie-breaking.
	Seed int64 `json:"seed" yaml:"seed"`

	// LearningRate scales the multiplicative weight updates applied
	// after each revealed label (default 1.0).
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`
}

// PipelineConfig groups all stage configurations. Its yaml layout is
// the schema of the motel.yaml config file the CLI reads.
type PipelineConfig struct {
	Neighborhood NeighborhoodConfig `json:"neighborhood" yaml:"neighborhood"`
	Enumeration  EnumerationConfig  `json:"enumeration" yaml:"enumeration"`
	Match        MatchConfig        `json:"match" yaml:"match"`
	Ensemble     EnsembleConfig     `json:"ensemble" yaml:"ensemble"`
}
