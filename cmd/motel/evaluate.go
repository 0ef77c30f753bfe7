// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/motel/internal/artifact"
	"github.com/pdiddy/motel/internal/corpus"
	"github.com/pdiddy/motel/internal/ensemble"
	"github.com/pdiddy/motel/internal/match"
	"github.com/pdiddy/motel/pkg/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Aggregate a match image into ensemble performance metrics",
	Long: `Evaluate combines the match image with the corpus gold labels under
the configured ensemble strategies, sweeps decision thresholds for the
weighted vote, runs the active-learning refinement loop, and writes a
YAML performance report.`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	corpusPath := stringSetting(cmd, "corpus", "corpus.path")
	motifsPath, _ := cmd.Flags().GetString("motifs")
	imagePath, _ := cmd.Flags().GetString("image")
	output, _ := cmd.Flags().GetString("output")

	store, err := corpus.Open(corpusPath)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.LoadDocuments(context.Background())
	if err != nil {
		return err
	}

	motifs, err := artifact.ReadJSONL[types.Motif](motifsPath)
	if err != nil {
		return err
	}

	records, err := artifact.ReadJSONL[types.MatchRecord](imagePath)
	if err != nil {
		return err
	}

	img, err := match.Load(records, docs, len(motifs))
	if err != nil {
		return err
	}

	cfg := types.EnsembleConfig{
		Thresholds:          intSetting(cmd, "thresholds", "ensemble.thresholds"),
		ActiveLearningSteps: intSetting(cmd, "steps", "ensemble.active_learning_steps"),
		Seed:                int64Setting(cmd, "seed", "ensemble.seed"),
		LearningRate:        floatSetting(cmd, "learning-rate", "ensemble.learning_rate"),
	}
	if raw := stringSetting(cmd, "strategies", "ensemble.strategies"); raw != "" {
		cfg.Strategies = strings.Split(raw, ",")
	}

	report, err := ensemble.Evaluate(img, docs, cfg, os.Stdout)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", output)
	return nil
}

func init() {
	evaluateCmd.Flags().String("corpus", "corpus.db", "corpus database path")
	evaluateCmd.Flags().String("motifs", "motifs.jsonl", "input motifs JSONL path")
	evaluateCmd.Flags().String("image", "image.jsonl", "input match image JSONL path")
	evaluateCmd.Flags().String("output", "report.yaml", "output report path")
	evaluateCmd.Flags().String("strategies", "", "comma-separated strategies (default: all)")
	evaluateCmd.Flags().Int("thresholds", 3, "number of weighted-vote threshold sweep points")
	evaluateCmd.Flags().Int("steps", 0, "active-learning steps (0 = single static pass)")
	evaluateCmd.Flags().Int64("seed", 0, "seed for uncertainty-selection tie-breaking")
	evaluateCmd.Flags().Float64("learning-rate", ensemble.DefaultLearningRate, "multiplicative weight update rate")

	rootCmd.AddCommand(evaluateCmd)
}
