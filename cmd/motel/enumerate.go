package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motel/internal/artifact"
	"github.com/pdiddy/motel/internal/enumerate"
	"github.com/pdiddy/motel/pkg/types"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "Sample generalized motifs from extracted neighborhoods",
	Long: `Enumerate explores the generalization lattice above the extracted
neighborhoods with a seeded sampling search and writes at most
sample-goal motifs as JSONL. Motifs supported by multiple neighborhoods
are preferred. A smaller result than the goal means the lattice was
exhausted first; it is not an error.`,
	RunE: runEnumerate,
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fresh, err := artifact.UpToDate(output, input)
		if err != nil {
			return err
		}
		if fresh {
			fmt.Fprintf(os.Stderr, "%s is up to date, skipping (use --force to rebuild)\n", output)
			return nil
		}
	}

	neighborhoods, err := artifact.ReadJSONL[types.Neighborhood](input)
	if err != nil {
		return err
	}

	cfg := types.EnumerationConfig{
		Strategy:          stringSetting(cmd, "strategy", "enumeration.strategy"),
		SampleGoal:        intSetting(cmd, "sample-goal", "enumeration.sample_goal"),
		Seed:              int64Setting(cmd, "seed", "enumeration.seed"),
		MaxTrialsPerMotif: intSetting(cmd, "max-trials", "enumeration.max_trials_per_motif"),
	}

	motifs, err := enumerate.Sample(neighborhoods, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "sampled %d motifs from %d neighborhoods (goal %d)\n",
		len(motifs), len(neighborhoods), cfg.SampleGoal)
	return artifact.WriteJSONL(output, motifs)
}

func init() {
	enumerateCmd.Flags().String("input", "neighborhoods.jsonl", "input neighborhoods JSONL path")
	enumerateCmd.Flags().String("output", "motifs.jsonl", "output motifs JSONL path")
	enumerateCmd.Flags().String("strategy", types.StrategySample, "search strategy")
	enumerateCmd.Flags().Int("sample-goal", 100, "maximum number of motifs to sample")
	enumerateCmd.Flags().Int64("seed", 0, "sampling seed for reproducible runs")
	enumerateCmd.Flags().Int("max-trials", enumerate.DefaultMaxTrialsPerMotif, "sampling trials allowed per requested motif")
	enumerateCmd.Flags().Bool("force", false, "rebuild even if the output is up to date")

	rootCmd.AddCommand(enumerateCmd)
}
