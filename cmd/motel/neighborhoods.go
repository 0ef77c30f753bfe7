package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motel/internal/artifact"
	"github.com/pdiddy/motel/internal/corpus"
	"github.com/pdiddy/motel/internal/neighborhood"
	"github.com/pdiddy/motel/pkg/types"
)

var neighborhoodsCmd = &cobra.Command{
	Use:   "neighborhoods",
	Short: "Extract context windows around labeled mentions",
	Long: `Neighborhoods builds one bounded context window per gold-labeled
mention in the corpus and writes them as JSONL. Anchors too close to a
document edge to fill the window are skipped and counted.`,
	RunE: runNeighborhoods,
}

func runNeighborhoods(cmd *cobra.Command, args []string) error {
	corpusPath := stringSetting(cmd, "corpus", "corpus.path")
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fresh, err := artifact.UpToDate(output, corpusPath)
		if err != nil {
			return err
		}
		if fresh {
			fmt.Fprintf(os.Stderr, "%s is up to date, skipping (use --force to rebuild)\n", output)
			return nil
		}
	}

	store, err := corpus.Open(corpusPath)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.LoadDocuments(context.Background())
	if err != nil {
		return err
	}

	cfg := types.NeighborhoodConfig{
		Window: intSetting(cmd, "window", "neighborhood.window"),
	}

	neighborhoods, _, err := neighborhood.ExtractAll(context.Background(), docs, cfg, os.Stdout)
	if err != nil {
		return err
	}

	return artifact.WriteJSONL(output, neighborhoods)
}

func init() {
	neighborhoodsCmd.Flags().String("corpus", "corpus.db", "corpus database path")
	neighborhoodsCmd.Flags().String("output", "neighborhoods.jsonl", "output JSONL path")
	neighborhoodsCmd.Flags().Int("window", neighborhood.DefaultWindow, "tokens kept on each side of an anchor")
	neighborhoodsCmd.Flags().Bool("force", false, "rebuild even if the output is up to date")

	rootCmd.AddCommand(neighborhoodsCmd)
}
