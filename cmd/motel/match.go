package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motel/internal/artifact"
	"github.com/pdiddy/motel/internal/corpus"
	"github.com/pdiddy/motel/internal/match"
	"github.com/pdiddy/motel/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Evaluate motifs against a corpus into a sparse match image",
	Long: `Match tests every motif at every token position of every corpus
document and writes the sparse match image as JSONL: one record per
(document, position, motif) firing. All motifs matching a position are
recorded.`,
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	corpusPath := stringSetting(cmd, "corpus", "corpus.path")
	motifsPath, _ := cmd.Flags().GetString("motifs")
	output, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fresh, err := artifact.UpToDate(output, corpusPath, motifsPath)
		if err != nil {
			return err
		}
		if fresh {
			fmt.Fprintf(os.Stderr, "%s is up to date, skipping (use --force to rebuild)\n", output)
			return nil
		}
	}

	motifs, err := artifact.ReadJSONL[types.Motif](motifsPath)
	if err != nil {
		return err
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

	cfg := types.MatchConfig{
		Workers: intSetting(cmd, "workers", "match.workers"),
	}

	img, err := match.Evaluate(context.Background(), docs, motifs, cfg, os.Stdout)
	if err != nil {
		return err
	}

	return artifact.WriteJSONL(output, img.Records())
}

func init() {
	matchCmd.Flags().String("corpus", "corpus.db", "corpus database path")
	matchCmd.Flags().String("motifs", "motifs.jsonl", "input motifs JSONL path")
	matchCmd.Flags().String("output", "image.jsonl", "output match image JSONL path")
	matchCmd.Flags().Int("workers", match.DefaultWorkers, "documents evaluated concurrently")
	matchCmd.Flags().Bool("force", false, "rebuild even if the output is up to date")

	rootCmd.AddCommand(matchCmd)
}
