package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motel/internal/corpus"
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Ingest raw text files into a corpus database",
	Long: `Process tokenizes text files into documents (one document per file,
ID taken from the file base name) and stores them in a SQLite corpus.
Gold labels are supplied as a YAML file mapping document ID to a list of
token positions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	corpusPath := stringSetting(cmd, "corpus", "corpus.path")
	labelsPath, _ := cmd.Flags().GetString("labels")

	labels, err := corpus.LoadLabels(labelsPath)
	if err != nil {
		return err
	}

	store, err := corpus.Open(corpusPath)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args, labels, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
	}
	return nil
}

func init() {
	processCmd.Flags().String("corpus", "corpus.db", "corpus database path")
	processCmd.Flags().String("labels", "", "YAML file mapping document ID to gold token positions")

	rootCmd.AddCommand(processCmd)
}
