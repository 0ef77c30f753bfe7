package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/motel/internal/text"
	"github.com/pdiddy/motel/pkg/types"
)

// IngestSummary holds counts from a corpus ingestion run.
type IngestSummary struct {
	Ingested int
	Failed   int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Failed
}

// LoadLabels reads a YAML file mapping document ID to gold-positive token
// positions. A missing path is not an error; it yields an empty map.
func LoadLabels(path string) (map[string][]int, error) {
	if path == "" {
		return map[string][]int{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels %s: %w", path, err)
	}
	labels := map[string][]int{}
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parsing labels %s: %w", path, err)
	}
	return labels, nil
}

// Ingest tokenizes each input text file into a document (ID = file base
// name without extension) and stores it with any gold labels. Failures
// are per-file: they are counted and reported, and ingestion continues.
func (s *Store) Ingest(ctx context.Context, inputs []string, labels map[string][]int, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, input := range inputs {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

		raw, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		doc := types.Document{
			ID:     id,
			Tokens: text.Tokenize(string(raw)),
			Gold:   labels[id],
		}

		if err := s.SaveDocument(ctx, doc, string(raw)); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "ingested %s (%d tokens, %d labels)\n", id, len(doc.Tokens), len(doc.Gold))
		summary.Ingested++
	}

	fmt.Fprintf(w, "\ningested: %d, failed: %d\n", summary.Ingested, summary.Failed)
	return summary, nil
}
