// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package neighborhood builds bounded local context windows around
// candidate mentions. One neighborhood per anchor; downstream stages
// treat neighborhoods as read-only.
package neighborhood

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/motel/internal/text"
	"github.com/pdiddy/motel/pkg/types"
)

// DefaultWindow is the per-side window size used when the config leaves
// it unset.
const DefaultWindow = 2

// Extract builds one neighborhood per anchor of a single document.
// Anchors whose window would cross a document edge are skipped and
// counted. Anchors outside the token range wrap types.ErrInvalidDocument.
// Deterministic: identical document and anchors yield identical output.
func Extract(doc types.Document, anchors []int, cfg types.NeighborhoodConfig) ([]types.Neighborhood, int, error) {
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}

	if err := doc.Validate(); err != nil {
		return nil, 0, err
	}

	var neighborhoods []types.Neighborhood
	skipped := 0

	for _, anchor := range anchors {
		if anchor < 0 || anchor >= len(doc.Tokens) {
			return nil, 0, fmt.Errorf("document %s: anchor %d out of range [0,%d): %w",
				doc.ID, anchor, len(doc.Tokens), types.ErrInvalidDocument)
		}
		if anchor-window < 0 || anchor+window >= len(doc.Tokens) {
			skipped++
			continue
		}

		cells := make([]types.Cell, 0, 2*window+1)
		for offset := -window; offset <= window; offset++ {
			cells = append(cells, types.Cell{
				Offset:   offset,
				Features: text.TokenFeatures(doc.Tokens[anchor+offset]),
			})
		}

		neighborhoods = append(neighborhoods, types.Neighborhood{
			ID:         types.NeighborhoodID(doc.ID, anchor),
			DocumentID: doc.ID,
			Anchor:     anchor,
			Cells:      cells,
		})
	}

	return neighborhoods, skipped, nil
}

// Summary holds counts from a batch extraction run.
type Summary struct {
	Neighborhoods int
	Skipped       int
	Failed        int
}

// ExtractAll extracts neighborhoods around the gold anchors of every
// document, fanning out across documents. Invalid documents are counted
// and skipped; the run only fails on cancellation. Results are merged in
// document order, so output is deterministic regardless of scheduling.
func ExtractAll(ctx context.Context, docs []types.Document, cfg types.NeighborhoodConfig, w io.Writer) ([]types.Neighborhood, Summary, error) {
	type result struct {
		neighborhoods []types.Neighborhood
		skipped       int
		err           error
	}

	results := make([]result, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex // serializes progress output

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ns, skipped, err := Extract(doc, doc.Gold, cfg)
			results[i] = result{neighborhoods: ns, skipped: skipped, err: err}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				fmt.Fprintf(w, "failed  %s: %v\n", doc.ID, err)
			default:
				fmt.Fprintf(w, "extracted %s (%d neighborhoods, %d skipped)\n",
					doc.ID, len(ns), skipped)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	var merged []types.Neighborhood
	var summary Summary
	for i := range docs {
		res := results[i]
		if res.err != nil {
			if !errors.Is(res.err, types.ErrInvalidDocument) {
				return nil, Summary{}, res.err
			}
			summary.Failed++
			continue
		}
		merged = append(merged, res.neighborhoods...)
		summary.Skipped += res.skipped
	}
	summary.Neighborhoods = len(merged)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].DocumentID != merged[j].DocumentID {
			return merged[i].DocumentID < merged[j].DocumentID
		}
		return merged[i].Anchor < merged[j].Anchor
	})

	fmt.Fprintf(w, "\nneighborhoods: %d, skipped anchors: %d, failed documents: %d\n",
		summary.Neighborhoods, summary.Skipped, summary.Failed)
	return merged, summary, nil
}
