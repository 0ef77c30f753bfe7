// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match evaluates motifs against documents and records which
// motifs fire at which positions — the sparse match image. Matching is
// pruned through an inverted index keyed by constraint fingerprints, so
// each motif is only tested at positions where its most selective
// constraint already holds.
package match

import (
	"context"
	"fmt"
	"io"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/motel/internal/text"
	"github.com/pdiddy/motel/pkg/types"
)

// DefaultWorkers is the per-run document concurrency when the config
// leaves it unset.
const DefaultWorkers = 4

// docIndex holds the precomputed features and constraint postings of one
// document.
type docIndex struct {
	doc types.Document

	// features[pos] is the feature map of the token at pos.
	features []map[types.Feature]string

	// postings maps a (feature, value) fingerprint to the positions
	// where it holds, in ascending order.
	postings map[string][]int
}

func fingerprint(feature types.Feature, value string) string {
	return string(feature) + "\x1f" + value
}

func indexDocument(doc types.Document) *docIndex {
	idx := &docIndex{
		doc:      doc,
		features: make([]map[types.Feature]string, len(doc.Tokens)),
		postings: map[string][]int{},
	}
	for pos, tok := range doc.Tokens {
		feats := text.TokenFeatures(tok)
		idx.features[pos] = feats
		for feature, value := range feats {
			key := fingerprint(feature, value)
			idx.postings[key] = append(idx.postings[key], pos)
		}
	}
	for key := range idx.postings {
		sort.Ints(idx.postings[key])
	}
	return idx
}

// matchAt reports whether every motif constraint holds relative to
// anchor. Constraints reaching past a document edge never hold.
func (idx *docIndex) matchAt(m types.Motif, anchor int) bool {
	for _, c := range m.Constraints {
		pos := anchor + c.Offset
		if pos < 0 || pos >= len(idx.features) {
			return false
		}
		if idx.features[pos][c.Feature] != c.Value {
			return false
		}
	}
	return true
}

// evaluateDoc tests every motif against every candidate position of one
// document. selective[i] is the index of motif i's most selective
// constraint.
func (idx *docIndex) evaluateDoc(motifs []types.Motif, selective []int) []types.MatchRecord {
	var records []types.MatchRecord
	for i, m := range motifs {
		if len(m.Constraints) == 0 {
			continue
		}
		pivot := m.Constraints[selective[i]]
		for _, pos := range idx.postings[fingerprint(pivot.Feature, pivot.Value)] {
			anchor := pos - pivot.Offset
			if idx.matchAt(m, anchor) {
				records = append(records, types.MatchRecord{
					DocumentID: idx.doc.ID,
					Position:   anchor,
					MotifID:    m.ID,
				})
			}
		}
	}
	return records
}

// Evaluate matches every motif against every token position of every
// document and returns the sparse image. Ties are recorded in full: all
// motifs matching a position produce records. Documents with no tokens
// contribute nothing. Idempotent: re-running on the same inputs yields
// the same image.
func Evaluate(ctx context.Context, docs []types.Document, motifs []types.Motif, cfg types.MatchConfig, w io.Writer) (*Image, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	indexes := make([]*docIndex, len(docs))
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		indexes[i] = indexDocument(doc)
	}

	// Pick each motif's most selective constraint by corpus-wide posting
	// count, ties to the earliest constraint.
	selective := make([]int, len(motifs))
	for i, m := range motifs {
		best, bestCount := 0, -1
		for ci, c := range m.Constraints {
			count := 0
			for _, idx := range indexes {
				count += len(idx.postings[fingerprint(c.Feature, c.Value)])
			}
			if bestCount < 0 || count < bestCount {
				best, bestCount = ci, count
			}
		}
		selective[i] = best
	}

	perDoc := make([][]types.MatchRecord, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range indexes {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perDoc[i] = indexes[i].evaluateDoc(motifs, selective)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []types.MatchRecord
	for i := range docs {
		fmt.Fprintf(w, "matched %s (%d firings)\n", docs[i].ID, len(perDoc[i]))
		records = append(records, perDoc[i]...)
	}

	img := newImage(records, len(motifs))
	fmt.Fprintf(w, "\nimage: %d firings, %d firing motifs, %d positions\n",
		len(img.records), len(img.rows), len(img.Domain()))
	return img, nil
}

// Image is the sparse (document, position, motif) relation produced by
// evaluation. Read-only after construction; rows exist only for motifs
// that fired at least once.
type Image struct {
	records   []types.MatchRecord
	rows      map[string][]types.Point
	evaluated int
}

func newImage(records []types.MatchRecord, evaluated int) *Image {
	sorted := make([]types.MatchRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DocumentID != sorted[j].DocumentID {
			return sorted[i].DocumentID < sorted[j].DocumentID
		}
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].MotifID < sorted[j].MotifID
	})

	rows := map[string][]types.Point{}
	for _, rec := range sorted {
		rows[rec.MotifID] = append(rows[rec.MotifID], rec.Point())
	}

	return &Image{records: sorted, rows: rows, evaluated: evaluated}
}

// Load rebuilds an image from its records, validating every referenced
// document against docs. An unknown document wraps
// types.ErrEvaluationMismatch.
func Load(records []types.MatchRecord, docs []types.Document, evaluated int) (*Image, error) {
	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		known[doc.ID] = true
	}
	for _, rec := range records {
		if !known[rec.DocumentID] {
			return nil, fmt.Errorf("image references document %s absent from the document set: %w",
				rec.DocumentID, types.ErrEvaluationMismatch)
		}
	}
	return newImage(records, evaluated), nil
}

// Records returns the image cells in canonical order.
func (img *Image) Records() []types.MatchRecord {
	return img.records
}

// MotifIDs returns the IDs of motifs that fired at least once, sorted.
func (img *Image) MotifIDs() []string {
	ids := make([]string, 0, len(img.rows))
	for id := range img.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Row returns the points one motif fired at, in canonical order.
func (img *Image) Row(motifID string) []types.Point {
	return img.rows[motifID]
}

// Domain returns the distinct points any motif fired at, sorted.
func (img *Image) Domain() []types.Point {
	seen := map[types.Point]bool{}
	var points []types.Point
	for _, rec := range img.records {
		p := rec.Point()
		if !seen[p] {
			seen[p] = true
			points = append(points, p)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })
	return points
}

// EvaluatedMotifs returns the number of motifs the image was evaluated
// with, including motifs that never fired.
func (img *Image) EvaluatedMotifs() int {
	return img.evaluated
}
