// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Token is a single token of a document with character offsets into the
// source text.
type Token struct {
	// Text is the token surface form.
	Text string `json:"text" yaml:"text"`

	// Start is the character offset of the first rune of the token.
	Start int `json:"start" yaml:"start"`

	// End is the character offset one past the last rune of the token.
	End int `json:"end" yaml:"end"`
}

// Document is an addressable, tokenized document. Documents are immutable
// once loaded; every later pipeline stage treats them as read-only input.
type Document struct {
	// ID is a stable identifier, typically the source file base name.
	ID string `json:"id" yaml:"id"`

	// Tokens is the ordered token sequence.
	Tokens []Token `json:"tokens" yaml:"tokens"`

	// Gold lists token positions carrying a positive gold label.
	// Empty for unlabeled evaluation documents.
	Gold []int `json:"gold,omitempty" yaml:"gold,omitempty"`
}

// Validate checks that offsets are well-formed and gold positions are in
// bounds. Wraps ErrInvalidDocument on failure.
func (d Document) Validate() error {
	for i, tok := range d.Tokens {
		if tok.Start < 0 || tok.End < tok.Start {
			return fmt.Errorf("document %s: token %d has offsets [%d,%d): %w",
				d.ID, i, tok.Start, tok.End, ErrInvalidDocument)
		}
	}
	for _, pos := range d.Gold {
		if pos < 0 || pos >= len(d.Tokens) {
			return fmt.Errorf("document %s: gold position %d out of range [0,%d): %w",
				d.ID, pos, len(d.Tokens), ErrInvalidDocument)
		}
	}
	return nil
}

// GoldPoints returns the document's gold labels as points.
func (d Document) GoldPoints() []Point {
	points := make([]Point, 0, len(d.Gold))
	for _, pos := range d.Gold {
		points = append(points, Point{DocumentID: d.ID, Position: pos})
	}
	return points
}

// Point addresses one candidate position in one document.
type Point struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Position   int    `json:"position" yaml:"position"`
}

// Less orders points by document then position, the canonical artifact order.
func (p Point) Less(other Point) bool {
	if p.DocumentID != other.DocumentID {
		return p.DocumentID < other.DocumentID
	}
	return p.Position < other.Position
}

func (p Point) String() string {
	return fmt.Sprintf("%s#%d", p.DocumentID, p.Position)
}
