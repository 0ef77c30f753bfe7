package types

import "fmt"

// Feature names one kind of token-level evidence recorded in a
// neighborhood cell.
type Feature string

const (
	// FeatureText is the lowercased token surface form.
	FeatureText Feature = "text"

	// FeatureShape is the compressed character-shape of the token
	// (e.g. "Xx" for "Motel", "d" for "2026").
	FeatureShape Feature = "shape"

	// FeatureClass is the coarse token class: word, number, or punct.
	FeatureClass Feature = "class"
)

// Features lists every feature kind in canonical order.
var Features = []Feature{FeatureText, FeatureShape, FeatureClass}

// Cell is one slot of a neighborhood window. Offset is relative to the
// anchor; the anchor cell sits at offset 0.
type Cell struct {
	Offset   int                `json:"offset" yaml:"offset"`
	Features map[Feature]string `json:"features" yaml:"features"`
}

// Neighborhood is the bounded local context around one candidate mention.
// Built once by the extractor and read-only downstream.
type Neighborhood struct {
	// ID is DocumentID + "#" + Anchor.
	ID string `json:"id" yaml:"id"`

	// DocumentID references the source document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Anchor is the token position the window is centered on.
	Anchor int `json:"anchor" yaml:"anchor"`

	// Cells holds the window slots ordered by offset.
	Cells []Cell `json:"cells" yaml:"cells"`
}

// NeighborhoodID builds the canonical neighborhood identifier.
func NeighborhoodID(documentID string, anchor int) string {
	return fmt.Sprintf("%s#%d", documentID, anchor)
}

// Feature looks up a feature value at a window offset. The second return
// is false when the offset is outside the window or the feature is absent.
func (n Neighborhood) Feature(offset int, feature Feature) (string, bool) {
	for _, cell := range n.Cells {
		if cell.Offset == offset {
			v, ok := cell.Features[feature]
			return v, ok
		}
	}
	return "", false
}
