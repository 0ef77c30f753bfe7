// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// Constraint is one non-wildcard requirement of a motif: the feature at
// the given window offset must equal Value.
type Constraint struct {
	Offset  int     `json:"offset" yaml:"offset"`
	Feature Feature `json:"feature" yaml:"feature"`
	Value   string  `json:"value" yaml:"value"`
}

func (c Constraint) String() string {
	return fmt.Sprintf("%+d:%s=%s", c.Offset, c.Feature, c.Value)
}

// Motif is a generalized pattern over neighborhoods: the constraints that
// survived generalization, everything else wildcarded. Motifs are created
// once by the enumerator and never mutated downstream.
type Motif struct {
	// ID is the first 12 hex characters of SHA-256 over the canonical
	// constraint string, so structurally equal motifs share an ID.
	ID string `json:"id" yaml:"id"`

	// Constraints is the canonically ordered constraint set.
	Constraints []Constraint `json:"constraints" yaml:"constraints"`

	// Provenance lists the IDs of the neighborhoods this motif
	// generalizes over.
	Provenance []string `json:"provenance" yaml:"provenance"`
}

// NewMotif canonicalizes the constraint set and derives the stable ID.
func NewMotif(constraints []Constraint, provenance []string) Motif {
	sorted := make([]Constraint, len(constraints))
	copy(sorted, constraints)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Offset != sorted[j].Offset {
			return sorted[i].Offset < sorted[j].Offset
		}
		if sorted[i].Feature != sorted[j].Feature {
			return sorted[i].Feature < sorted[j].Feature
		}
		return sorted[i].Value < sorted[j].Value
	})

	prov := make([]string, len(provenance))
	copy(prov, provenance)
	sort.Strings(prov)

	return Motif{
		ID:          motifID(sorted),
		Constraints: sorted,
		Provenance:  prov,
	}
}

// Canonical returns the canonical string form of the constraint set.
func (m Motif) Canonical() string {
	parts := make([]string, len(m.Constraints))
	for i, c := range m.Constraints {
		parts[i] = c.String()
	}
	return strings.Join(parts, " & ")
}

// Matches reports whether every constraint is satisfied by the
// neighborhood's window features.
func (m Motif) Matches(n Neighborhood) bool {
	for _, c := range m.Constraints {
		v, ok := n.Feature(c.Offset, c.Feature)
		if !ok || v != c.Value {
			return false
		}
	}
	return true
}

func motifID(constraints []Constraint) string {
	h := sha256.New()
	for _, c := range constraints {
		fmt.Fprintf(h, "%d\x00%s\x00%s\x00", c.Offset, c.Feature, c.Value)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
