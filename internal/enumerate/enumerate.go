// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enumerate samples generalized motifs from a set of
// neighborhoods. The generalization lattice (every non-empty subset of
// every neighborhood's constraints) is exponential, so the search walks
// it with a bounded randomized sampler over an explicit worklist instead
// of exhaustive enumeration: the contract is a best-effort sample of at
// most SampleGoal motifs, not complete coverage.
package enumerate

import (
	"fmt"
	"math/rand"

	"github.com/pdiddy/motel/pkg/types"
)

// DefaultMaxTrialsPerMotif bounds sampling when the config leaves it unset.
const DefaultMaxTrialsPerMotif = 64

// candidate is one worklist entry: a constraint set still open for
// further generalization.
type candidate struct {
	constraints []types.Constraint
}

// sampler carries the state of one sampling run. Randomness comes only
// from the seeded generator, never from ambient sources, so a fixed seed
// reproduces the run exactly.
type sampler struct {
	rng           *rand.Rand
	neighborhoods []types.Neighborhood
	goal          int

	worklist []candidate
	visited  map[string]bool

	result  []types.Motif
	reserve []types.Motif
}

// Sample explores the generalization lattice above the neighborhoods and
// returns at most cfg.SampleGoal motifs. Motifs supported by two or more
// neighborhoods are preferred; singletons fill the remainder in discovery
// order. Returns fewer than the goal without error when the lattice or
// the trial budget is exhausted first.
func Sample(neighborhoods []types.Neighborhood, cfg types.EnumerationConfig) ([]types.Motif, error) {
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = types.StrategySample
	}
	if strategy != types.StrategySample {
		return nil, fmt.Errorf("unknown enumeration strategy %q", strategy)
	}
	if cfg.SampleGoal < 0 {
		return nil, fmt.Errorf("sample goal must be non-negative, got %d", cfg.SampleGoal)
	}
	if cfg.SampleGoal == 0 || len(neighborhoods) == 0 {
		return nil, nil
	}

	maxTrials := cfg.MaxTrialsPerMotif
	if maxTrials <= 0 {
		maxTrials = DefaultMaxTrialsPerMotif
	}

	s := &sampler{
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		neighborhoods: neighborhoods,
		goal:          cfg.SampleGoal,
		visited:       map[string]bool{},
	}

	// Every neighborhood seeds the worklist as a maximally specific motif.
	for _, n := range neighborhoods {
		s.admit(fullConstraints(n))
	}

	budget := maxTrials * cfg.SampleGoal
	for trial := 0; trial < budget && len(s.worklist) > 0 && len(s.result) < s.goal; trial++ {
		s.step()
	}

	// Top up from single-neighborhood motifs, preserving discovery order.
	for _, m := range s.reserve {
		if len(s.result) >= s.goal {
			break
		}
		s.result = append(s.result, m)
	}

	return s.result, nil
}

// step draws one worklist entry and generalizes it by dropping one
// unexplored constraint. Entries with no unexplored children are retired,
// which is what eventually empties the worklist on small lattices.
func (s *sampler) step() {
	i := s.rng.Intn(len(s.worklist))
	parent := s.worklist[i]

	children := s.unvisitedChildren(parent)
	if len(children) == 0 {
		s.worklist[i] = s.worklist[len(s.worklist)-1]
		s.worklist = s.worklist[:len(s.worklist)-1]
		return
	}

	s.admit(children[s.rng.Intn(len(children))])
}

// unvisitedChildren lists the constraint sets reachable from parent by
// dropping exactly one constraint. A motif never generalizes to the empty
// set: the last constraint stays.
func (s *sampler) unvisitedChildren(parent candidate) [][]types.Constraint {
	if len(parent.constraints) <= 1 {
		return nil
	}
	var children [][]types.Constraint
	for drop := range parent.constraints {
		child := make([]types.Constraint, 0, len(parent.constraints)-1)
		child = append(child, parent.constraints[:drop]...)
		child = append(child, parent.constraints[drop+1:]...)
		if !s.visited[types.NewMotif(child, nil).Canonical()] {
			children = append(children, child)
		}
	}
	return children
}

// admit canonicalizes a constraint set, records it as visited, pushes it
// onto the worklist, and routes the finished motif into the result or the
// reserve depending on its provenance count.
func (s *sampler) admit(constraints []types.Constraint) {
	motif := types.NewMotif(constraints, s.provenance(constraints))
	canonical := motif.Canonical()
	if s.visited[canonical] {
		return
	}
	s.visited[canonical] = true
	s.worklist = append(s.worklist, candidate{constraints: motif.Constraints})

	if len(motif.Provenance) >= 2 {
		if len(s.result) < s.goal {
			s.result = append(s.result, motif)
		}
		return
	}
	s.reserve = append(s.reserve, motif)
}

// provenance returns the IDs of every neighborhood whose window satisfies
// all the constraints.
func (s *sampler) provenance(constraints []types.Constraint) []string {
	probe := types.Motif{Constraints: constraints}
	var ids []string
	for _, n := range s.neighborhoods {
		if probe.Matches(n) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// fullConstraints turns every recorded window feature of a neighborhood
// into a constraint.
func fullConstraints(n types.Neighborhood) []types.Constraint {
	var constraints []types.Constraint
	for _, cell := range n.Cells {
		for _, feature := range types.Features {
			if value, ok := cell.Features[feature]; ok {
				constraints = append(constraints, types.Constraint{
					Offset:  cell.Offset,
					Feature: feature,
					Value:   value,
				})
			}
		}
	}
	return constraints
}
