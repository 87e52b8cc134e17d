package variables

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// EdgeSelected declares one binary indicator per edge: whether the edge
// links two consecutive detections of the same track.
type EdgeSelected struct {
}

// NewEdgeSelected creates the edge selection variable module.
func NewEdgeSelected() *EdgeSelected {
	return &EdgeSelected{}
}

// Kind returns solver.EdgeSelectedKind.
func (v *EdgeSelected) Kind() solver.Kind {
	return solver.EdgeSelectedKind
}

// Instantiate declares an indicator for every edge of the graph.
func (v *EdgeSelected) Instantiate(s *solver.Solver) ([]track.Element, error) {
	edges := s.Graph().Edges()
	elements := make([]track.Element, len(edges))
	for i, e := range edges {
		elements[i] = e
	}
	return elements, nil
}

// Constraints returns nothing. Coupling edges to their endpoints is the
// job of the endpoint constraint module, keeping selection semantics
// composable.
func (v *EdgeSelected) Constraints(s *solver.Solver) ([]*ilp.Constraint, error) {
	return nil, nil
}
