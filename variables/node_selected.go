// Package variables provides the bundled variable modules: indicators
// for node selection, edge selection, track starts and track splits.
package variables

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// NodeSelected declares one binary indicator per node: whether the node
// is part of the tracking solution.
type NodeSelected struct {
}

// NewNodeSelected creates the node selection variable module.
func NewNodeSelected() *NodeSelected {
	return &NodeSelected{}
}

// Kind returns solver.NodeSelectedKind.
func (v *NodeSelected) Kind() solver.Kind {
	return solver.NodeSelectedKind
}

// Instantiate declares an indicator for every node of the graph.
func (v *NodeSelected) Instantiate(s *solver.Solver) ([]track.Element, error) {
	nodes := s.Graph().Nodes()
	elements := make([]track.Element, len(nodes))
	for i, id := range nodes {
		elements[i] = id
	}
	return elements, nil
}

// Constraints returns nothing. Which nodes to select is the decision
// the solver makes, so the indicators are unconstrained here.
func (v *NodeSelected) Constraints(s *solver.Solver) ([]*ilp.Constraint, error) {
	return nil, nil
}
