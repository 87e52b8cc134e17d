// Package constraints provides the bundled constraint modules coupling
// edges to their endpoints and bounding the degree of track nodes.
package constraints

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
)

// SelectEdgeNodes couples every edge to its endpoints: a selected edge
// forces both of its nodes to be selected.
type SelectEdgeNodes struct {
}

// NewSelectEdgeNodes creates the endpoint coupling constraint module.
func NewSelectEdgeNodes() *SelectEdgeNodes {
	return &SelectEdgeNodes{}
}

// Instantiate returns one constraint per edge:
//
//	2*edge - from - to <= 0
func (c *SelectEdgeNodes) Instantiate(s *solver.Solver) ([]*ilp.Constraint, error) {
	nodeVars, err := s.Variables(solver.NodeSelectedKind)
	if err != nil {
		return nil, err
	}
	edgeVars, err := s.Variables(solver.EdgeSelectedKind)
	if err != nil {
		return nil, err
	}
	graph := s.Graph()
	constraints := make([]*ilp.Constraint, 0, graph.NumEdges())
	for _, e := range graph.Edges() {
		edgeCol, _ := edgeVars.Column(e)
		fromCol, _ := nodeVars.Column(e.From)
		toCol, _ := nodeVars.Column(e.To)
		row := ilp.NewConstraint()
		row.SetCoefficient(edgeCol, 2.0)
		row.SetCoefficient(fromCol, -1.0)
		row.SetCoefficient(toCol, -1.0)
		row.SetRelation(ilp.LessEqual)
		row.SetValue(0.0)
		constraints = append(constraints, row)
	}
	return constraints, nil
}
