package variables

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// NodeSplit declares one binary indicator per node: whether the node
// continues into more than one selected outgoing edge, as a dividing
// cell or a splitting cluster would.
type NodeSplit struct {
}

// NewNodeSplit creates the track split variable module. It must be
// registered after NodeSelected and EdgeSelected.
func NewNodeSplit() *NodeSplit {
	return &NodeSplit{}
}

// Kind returns solver.NodeSplitKind.
func (v *NodeSplit) Kind() solver.Kind {
	return solver.NodeSplitKind
}

// Instantiate declares an indicator for every node of the graph.
func (v *NodeSplit) Instantiate(s *solver.Solver) ([]track.Element, error) {
	nodes := s.Graph().Nodes()
	elements := make([]track.Element, len(nodes))
	for i, id := range nodes {
		elements[i] = id
	}
	return elements, nil
}

// Constraints pins every split indicator to the edge selection
// indicators of the node's outgoing edges.
func (v *NodeSplit) Constraints(s *solver.Solver) ([]*ilp.Constraint, error) {
	splitVars, err := s.Variables(solver.NodeSplitKind)
	if err != nil {
		return nil, err
	}
	edgeVars, err := s.Variables(solver.EdgeSelectedKind)
	if err != nil {
		return nil, err
	}

	graph := s.Graph()
	constraints := make([]*ilp.Constraint, 0, 2*graph.NumNodes())
	for _, node := range graph.Nodes() {
		splitCol, _ := splitVars.Column(node)
		nextEdges := graph.NextEdges(node)

		if len(nextEdges) < 2 {
			// Fewer than two outgoing edges can never split
			c := ilp.NewConstraint()
			c.SetCoefficient(splitCol, 1.0)
			c.SetRelation(ilp.Equal)
			c.SetValue(0.0)
			constraints = append(constraints, c)
			continue
		}

		// With m outgoing edges and y = sum(selected outgoing edges),
		// split holds exactly when y >= 2:
		//
		//   (1) 2*split - y <= 0        split forces y >= 2
		//   (2) (m-1)*split - y >= -1   y >= 2 forces split
		m := float64(len(nextEdges))
		c1 := ilp.NewConstraint()
		c2 := ilp.NewConstraint()
		c1.SetCoefficient(splitCol, 2.0)
		c2.SetCoefficient(splitCol, m-1)
		for _, e := range nextEdges {
			edgeCol, _ := edgeVars.Column(e)
			c1.SetCoefficient(edgeCol, -1.0)
			c2.SetCoefficient(edgeCol, -1.0)
		}
		c1.SetRelation(ilp.LessEqual)
		c1.SetValue(0.0)
		c2.SetRelation(ilp.GreaterEqual)
		c2.SetValue(-1.0)
		constraints = append(constraints, c1, c2)
	}
	return constraints, nil
}
