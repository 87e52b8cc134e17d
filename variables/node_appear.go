package variables

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// NodeAppear declares one binary indicator per node: whether the node
// starts a track, i.e. the node is selected and none of its incoming
// edges is. The indicator is pinned to the selection variables through
// linear constraints whose coefficients come from the fan-in itself, no
// big-M constant is involved.
type NodeAppear struct {
}

// NewNodeAppear creates the track start variable module. It must be
// registered after NodeSelected and EdgeSelected.
func NewNodeAppear() *NodeAppear {
	return &NodeAppear{}
}

// Kind returns solver.NodeAppearKind.
func (v *NodeAppear) Kind() solver.Kind {
	return solver.NodeAppearKind
}

// Instantiate declares an indicator for every node of the graph.
func (v *NodeAppear) Instantiate(s *solver.Solver) ([]track.Element, error) {
	nodes := s.Graph().Nodes()
	elements := make([]track.Element, len(nodes))
	for i, id := range nodes {
		elements[i] = id
	}
	return elements, nil
}

// Constraints pins every appear indicator to the node and edge
// selection indicators.
func (v *NodeAppear) Constraints(s *solver.Solver) ([]*ilp.Constraint, error) {
	appearVars, err := s.Variables(solver.NodeAppearKind)
	if err != nil {
		return nil, err
	}
	nodeVars, err := s.Variables(solver.NodeSelectedKind)
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
		appearCol, _ := appearVars.Column(node)
		selectedCol, _ := nodeVars.Column(node)
		prevEdges := graph.PrevEdges(node)

		if len(prevEdges) == 0 {
			// No incoming edges: being selected and appearing are the
			// same thing
			c := ilp.NewConstraint()
			c.SetCoefficient(selectedCol, 1.0)
			c.SetCoefficient(appearCol, -1.0)
			c.SetRelation(ilp.Equal)
			c.SetValue(0.0)
			constraints = append(constraints, c)
			continue
		}

		// Let k be the fan-in and s = k*selected - sum(selected incoming
		// edges). s reaches k exactly when the node is selected with no
		// selected incoming edge, so two constraints pin appear to that:
		//
		//   (1) s - appear <= k - 1
		//   (2) s - k*appear >= 0
		k := float64(len(prevEdges))
		c1 := ilp.NewConstraint()
		c2 := ilp.NewConstraint()
		c1.SetCoefficient(selectedCol, k)
		c2.SetCoefficient(selectedCol, k)
		for _, e := range prevEdges {
			edgeCol, _ := edgeVars.Column(e)
			c1.SetCoefficient(edgeCol, -1.0)
			c2.SetCoefficient(edgeCol, -1.0)
		}
		c1.SetCoefficient(appearCol, -1.0)
		c1.SetRelation(ilp.LessEqual)
		c1.SetValue(k - 1)
		c2.SetCoefficient(appearCol, -k)
		c2.SetRelation(ilp.GreaterEqual)
		c2.SetValue(0.0)
		constraints = append(constraints, c1, c2)
	}
	return constraints, nil
}
