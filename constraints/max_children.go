package constraints

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
)

// MaxChildren bounds the number of selected outgoing edges per node,
// limiting how many tracks may continue from one.
type MaxChildren struct {
	max int
}

// NewMaxChildren creates a constraint module allowing at most n
// selected outgoing edges per node. Tracking with cell divisions uses
// n = 2.
func NewMaxChildren(n int) *MaxChildren {
	return &MaxChildren{max: n}
}

// Instantiate returns one constraint per node with outgoing edges.
// Nodes without outgoing edges have nothing to bound and are skipped.
func (c *MaxChildren) Instantiate(s *solver.Solver) ([]*ilp.Constraint, error) {
	edgeVars, err := s.Variables(solver.EdgeSelectedKind)
	if err != nil {
		return nil, err
	}
	graph := s.Graph()
	constraints := make([]*ilp.Constraint, 0, graph.NumNodes())
	for _, node := range graph.Nodes() {
		nextEdges := graph.NextEdges(node)
		if len(nextEdges) == 0 {
			continue
		}
		row := ilp.NewConstraint()
		for _, e := range nextEdges {
			col, _ := edgeVars.Column(e)
			row.SetCoefficient(col, 1.0)
		}
		row.SetRelation(ilp.LessEqual)
		row.SetValue(float64(c.max))
		constraints = append(constraints, row)
	}
	return constraints, nil
}
