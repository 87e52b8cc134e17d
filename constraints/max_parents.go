package constraints

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
)

// MaxParents bounds the number of selected incoming edges per node,
// limiting how many tracks may merge into one.
type MaxParents struct {
	max int
}

// NewMaxParents creates a constraint module allowing at most n selected
// incoming edges per node. Tracking without merges uses n = 1.
func NewMaxParents(n int) *MaxParents {
	return &MaxParents{max: n}
}

// Instantiate returns one constraint per node with incoming edges.
// Nodes without incoming edges have nothing to bound and are skipped.
func (c *MaxParents) Instantiate(s *solver.Solver) ([]*ilp.Constraint, error) {
	edgeVars, err := s.Variables(solver.EdgeSelectedKind)
	if err != nil {
		return nil, err
	}
	graph := s.Graph()
	constraints := make([]*ilp.Constraint, 0, graph.NumNodes())
	for _, node := range graph.Nodes() {
		prevEdges := graph.PrevEdges(node)
		if len(prevEdges) == 0 {
			continue
		}
		row := ilp.NewConstraint()
		for _, e := range prevEdges {
			col, _ := edgeVars.Column(e)
			row.SetCoefficient(col, 1.0)
		}
		row.SetRelation(ilp.LessEqual)
		row.SetValue(float64(c.max))
		constraints = append(constraints, row)
	}
	return constraints, nil
}
