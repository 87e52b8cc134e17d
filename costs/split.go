package costs

import (
	"github.com/LdDl/mot-ilp/solver"
)

// Split prices track splits: a constant is added to the split
// coefficient of every node.
type Split struct {
	// Constant is added for every node that continues into more than
	// one selected edge.
	Constant solver.Weight
}

// NewSplit creates a split cost with a fixed constant.
func NewSplit(constant float64) *Split {
	return &Split{Constant: solver.Literal(constant)}
}

// Apply adds the split costs.
func (c *Split) Apply(s *solver.Solver) error {
	vars, err := s.Variables(solver.NodeSplitKind)
	if err != nil {
		return err
	}
	if _, err := c.Constant.Resolve(s.Params()); err != nil {
		return err
	}
	for _, el := range vars.Elements() {
		col, _ := vars.Column(el)
		if err := s.AddVariableCost(col, 1.0, c.Constant); err != nil {
			return err
		}
	}
	return nil
}
