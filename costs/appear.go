package costs

import (
	"github.com/LdDl/mot-ilp/solver"
)

// Appear prices track starts: a constant is added to the appear
// coefficient of every node. A positive constant discourages opening
// new tracks, pushing the solver towards linking detections instead.
type Appear struct {
	// Constant is added for every node that starts a track.
	Constant solver.Weight
}

// NewAppear creates an appear cost with a fixed constant.
func NewAppear(constant float64) *Appear {
	return &Appear{Constant: solver.Literal(constant)}
}

// Apply adds the appear costs.
func (c *Appear) Apply(s *solver.Solver) error {
	vars, err := s.Variables(solver.NodeAppearKind)
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
