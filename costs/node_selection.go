package costs

import (
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// NodeSelection prices selected nodes: for every node the weight times
// a per-node feature value plus a constant is added to the node's
// selection coefficient. The feature value comes from a node attribute
// or from the Feature override, never both.
type NodeSelection struct {
	// Weight scales the per-node feature value.
	Weight solver.Weight
	// Attribute names the node attribute holding the feature value.
	// Empty means DefaultFeatureAttribute unless Feature is set.
	Attribute string
	// Feature computes the feature value from the node attributes
	// instead of a plain attribute lookup.
	Feature func(track.Attributes) float64
	// Constant is added for every selected node.
	Constant solver.Weight
}

// NewNodeSelection creates a node selection cost reading the given
// attribute with fixed weights.
func NewNodeSelection(weight float64, attribute string, constant float64) *NodeSelection {
	return &NodeSelection{
		Weight:    solver.Literal(weight),
		Attribute: attribute,
		Constant:  solver.Literal(constant),
	}
}

// Apply adds the node selection costs. Weights and every node's feature
// value are validated before the first coefficient is added, so a
// failure leaves the objective untouched.
func (c *NodeSelection) Apply(s *solver.Solver) error {
	vars, err := s.Variables(solver.NodeSelectedKind)
	if err != nil {
		return err
	}
	if _, err := c.Weight.Resolve(s.Params()); err != nil {
		return err
	}
	if _, err := c.Constant.Resolve(s.Params()); err != nil {
		return err
	}
	feature, err := newFeatureFunc(c.Attribute, c.Feature)
	if err != nil {
		return err
	}
	values := make([]float64, 0, vars.Len())
	for _, el := range vars.Elements() {
		id, ok := el.(track.NodeID)
		if !ok {
			return &solver.ConfigurationError{Reason: "node selection variables do not hold nodes"}
		}
		value, err := feature(s.Graph().NodeAttributes(id), el)
		if err != nil {
			return err
		}
		values = append(values, value)
	}
	for i, el := range vars.Elements() {
		col, _ := vars.Column(el)
		if err := s.AddVariableCost(col, values[i], c.Weight); err != nil {
			return err
		}
		if err := s.AddVariableCost(col, 1.0, c.Constant); err != nil {
			return err
		}
	}
	return nil
}
