package costs

import (
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// EdgeSelection prices selected edges: for every edge the weight times
// a per-edge feature value plus a constant is added to the edge's
// selection coefficient. The feature value comes from an edge attribute
// or from the Feature override, never both.
type EdgeSelection struct {
	// Weight scales the per-edge feature value.
	Weight solver.Weight
	// Attribute names the edge attribute holding the feature value.
	// Empty means DefaultFeatureAttribute unless Feature is set.
	Attribute string
	// Feature computes the feature value from the edge attributes
	// instead of a plain attribute lookup.
	Feature func(track.Attributes) float64
	// Constant is added for every selected edge.
	Constant solver.Weight
}

// NewEdgeSelection creates an edge selection cost reading the given
// attribute with fixed weights.
func NewEdgeSelection(weight float64, attribute string, constant float64) *EdgeSelection {
	return &EdgeSelection{
		Weight:    solver.Literal(weight),
		Attribute: attribute,
		Constant:  solver.Literal(constant),
	}
}

// Apply adds the edge selection costs. Weights and every edge's feature
// value are validated before the first coefficient is added, so a
// failure leaves the objective untouched.
func (c *EdgeSelection) Apply(s *solver.Solver) error {
	vars, err := s.Variables(solver.EdgeSelectedKind)
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
		id, ok := el.(track.EdgeID)
		if !ok {
			return &solver.ConfigurationError{Reason: "edge selection variables do not hold edges"}
		}
		value, err := feature(s.Graph().EdgeAttributes(id), el)
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
