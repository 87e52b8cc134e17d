// Package costs provides the bundled cost modules pricing node
// selection, edge selection, track starts and track splits.
package costs

import (
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

// DefaultFeatureAttribute is the attribute the selection costs read
// when neither an attribute nor a feature override is configured.
const DefaultFeatureAttribute = "costs"

// featureFunc extracts the per-element feature value a selection cost
// multiplies with its weight.
type featureFunc func(attrs track.Attributes, el track.Element) (float64, error)

// newFeatureFunc builds the extractor for a selection cost: a computed
// override, a named attribute, or the default attribute. Configuring
// both an attribute and an override is a ConfigurationError. Attribute
// lookups fail with a MissingAttributeError instead of defaulting to
// zero.
func newFeatureFunc(attribute string, override func(track.Attributes) float64) (featureFunc, error) {
	if override != nil {
		if attribute != "" {
			return nil, &solver.ConfigurationError{Reason: "attribute and feature override are mutually exclusive"}
		}
		return func(attrs track.Attributes, el track.Element) (float64, error) {
			return override(attrs), nil
		}, nil
	}
	if attribute == "" {
		attribute = DefaultFeatureAttribute
	}
	name := attribute
	return func(attrs track.Attributes, el track.Element) (float64, error) {
		value, ok := attrs[name]
		if !ok {
			return 0, &solver.MissingAttributeError{Element: el, Attribute: name}
		}
		return value, nil
	}, nil
}
