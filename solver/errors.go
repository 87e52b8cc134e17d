package solver

import (
	"fmt"

	"github.com/LdDl/mot-ilp/track"
)

// ConfigurationError reports a module configured in a way that can not
// be compiled: an unregistered weight parameter, two options that
// exclude each other, or registration misuse.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// MissingAttributeError reports a graph element that lacks an attribute
// a module needs. Missing attributes fail the compilation instead of
// defaulting to zero.
type MissingAttributeError struct {
	Element   track.Element
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Element, e.Attribute)
}

// OrderingError reports a lookup of a variable kind that has not been
// instantiated yet. Modules run in registration order, so a module may
// only reference kinds registered before itself.
type OrderingError struct {
	Kind Kind
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("variables of kind %q are not instantiated yet", e.Kind)
}
