package solver

import (
	"fmt"
	"strconv"
)

// Params is the shared vector of named weight parameters, kept in
// registration order. Weights referencing a parameter by name are
// resolved against it every time the objective is assembled.
type Params struct {
	names  []string
	values map[string]float64
}

// NewParams creates an empty parameter vector.
func NewParams() *Params {
	return &Params{values: make(map[string]float64)}
}

// Set registers a parameter or updates its value.
func (p *Params) Set(name string, value float64) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the value of a parameter.
func (p *Params) Get(name string) (float64, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the parameter names in registration order.
// Be careful: this is not a copy, but a reference to the internal slice.
func (p *Params) Names() []string {
	return p.names
}

// Weight is a scalar factor in a cost expression: either a fixed
// literal or a reference to a named parameter. Named weights decouple
// the structure of the objective from its numbers, so a parameter can
// be changed between two compilations without re-registering modules.
type Weight struct {
	name  string
	value float64
	named bool
}

// Literal creates a weight with a fixed value.
func Literal(value float64) Weight {
	return Weight{value: value}
}

// Named creates a weight that resolves the parameter with the given
// name when the objective is assembled.
func Named(name string) Weight {
	return Weight{name: name, named: true}
}

// Resolve returns the current scalar value of the weight. A named
// weight whose parameter was never registered resolves to a
// ConfigurationError.
func (w Weight) Resolve(p *Params) (float64, error) {
	if !w.named {
		return w.value, nil
	}
	v, ok := p.Get(w.name)
	if !ok {
		return 0, &ConfigurationError{Reason: fmt.Sprintf("weight parameter %q is not registered", w.name)}
	}
	return v, nil
}

func (w Weight) String() string {
	if w.named {
		return "$" + w.name
	}
	return strconv.FormatFloat(w.value, 'g', -1, 64)
}
