// Package solver compiles a candidate graph and a set of pluggable
// variable, constraint and cost modules into one binary linear program,
// solves it and maps the solution back onto the graph.
package solver

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/track"
)

// Kind names a family of indicator variables. Every variable module
// registers exactly one kind.
type Kind string

// Kinds of the bundled variable modules. The assignment heuristic and
// the selected-subgraph readback look variables up under these names.
const (
	NodeSelectedKind Kind = "node_selected"
	EdgeSelectedKind Kind = "edge_selected"
	NodeAppearKind   Kind = "node_appear"
	NodeSplitKind    Kind = "node_split"
)

// Variable is a pluggable variable module. Instantiate declares the
// graph elements this module creates one binary indicator for;
// Constraints couples those indicators to the variables of modules
// registered earlier.
type Variable interface {
	// Kind returns the name this module's variables are registered under.
	Kind() Kind
	// Instantiate returns every element that gets an indicator. Must be
	// deterministic and may depend only on the graph, not on other
	// modules' variables.
	Instantiate(s *Solver) ([]track.Element, error)
	// Constraints returns the constraints that define the semantics of
	// this module's variables. Only this module's own columns and
	// columns of kinds instantiated earlier may be referenced.
	Constraints(s *Solver) ([]*ilp.Constraint, error)
}
