package solver

import (
	"github.com/LdDl/mot-ilp/ilp"
)

// Constraint is a pluggable feasibility module. Instantiate returns
// constraints over previously instantiated variables; the driver adds
// them to the model after all variable modules have run.
type Constraint interface {
	Instantiate(s *Solver) ([]*ilp.Constraint, error)
}
