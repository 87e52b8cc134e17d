package solver

// Cost is a pluggable cost module. Apply adds objective contributions
// for previously instantiated variables through Solver.AddVariableCost.
// Cost modules never add constraints and never touch the model in any
// other way; a failing Apply aborts the whole compilation.
type Cost interface {
	Apply(s *Solver) error
}
