// Package ilp holds the Integer Linear Program primitives the tracking
// compiler targets (binary columns, linear constraints, an additive
// objective) and a bundled exact solver for the resulting models.
package ilp

import (
	"github.com/pkg/errors"
)

var (
	ErrEmptyConstraint = errors.New("constraint has no coefficients")
	ErrColumnRange     = errors.New("column is out of range")
)

// Column is the index of one binary variable in the model.
type Column int

// Relation of a linear constraint.
type Relation uint8

const (
	LessEqual Relation = iota
	GreaterEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return "?"
}

// Constraint is a linear constraint: sum of coefficient*column terms,
// a relation and a right-hand side value. Coefficients keep the order
// in which their columns were first set.
type Constraint struct {
	order        []Column
	coefficients map[Column]float64
	relation     Relation
	value        float64
}

// NewConstraint creates an empty constraint with relation <= and value 0.
func NewConstraint() *Constraint {
	return &Constraint{
		coefficients: make(map[Column]float64),
	}
}

// SetCoefficient sets the coefficient of a column. Setting a column a
// second time overwrites the previous coefficient.
func (c *Constraint) SetCoefficient(col Column, value float64) {
	if _, ok := c.coefficients[col]; !ok {
		c.order = append(c.order, col)
	}
	c.coefficients[col] = value
}

// SetRelation sets the relation of the constraint.
func (c *Constraint) SetRelation(r Relation) {
	c.relation = r
}

// SetValue sets the right-hand side of the constraint.
func (c *Constraint) SetValue(v float64) {
	c.value = v
}

// Columns returns the columns with a coefficient, in the order they were set.
// Be careful: this is not a copy, but a reference to the internal slice.
func (c *Constraint) Columns() []Column {
	return c.order
}

// Coefficient returns the coefficient of a column (zero if never set).
func (c *Constraint) Coefficient(col Column) float64 {
	return c.coefficients[col]
}

// Relation returns the relation of the constraint.
func (c *Constraint) Relation() Relation {
	return c.relation
}

// Value returns the right-hand side of the constraint.
func (c *Constraint) Value() float64 {
	return c.value
}

// Evaluate computes the left-hand side of the constraint for the given
// column values.
func (c *Constraint) Evaluate(values []float64) float64 {
	lhs := 0.0
	for _, col := range c.order {
		lhs += c.coefficients[col] * values[col]
	}
	return lhs
}

// Satisfied reports whether the given column values satisfy the
// constraint within eps.
func (c *Constraint) Satisfied(values []float64, eps float64) bool {
	lhs := c.Evaluate(values)
	switch c.relation {
	case LessEqual:
		return lhs <= c.value+eps
	case GreaterEqual:
		return lhs >= c.value-eps
	case Equal:
		return lhs >= c.value-eps && lhs <= c.value+eps
	}
	return false
}

// Model is a compiled binary program: a fixed number of binary columns,
// an additive objective with a constant offset and a set of linear
// constraints. To be minimized.
type Model struct {
	objective   []float64
	constant    float64
	constraints []*Constraint
}

// NewModel creates a model with the given number of binary columns and
// an all-zero objective.
func NewModel(numColumns int) *Model {
	return &Model{
		objective: make([]float64, numColumns),
	}
}

// NumColumns returns the number of binary columns.
func (m *Model) NumColumns() int {
	return len(m.objective)
}

// AddObjectiveCoefficient adds delta to the objective coefficient of a
// column. Contributions from independent sources accumulate.
func (m *Model) AddObjectiveCoefficient(col Column, delta float64) {
	m.objective[col] += delta
}

// ObjectiveCoefficient returns the accumulated objective coefficient of a column.
func (m *Model) ObjectiveCoefficient(col Column) float64 {
	return m.objective[col]
}

// AddObjectiveConstant adds delta to the constant offset of the objective.
func (m *Model) AddObjectiveConstant(delta float64) {
	m.constant += delta
}

// ObjectiveConstant returns the constant offset of the objective.
func (m *Model) ObjectiveConstant() float64 {
	return m.constant
}

// AddConstraint adds a constraint to the model. A constraint without any
// coefficient is meaningless and gets rejected, as do columns outside
// the model.
func (m *Model) AddConstraint(c *Constraint) error {
	if len(c.order) == 0 {
		return ErrEmptyConstraint
	}
	for _, col := range c.order {
		if col < 0 || int(col) >= len(m.objective) {
			return errors.Wrapf(ErrColumnRange, "column %d of %d", int(col), len(m.objective))
		}
	}
	m.constraints = append(m.constraints, c)
	return nil
}

// Constraints returns the constraints of the model.
// Be careful: this is not a copy, but a reference to the internal slice.
func (m *Model) Constraints() []*Constraint {
	return m.constraints
}

// Feasible reports whether the given column values satisfy every
// constraint of the model within eps.
func (m *Model) Feasible(values []float64, eps float64) bool {
	for _, c := range m.constraints {
		if !c.Satisfied(values, eps) {
			return false
		}
	}
	return true
}

// Status of a solve run.
type Status uint8

const (
	// StatusOptimal means the returned assignment is proven optimal.
	StatusOptimal Status = iota
	// StatusFeasible means the node budget ran out; the returned
	// assignment is feasible but not proven optimal.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
	// StatusUnknown means the node budget ran out before any feasible
	// assignment was found.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnknown:
		return "unknown"
	}
	return "?"
}

// Solution is the result of solving a model: a 0/1 value per column and
// the objective value including the constant offset.
type Solution struct {
	status    Status
	values    []float64
	objective float64
	expanded  int
}

// Status returns the solve status.
func (s *Solution) Status() Status {
	return s.status
}

// Value returns the value of a column (0 or 1).
func (s *Solution) Value(col Column) float64 {
	return s.values[col]
}

// Values returns a copy of all column values.
func (s *Solution) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Objective returns the objective value of the solution.
func (s *Solution) Objective() float64 {
	return s.objective
}

// Expanded returns the number of search nodes expanded during the solve.
func (s *Solution) Expanded() int {
	return s.expanded
}
