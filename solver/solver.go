package solver

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/track"
)

const feasibilityEpsilon = 1e-9

// pendingCost is one objective term waiting for assembly. The weight is
// resolved late so SetParam calls between registration and compilation
// still take effect.
type pendingCost struct {
	column ilp.Column
	value  float64
	weight Weight
}

// Solver owns one compilation of a tracking problem. Modules register
// into it, Compile turns them into an ilp.Model, Solve minimizes that
// model. A Solver is not safe for concurrent use.
type Solver struct {
	graph  *track.Graph
	logger *log.Logger
	params *Params

	nodeLimit int
	warmStart bool

	variables   []Variable
	kinds       map[Kind]struct{}
	constraints []Constraint
	costs       []Cost

	varMaps    map[Kind]*VarMap
	numColumns int
	rows       []*ilp.Constraint
	pending    []pendingCost

	model *ilp.Model
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger replaces the default stderr logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithNodeLimit bounds the search effort of Solve. Zero means no limit.
func WithNodeLimit(limit int) Option {
	return func(s *Solver) {
		s.nodeLimit = limit
	}
}

// WithoutWarmStart disables the assignment heuristic that seeds the
// search with an initial feasible solution.
func WithoutWarmStart() Option {
	return func(s *Solver) {
		s.warmStart = false
	}
}

// New creates a solver for the given candidate graph.
func New(graph *track.Graph, opts ...Option) *Solver {
	s := &Solver{
		graph: graph,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Level: log.WarnLevel,
		}),
		params:    NewParams(),
		warmStart: true,
		kinds:     make(map[Kind]struct{}),
		varMaps:   make(map[Kind]*VarMap),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the candidate graph being compiled.
func (s *Solver) Graph() *track.Graph {
	return s.graph
}

// Params returns the shared weight parameter vector.
func (s *Solver) Params() *Params {
	return s.params
}

// SetParam registers a named weight parameter or updates its value.
// Updates made before Compile are picked up by the next assembly.
func (s *Solver) SetParam(name string, value float64) {
	s.params.Set(name, value)
}

// AddVariable registers a variable module. Modules instantiate in
// registration order, so a later module may reference an earlier one
// but never the reverse. Registering two modules under the same kind or
// registering after compilation is a ConfigurationError.
func (s *Solver) AddVariable(v Variable) error {
	if s.model != nil {
		return &ConfigurationError{Reason: "variables can not be registered after compilation"}
	}
	if _, ok := s.kinds[v.Kind()]; ok {
		return &ConfigurationError{Reason: fmt.Sprintf("variable kind %q is already registered", v.Kind())}
	}
	s.kinds[v.Kind()] = struct{}{}
	s.variables = append(s.variables, v)
	return nil
}

// AddConstraint registers a constraint module.
func (s *Solver) AddConstraint(c Constraint) error {
	if s.model != nil {
		return &ConfigurationError{Reason: "constraints can not be registered after compilation"}
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// AddCost registers a cost module.
func (s *Solver) AddCost(c Cost) error {
	if s.model != nil {
		return &ConfigurationError{Reason: "costs can not be registered after compilation"}
	}
	s.costs = append(s.costs, c)
	return nil
}

// Variables returns the element-to-column map of an instantiated kind.
// Requesting a kind that has not been instantiated yet is an
// OrderingError.
func (s *Solver) Variables(kind Kind) (*VarMap, error) {
	vm, ok := s.varMaps[kind]
	if !ok {
		return nil, &OrderingError{Kind: kind}
	}
	return vm, nil
}

// AddVariableCost adds value times weight to the objective coefficient
// of a column. Contributions from different cost modules accumulate.
// The weight must be resolvable when the cost is added; it is resolved
// again at assembly, so SetParam calls in between still take effect.
func (s *Solver) AddVariableCost(column ilp.Column, value float64, weight Weight) error {
	if _, err := weight.Resolve(s.params); err != nil {
		return err
	}
	s.pending = append(s.pending, pendingCost{column: column, value: value, weight: weight})
	return nil
}

// Compile runs every registered module and assembles the model: each
// variable module's columns and defining constraints in registration
// order, then the constraint modules, then the cost modules, then the
// objective. A failing module aborts the whole compilation and no model
// is produced. Compile is idempotent, repeated calls return the same
// model.
func (s *Solver) Compile() (*ilp.Model, error) {
	if s.model != nil {
		return s.model, nil
	}
	started := time.Now()
	for _, v := range s.variables {
		elements, err := v.Instantiate(s)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't instantiate variables of kind %q", v.Kind())
		}
		vm := &VarMap{
			kind:  v.Kind(),
			order: elements,
			index: make(map[track.Element]ilp.Column, len(elements)),
		}
		for _, el := range elements {
			if _, ok := vm.index[el]; ok {
				return nil, errors.Wrapf(
					&ConfigurationError{Reason: fmt.Sprintf("%s declared twice", el)},
					"Can't instantiate variables of kind %q", v.Kind(),
				)
			}
			vm.index[el] = ilp.Column(s.numColumns)
			s.numColumns++
		}
		s.varMaps[v.Kind()] = vm
		rows, err := v.Constraints(s)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build constraints of variable kind %q", v.Kind())
		}
		s.rows = append(s.rows, rows...)
	}
	for _, c := range s.constraints {
		rows, err := c.Instantiate(s)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build constraints of %T", c)
		}
		s.rows = append(s.rows, rows...)
	}
	for _, c := range s.costs {
		if err := c.Apply(s); err != nil {
			return nil, errors.Wrapf(err, "Can't apply costs of %T", c)
		}
	}
	model := ilp.NewModel(s.numColumns)
	for _, row := range s.rows {
		if err := model.AddConstraint(row); err != nil {
			return nil, errors.Wrap(err, "Can't add constraint to model")
		}
	}
	for _, pc := range s.pending {
		value, err := pc.weight.Resolve(s.params)
		if err != nil {
			return nil, errors.Wrap(err, "Can't assemble objective")
		}
		model.AddObjectiveCoefficient(pc.column, pc.value*value)
	}
	s.model = model
	s.logger.Debug("compiled tracking model",
		"columns", s.numColumns,
		"constraints", len(s.rows),
		"costs", len(s.pending),
		"elapsed", time.Since(started),
	)
	return model, nil
}

// Solve compiles the model if needed and minimizes it.
func (s *Solver) Solve() (*ilp.Solution, error) {
	model, err := s.Compile()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	opts := make([]ilp.SolveOption, 0, 2)
	if s.nodeLimit > 0 {
		opts = append(opts, ilp.WithNodeLimit(s.nodeLimit))
	}
	if s.warmStart {
		if guess, ok := s.initialAssignment(model); ok {
			opts = append(opts, ilp.WithWarmStart(guess))
		}
	}
	solution, err := ilp.Solve(model, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "Can't solve tracking model")
	}
	s.logger.Debug("solved tracking model",
		"status", solution.Status(),
		"objective", solution.Objective(),
		"expanded", solution.Expanded(),
		"elapsed", time.Since(started),
	)
	return solution, nil
}

// SelectedNodes returns the nodes a solution selects, in instantiation
// order.
func (s *Solver) SelectedNodes(solution *ilp.Solution) ([]track.NodeID, error) {
	vm, err := s.Variables(NodeSelectedKind)
	if err != nil {
		return nil, err
	}
	selected := make([]track.NodeID, 0, vm.Len())
	for _, el := range vm.Elements() {
		id, ok := el.(track.NodeID)
		if !ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("variable kind %q holds %s, not a node", NodeSelectedKind, el)}
		}
		if col, ok := vm.Column(el); ok && solution.Value(col) > 0.5 {
			selected = append(selected, id)
		}
	}
	return selected, nil
}

// SelectedEdges returns the edges a solution selects, in instantiation
// order.
func (s *Solver) SelectedEdges(solution *ilp.Solution) ([]track.EdgeID, error) {
	vm, err := s.Variables(EdgeSelectedKind)
	if err != nil {
		return nil, err
	}
	selected := make([]track.EdgeID, 0, vm.Len())
	for _, el := range vm.Elements() {
		id, ok := el.(track.EdgeID)
		if !ok {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("variable kind %q holds %s, not an edge", EdgeSelectedKind, el)}
		}
		if col, ok := vm.Column(el); ok && solution.Value(col) > 0.5 {
			selected = append(selected, id)
		}
	}
	return selected, nil
}

// SelectedSubgraph maps a solution back onto the graph it was compiled
// from: a new graph holding the selected nodes, the selected edges and
// their attributes. A selected edge with an unselected endpoint is
// logged and skipped instead of failing the readback.
func (s *Solver) SelectedSubgraph(solution *ilp.Solution) (*track.Graph, error) {
	nodes, err := s.SelectedNodes(solution)
	if err != nil {
		return nil, err
	}
	edges, err := s.SelectedEdges(solution)
	if err != nil {
		return nil, err
	}
	sub := track.NewGraphWithFrameAttribute(s.graph.FrameAttribute())
	for _, id := range nodes {
		if err := sub.AddNode(id, s.graph.NodeAttributes(id)); err != nil {
			return nil, errors.Wrap(err, "Can't build selected subgraph")
		}
	}
	for _, e := range edges {
		if !sub.HasNode(e.From) || !sub.HasNode(e.To) {
			s.logger.Warn("selected edge misses a selected endpoint", "edge", e)
			continue
		}
		if err := sub.AddEdge(e.From, e.To, s.graph.EdgeAttributes(e)); err != nil {
			return nil, errors.Wrap(err, "Can't build selected subgraph")
		}
	}
	return sub, nil
}
