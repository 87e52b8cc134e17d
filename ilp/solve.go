package ilp

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Tolerance for feasibility and bound comparisons
const solveEpsilon = 1e-9

var ErrWarmStartSize = errors.New("warm start has wrong number of columns")

type solveConfig struct {
	warmStart []float64
	nodeLimit int
}

// SolveOption configures a single solve run.
type SolveOption func(*solveConfig)

// WithWarmStart seeds the solver with a known assignment. The assignment
// is used as the first incumbent if it is binary and feasible; otherwise
// it is ignored.
func WithWarmStart(values []float64) SolveOption {
	return func(cfg *solveConfig) {
		cfg.warmStart = values
	}
}

// WithNodeLimit bounds the number of search nodes expanded. Zero means
// no limit.
func WithNodeLimit(limit int) SolveOption {
	return func(cfg *solveConfig) {
		cfg.nodeLimit = limit
	}
}

// Solve minimizes the model over binary column values with a best-first
// branch and bound. Models of the size produced by tracking problems on
// candidate graphs solve exactly; WithNodeLimit caps the effort for
// anything larger.
func Solve(m *Model, opts ...SolveOption) (*Solution, error) {
	var cfg solveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	n := m.NumColumns()
	if cfg.warmStart != nil && len(cfg.warmStart) != n {
		return nil, errors.Wrapf(ErrWarmStartSize, "%d columns, expected %d", len(cfg.warmStart), n)
	}
	if n == 0 {
		return &Solution{status: StatusOptimal, values: []float64{}, objective: m.constant}, nil
	}

	// Branch on columns with large objective magnitude first, so that
	// bounds tighten as early as possible
	branchOrder := make([]int, n)
	for i := range branchOrder {
		branchOrder[i] = i
	}
	sort.SliceStable(branchOrder, func(i, j int) bool {
		return math.Abs(m.objective[branchOrder[i]]) > math.Abs(m.objective[branchOrder[j]])
	})

	var incumbent []float64
	incumbentCost := math.Inf(1)
	if cfg.warmStart != nil && isBinary(cfg.warmStart) && m.Feasible(cfg.warmStart, solveEpsilon) {
		incumbent = make([]float64, n)
		copy(incumbent, cfg.warmStart)
		incumbentCost = floats.Dot(m.objective, incumbent)
	}

	root := &searchNode{values: make([]int8, n)}
	for i := range root.values {
		root.values[i] = -1
	}
	root.bound = m.lowerBound(root.values)

	frontier := make(searchHeap, 0, 64)
	frontier.Push(root)
	expanded := 0

	for frontier.Len() > 0 {
		node := frontier.Pop()
		// Bounds come off the heap in nondecreasing order, so the rest
		// of the frontier cannot improve on the incumbent either
		if node.bound >= incumbentCost-solveEpsilon {
			break
		}
		if cfg.nodeLimit > 0 && expanded >= cfg.nodeLimit {
			if incumbent == nil {
				return &Solution{status: StatusUnknown, values: make([]float64, n), objective: math.Inf(1), expanded: expanded}, nil
			}
			return &Solution{status: StatusFeasible, values: incumbent, objective: incumbentCost + m.constant, expanded: expanded}, nil
		}
		expanded++

		col := -1
		for _, c := range branchOrder {
			if node.values[c] < 0 {
				col = c
				break
			}
		}
		if col < 0 {
			panic("should be impossible")
		}

		for _, v := range []int8{1, 0} {
			child := make([]int8, n)
			copy(child, node.values)
			child[col] = v
			if !m.reachable(child) {
				continue
			}
			bound := m.lowerBound(child)
			if bound >= incumbentCost-solveEpsilon {
				continue
			}
			if node.decided+1 == n {
				// Complete assignment, feasibility verified by reachable
				incumbent = toValues(child)
				incumbentCost = bound
				continue
			}
			frontier.Push(&searchNode{values: child, decided: node.decided + 1, bound: bound})
		}
	}

	if incumbent == nil {
		return &Solution{status: StatusInfeasible, values: make([]float64, n), objective: math.Inf(1), expanded: expanded}, nil
	}
	return &Solution{status: StatusOptimal, values: incumbent, objective: incumbentCost + m.constant, expanded: expanded}, nil
}

// reachable reports whether some completion of the partial assignment
// can still satisfy every constraint, by comparing the smallest and
// largest reachable left-hand side against the right-hand side.
func (m *Model) reachable(values []int8) bool {
	for _, c := range m.constraints {
		lo, hi := 0.0, 0.0
		for _, col := range c.order {
			coef := c.coefficients[col]
			switch values[col] {
			case 1:
				lo += coef
				hi += coef
			case 0:
			default:
				if coef < 0 {
					lo += coef
				} else {
					hi += coef
				}
			}
		}
		switch c.relation {
		case LessEqual:
			if lo > c.value+solveEpsilon {
				return false
			}
		case GreaterEqual:
			if hi < c.value-solveEpsilon {
				return false
			}
		case Equal:
			if lo > c.value+solveEpsilon || hi < c.value-solveEpsilon {
				return false
			}
		}
	}
	return true
}

// lowerBound computes a lower bound on the objective over all
// completions of the partial assignment: decided columns contribute
// their coefficient, undecided ones only when it helps.
func (m *Model) lowerBound(values []int8) float64 {
	bound := 0.0
	for col, coef := range m.objective {
		switch values[col] {
		case 1:
			bound += coef
		case 0:
		default:
			if coef < 0 {
				bound += coef
			}
		}
	}
	return bound
}

func isBinary(values []float64) bool {
	for _, v := range values {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}

func toValues(values []int8) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			out[i] = 1
		}
	}
	return out
}
