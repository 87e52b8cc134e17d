package variables

import (
	"errors"
	"testing"

	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
)

const testEpsilon = 1e-9

// fanInModel compiles a graph of k nodes in frame 0, each linked to a
// single node in frame 1.
func fanInModel(t *testing.T, k int) (*solver.Solver, *ilp.Model) {
	t.Helper()
	g := track.NewGraph()
	target := track.NodeID(100)
	if err := g.AddNode(target, track.Attributes{"t": 1.0}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < k; i++ {
		if err := g.AddNode(track.NodeID(i), track.Attributes{"t": 0.0}); err != nil {
			t.Fatal(err)
		}
		if err := g.AddEdge(track.NodeID(i), target, nil); err != nil {
			t.Fatal(err)
		}
	}
	s := solver.New(g)
	if err := s.AddVariable(NewNodeSelected()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable(NewEdgeSelected()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable(NewNodeAppear()); err != nil {
		t.Fatal(err)
	}
	model, err := s.Compile()
	if err != nil {
		t.Fatal(err)
	}
	return s, model
}

// TestNodeAppearFanIn enumerates every assignment of the target's
// selection and incoming edge indicators and checks which appear values
// the constraints leave feasible: exactly 1 for a selected node without
// selected incoming edges, exactly 0 for a selected node with one, and
// none at all for an unselected node with a selected incoming edge.
func TestNodeAppearFanIn(t *testing.T) {
	for k := 0; k <= 3; k++ {
		s, model := fanInModel(t, k)
		nodeVars, err := s.Variables(solver.NodeSelectedKind)
		if err != nil {
			t.Fatal(err)
		}
		edgeVars, err := s.Variables(solver.EdgeSelectedKind)
		if err != nil {
			t.Fatal(err)
		}
		appearVars, err := s.Variables(solver.NodeAppearKind)
		if err != nil {
			t.Fatal(err)
		}
		target := track.NodeID(100)
		targetCol, _ := nodeVars.Column(target)
		appearCol, _ := appearVars.Column(target)
		edgeCols := make([]ilp.Column, 0, k)
		for _, e := range s.Graph().PrevEdges(target) {
			col, _ := edgeVars.Column(e)
			edgeCols = append(edgeCols, col)
		}

		for mask := 0; mask < 1<<(k+1); mask++ {
			values := make([]float64, model.NumColumns())
			// Sources have no incoming edges, so selecting them pins
			// their own appear indicators to 1
			for _, id := range s.Graph().NodesByFrame(0) {
				col, _ := nodeVars.Column(id)
				values[col] = 1
				acol, _ := appearVars.Column(id)
				values[acol] = 1
			}
			selected := mask&1 == 1
			if selected {
				values[targetCol] = 1
			}
			anyEdge := false
			for i, col := range edgeCols {
				if mask&(1<<(i+1)) != 0 {
					values[col] = 1
					anyEdge = true
				}
			}

			feasible := map[float64]bool{}
			for _, a := range []float64{0, 1} {
				values[appearCol] = a
				if model.Feasible(values, testEpsilon) {
					feasible[a] = true
				}
			}

			switch {
			case selected && !anyEdge:
				if feasible[0] || !feasible[1] {
					t.Errorf("k=%d mask=%b: appear must be exactly 1, feasible 0=%v 1=%v", k, mask, feasible[0], feasible[1])
				}
			case !selected && anyEdge:
				if feasible[0] || feasible[1] {
					t.Errorf("k=%d mask=%b: no appear value may be feasible, feasible 0=%v 1=%v", k, mask, feasible[0], feasible[1])
				}
			default:
				if !feasible[0] || feasible[1] {
					t.Errorf("k=%d mask=%b: appear must be exactly 0, feasible 0=%v 1=%v", k, mask, feasible[0], feasible[1])
				}
			}
		}
	}
}

func TestNodeAppearNeedsSelectionVariables(t *testing.T) {
	g := track.NewGraph()
	if err := g.AddNode(0, track.Attributes{"t": 0.0}); err != nil {
		t.Fatal(err)
	}
	s := solver.New(g)
	if err := s.AddVariable(NewNodeAppear()); err != nil {
		t.Fatal(err)
	}
	_, err := s.Compile()
	var ordErr *solver.OrderingError
	if !errors.As(err, &ordErr) {
		t.Errorf("expected an ordering error, got: %v", err)
	}
}
