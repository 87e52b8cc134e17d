package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LdDl/mot-ilp/constraints"
	"github.com/LdDl/mot-ilp/costs"
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
	"github.com/LdDl/mot-ilp/variables"
)

// threeFrameGraph builds seven detections over three frames with
// candidate links between consecutive frames. Low distances mark the
// true continuations, high distances the decoys.
func threeFrameGraph(t *testing.T) *track.Graph {
	t.Helper()
	g := track.NewGraph()
	nodes := []struct {
		id    track.NodeID
		frame float64
	}{
		{0, 0}, {1, 0},
		{2, 1}, {3, 1},
		{4, 2}, {5, 2}, {6, 2},
	}
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n.id, track.Attributes{"t": n.frame, "score": 1.0}))
	}
	edges := []struct {
		from, to track.NodeID
		distance float64
	}{
		{0, 2, 1.0}, {1, 3, 1.0}, {0, 3, 50.0}, {1, 2, 50.0},
		{2, 4, 2.0}, {3, 5, 2.0}, {2, 5, 49.0}, {3, 4, 49.0}, {3, 6, 3.0},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.from, e.to, track.Attributes{"prediction_distance": e.distance}))
	}
	return g
}

func fullSolver(t *testing.T, g *track.Graph, opts ...solver.Option) *solver.Solver {
	t.Helper()
	s := solver.New(g, opts...)
	require.NoError(t, s.AddVariable(variables.NewNodeSelected()))
	require.NoError(t, s.AddVariable(variables.NewEdgeSelected()))
	require.NoError(t, s.AddVariable(variables.NewNodeAppear()))
	require.NoError(t, s.AddVariable(variables.NewNodeSplit()))
	require.NoError(t, s.AddConstraint(constraints.NewMaxParents(1)))
	require.NoError(t, s.AddConstraint(constraints.NewMaxChildren(2)))
	require.NoError(t, s.AddCost(costs.NewNodeSelection(-1.0, "score", -100.0)))
	require.NoError(t, s.AddCost(costs.NewEdgeSelection(1.0, "prediction_distance", 0.0)))
	require.NoError(t, s.AddCost(costs.NewAppear(200.0)))
	require.NoError(t, s.AddCost(costs.NewSplit(100.0)))
	return s
}

func TestTrackingThreeFrames(t *testing.T) {
	s := fullSolver(t, threeFrameGraph(t))
	solution, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, ilp.StatusOptimal, solution.Status())
	require.InDelta(t, -200.0, solution.Objective(), 1e-6)

	nodes, err := s.SelectedNodes(solution)
	require.NoError(t, err)
	require.ElementsMatch(t, []track.NodeID{0, 1, 2, 3, 4, 5}, nodes)

	edges, err := s.SelectedEdges(solution)
	require.NoError(t, err)
	require.ElementsMatch(t, []track.EdgeID{
		{From: 0, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 5},
	}, edges)

	appearVars, err := s.Variables(solver.NodeAppearKind)
	require.NoError(t, err)
	for _, id := range []track.NodeID{0, 1} {
		col, ok := appearVars.Column(id)
		require.True(t, ok)
		require.InDelta(t, 1.0, solution.Value(col), 1e-6, "node %d must start a track", id)
	}
	for _, id := range []track.NodeID{2, 3, 4, 5} {
		col, ok := appearVars.Column(id)
		require.True(t, ok)
		require.InDelta(t, 0.0, solution.Value(col), 1e-6, "node %d must continue a track", id)
	}
}

func TestTrackingWarmStartAgreement(t *testing.T) {
	warm := fullSolver(t, threeFrameGraph(t))
	cold := fullSolver(t, threeFrameGraph(t), solver.WithoutWarmStart())

	warmSolution, err := warm.Solve()
	require.NoError(t, err)
	coldSolution, err := cold.Solve()
	require.NoError(t, err)

	require.Equal(t, ilp.StatusOptimal, warmSolution.Status())
	require.Equal(t, ilp.StatusOptimal, coldSolution.Status())
	require.InDelta(t, coldSolution.Objective(), warmSolution.Objective(), 1e-6)
	// Seeded with a feasible incumbent, the search must not expand more
	require.LessOrEqual(t, warmSolution.Expanded(), coldSolution.Expanded())
}

func TestTrackingSelectedSubgraph(t *testing.T) {
	s := fullSolver(t, threeFrameGraph(t))
	solution, err := s.Solve()
	require.NoError(t, err)

	sub, err := s.SelectedSubgraph(solution)
	require.NoError(t, err)
	require.Equal(t, 6, sub.NumNodes())
	require.Equal(t, 4, sub.NumEdges())
	require.True(t, sub.HasEdge(track.EdgeID{From: 0, To: 2}))
	require.False(t, sub.HasNode(6))

	attrs := sub.EdgeAttributes(track.EdgeID{From: 2, To: 4})
	require.NotNil(t, attrs)
	require.InDelta(t, 2.0, attrs["prediction_distance"], 1e-6)

	begin, end := sub.Frames()
	require.Equal(t, 0, begin)
	require.Equal(t, 3, end)
}

func TestTrackingChain(t *testing.T) {
	g := track.NewGraph()
	require.NoError(t, g.AddNode(0, track.Attributes{"t": 0, "score": 0.8}))
	require.NoError(t, g.AddNode(1, track.Attributes{"t": 1, "score": 0.9}))
	require.NoError(t, g.AddNode(2, track.Attributes{"t": 2, "score": 0.6}))
	require.NoError(t, g.AddEdge(0, 1, track.Attributes{"distance": 1.0}))
	require.NoError(t, g.AddEdge(1, 2, track.Attributes{"distance": 1.0}))

	s := solver.New(g)
	require.NoError(t, s.AddVariable(variables.NewNodeSelected()))
	require.NoError(t, s.AddVariable(variables.NewEdgeSelected()))
	require.NoError(t, s.AddVariable(variables.NewNodeAppear()))
	require.NoError(t, s.AddConstraint(constraints.NewSelectEdgeNodes()))
	require.NoError(t, s.AddCost(costs.NewNodeSelection(-1.0, "score", -10.0)))
	require.NoError(t, s.AddCost(costs.NewEdgeSelection(2.0, "distance", 0.5)))
	require.NoError(t, s.AddCost(costs.NewAppear(5.0)))

	model, err := s.Compile()
	require.NoError(t, err)
	edgeVars, err := s.Variables(solver.EdgeSelectedKind)
	require.NoError(t, err)
	for _, el := range edgeVars.Elements() {
		col, ok := edgeVars.Column(el)
		require.True(t, ok)
		require.InDelta(t, 2.5, model.ObjectiveCoefficient(col), 1e-6)
	}

	solution, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, ilp.StatusOptimal, solution.Status())
	require.InDelta(t, -22.3, solution.Objective(), 1e-6)

	nodes, err := s.SelectedNodes(solution)
	require.NoError(t, err)
	require.ElementsMatch(t, []track.NodeID{0, 1, 2}, nodes)
	edges, err := s.SelectedEdges(solution)
	require.NoError(t, err)
	require.ElementsMatch(t, []track.EdgeID{{From: 0, To: 1}, {From: 1, To: 2}}, edges)

	appearVars, err := s.Variables(solver.NodeAppearKind)
	require.NoError(t, err)
	wantAppear := map[track.NodeID]float64{0: 1, 1: 0, 2: 0}
	for id, want := range wantAppear {
		col, ok := appearVars.Column(id)
		require.True(t, ok)
		require.InDelta(t, want, solution.Value(col), 1e-6)
	}
}

func TestTrackingNodeLimit(t *testing.T) {
	s := fullSolver(t, threeFrameGraph(t), solver.WithNodeLimit(1))
	solution, err := s.Solve()
	require.NoError(t, err)
	// The warm start provides an incumbent, so a truncated search still
	// reports a feasible solution
	require.Equal(t, ilp.StatusFeasible, solution.Status())
	require.GreaterOrEqual(t, solution.Objective(), -200.0)
}
