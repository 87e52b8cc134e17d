package ingest

import (
	"testing"

	"github.com/google/uuid"

	"github.com/LdDl/mot-ilp/constraints"
	"github.com/LdDl/mot-ilp/costs"
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/solver"
	"github.com/LdDl/mot-ilp/track"
	"github.com/LdDl/mot-ilp/variables"
)

// twoObjectScene builds detections of two objects moving right over
// three frames, a hundred pixels apart.
func twoObjectScene() []Detection {
	var out []Detection
	for frame := 0; frame < 3; frame++ {
		x := float64(frame) * 10.0
		out = append(out, NewDetection(frame, NewRect(x, 0, 12, 12), 0.9))
		out = append(out, NewDetection(frame, NewRect(x, 100, 12, 12), 0.8))
	}
	return out
}

func TestBuilderGraph(t *testing.T) {
	g, index, err := NewBuilder(20.0, 1, 1.0).Graph(twoObjectScene())
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes() != 6 {
		t.Errorf("incorrect number of nodes: %d, expected: %d", g.NumNodes(), 6)
	}
	if g.NumEdges() != 4 {
		t.Errorf("incorrect number of edges: %d, expected: %d", g.NumEdges(), 4)
	}
	for _, e := range []track.EdgeID{{From: 0, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 5}} {
		if !g.HasEdge(e) {
			t.Errorf("missing candidate link %s", e)
		}
	}
	// Links between the two objects must be gated away
	if g.HasEdge(track.EdgeID{From: 0, To: 3}) || g.HasEdge(track.EdgeID{From: 1, To: 2}) {
		t.Error("links between distant objects must be gated away")
	}

	attrs := g.EdgeAttributes(track.EdgeID{From: 0, To: 2})
	dist, ok := attrs[PredictionDistanceAttribute]
	if !ok {
		t.Fatalf("missing %q attribute", PredictionDistanceAttribute)
	}
	if dist < 0 || dist > 20 {
		t.Errorf("prediction distance out of the gate: %f", dist)
	}
	if iou, ok := attrs[IoUAttribute]; !ok || iou <= 0 || iou > 1 {
		t.Errorf("incorrect overlap for consecutive boxes: %f", iou)
	}

	nodeAttrs := g.NodeAttributes(0)
	if nodeAttrs[ScoreAttribute] != 0.9 {
		t.Errorf("incorrect score: %f, expected: %f", nodeAttrs[ScoreAttribute], 0.9)
	}
	if nodeAttrs[XAttribute] != 6.0 || nodeAttrs[YAttribute] != 6.0 {
		t.Errorf("incorrect center attributes: (%f, %f)", nodeAttrs[XAttribute], nodeAttrs[YAttribute])
	}
	if frame, ok := g.Frame(0); !ok || frame != 0 {
		t.Errorf("incorrect frame: %d", frame)
	}
	if index[5].Frame != 2 {
		t.Errorf("incorrect index entry: %s", index[5])
	}
}

func TestBuilderFrameGap(t *testing.T) {
	g, _, err := NewBuilder(20.0, 2, 1.0).Graph(twoObjectScene())
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasEdge(track.EdgeID{From: 0, To: 4}) || !g.HasEdge(track.EdgeID{From: 1, To: 5}) {
		t.Error("expected links across the skipped frame")
	}
	if g.NumEdges() != 6 {
		t.Errorf("incorrect number of edges: %d, expected: %d", g.NumEdges(), 6)
	}
}

// TestBuilderPipeline runs the whole chain: detections to candidate
// graph, compiled model, solved selection, assembled tracks.
func TestBuilderPipeline(t *testing.T) {
	g, _, err := NewDefaultBuilder().Graph(twoObjectScene())
	if err != nil {
		t.Fatal(err)
	}

	s := solver.New(g)
	if err := s.AddVariable(variables.NewNodeSelected()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable(variables.NewEdgeSelected()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable(variables.NewNodeAppear()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVariable(variables.NewNodeSplit()); err != nil {
		t.Fatal(err)
	}
	if err := s.AddConstraint(constraints.NewMaxParents(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddConstraint(constraints.NewMaxChildren(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCost(costs.NewNodeSelection(-1.0, ScoreAttribute, -10.0)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCost(costs.NewEdgeSelection(1.0, PredictionDistanceAttribute, -15.0)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCost(costs.NewAppear(30.0)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCost(costs.NewSplit(10.0)); err != nil {
		t.Fatal(err)
	}

	solution, err := s.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if solution.Status() != ilp.StatusOptimal {
		t.Fatalf("incorrect status: %s, expected: %s", solution.Status(), ilp.StatusOptimal)
	}

	sub, err := s.SelectedSubgraph(solution)
	if err != nil {
		t.Fatal(err)
	}
	tracks := AssembleTracks(sub)
	if len(tracks) != 2 {
		t.Fatalf("incorrect number of tracks: %d, expected: %d", len(tracks), 2)
	}
	for _, tr := range tracks {
		if len(tr.Nodes) != 3 {
			t.Errorf("incorrect track length: %d, expected: %d", len(tr.Nodes), 3)
		}
		if tr.Parent != uuid.Nil {
			t.Errorf("unexpected parent for track %s", tr.ID)
		}
		for i := 1; i < len(tr.Nodes); i++ {
			prev, _ := sub.Frame(tr.Nodes[i-1])
			next, _ := sub.Frame(tr.Nodes[i])
			if next != prev+1 {
				t.Errorf("track %s does not advance frame by frame: %d to %d", tr.ID, prev, next)
			}
		}
	}
}
