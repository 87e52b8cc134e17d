package solver

import (
	"github.com/arthurkushman/go-hungarian"

	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/track"
)

// initialAssignment builds a feasible starting solution the way a
// frame-to-frame tracker would: select every node that pays for itself,
// link consecutive frames with an optimal assignment on the link gains,
// then derive the appear and split indicators from the links. The
// heuristic applies only when every registered kind is a bundled one;
// the guess is verified against the compiled model and dropped when it
// violates any constraint.
func (s *Solver) initialAssignment(model *ilp.Model) ([]float64, bool) {
	for kind := range s.varMaps {
		switch kind {
		case NodeSelectedKind, EdgeSelectedKind, NodeAppearKind, NodeSplitKind:
		default:
			return nil, false
		}
	}
	nodeVars, ok := s.varMaps[NodeSelectedKind]
	if !ok {
		return nil, false
	}
	edgeVars, ok := s.varMaps[EdgeSelectedKind]
	if !ok {
		return nil, false
	}
	appearVars := s.varMaps[NodeAppearKind]
	splitVars := s.varMaps[NodeSplitKind]

	values := make([]float64, model.NumColumns())

	selected := make(map[track.NodeID]bool)
	for _, el := range nodeVars.Elements() {
		id, isNode := el.(track.NodeID)
		if !isNode {
			return nil, false
		}
		col, _ := nodeVars.Column(el)
		if model.ObjectiveCoefficient(col) < 0 {
			values[col] = 1
			selected[id] = true
		}
	}

	begin, end := s.graph.Frames()
	for t := begin; t < end-1; t++ {
		sources := selectedInFrame(s.graph, selected, t)
		targets := selectedInFrame(s.graph, selected, t+1)
		if len(sources) == 0 || len(targets) == 0 {
			continue
		}
		// Pad the gain matrix to square form for the assignment solver.
		// A link gains the appear cost it saves at the target minus the
		// cost of the edge itself; zero-gain pairs stay unlinked.
		size := max(len(sources), len(targets))
		gains := make([][]float64, size)
		for i := range gains {
			gains[i] = make([]float64, size)
		}
		anyGain := false
		for i, u := range sources {
			for j, v := range targets {
				col, found := edgeVars.Column(track.EdgeID{From: u, To: v})
				if !found {
					continue
				}
				gain := appearCoefficient(model, appearVars, v) - model.ObjectiveCoefficient(col)
				if gain > 0 {
					gains[i][j] = gain
					anyGain = true
				}
			}
		}
		if !anyGain {
			continue
		}
		for i, row := range hungarian.SolveMax(gains) {
			for j := range row {
				if i >= len(sources) || j >= len(targets) {
					continue
				}
				if gains[i][j] <= 0 {
					continue
				}
				if col, found := edgeVars.Column(track.EdgeID{From: sources[i], To: targets[j]}); found {
					values[col] = 1
				}
			}
		}
	}

	if appearVars != nil {
		for _, el := range appearVars.Elements() {
			id, isNode := el.(track.NodeID)
			if !isNode {
				return nil, false
			}
			if !selected[id] {
				continue
			}
			if countLinked(s.graph.PrevEdges(id), edgeVars, values) == 0 {
				col, _ := appearVars.Column(el)
				values[col] = 1
			}
		}
	}
	if splitVars != nil {
		for _, el := range splitVars.Elements() {
			id, isNode := el.(track.NodeID)
			if !isNode {
				return nil, false
			}
			if countLinked(s.graph.NextEdges(id), edgeVars, values) > 1 {
				col, _ := splitVars.Column(el)
				values[col] = 1
			}
		}
	}

	if !model.Feasible(values, feasibilityEpsilon) {
		s.logger.Warn("assignment heuristic produced an infeasible guess, ignoring it")
		return nil, false
	}
	s.logger.Debug("assignment heuristic found a feasible start")
	return values, true
}

func selectedInFrame(g *track.Graph, selected map[track.NodeID]bool, t int) []track.NodeID {
	var out []track.NodeID
	for _, id := range g.NodesByFrame(t) {
		if selected[id] {
			out = append(out, id)
		}
	}
	return out
}

func appearCoefficient(model *ilp.Model, appearVars *VarMap, v track.NodeID) float64 {
	if appearVars == nil {
		return 0
	}
	col, ok := appearVars.Column(v)
	if !ok {
		return 0
	}
	return model.ObjectiveCoefficient(col)
}

func countLinked(edges []track.EdgeID, edgeVars *VarMap, values []float64) int {
	n := 0
	for _, e := range edges {
		if col, ok := edgeVars.Column(e); ok && values[col] > 0.5 {
			n++
		}
	}
	return n
}
