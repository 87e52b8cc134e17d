package ingest

import (
	"github.com/google/uuid"

	"github.com/LdDl/mot-ilp/track"
)

// Track is one recovered object trajectory: graph nodes in frame order.
// Parent is set when the trajectory branched off another one, as after
// a cell division.
type Track struct {
	ID     uuid.UUID
	Parent uuid.UUID
	Nodes  []track.NodeID
}

// AssembleTracks walks a selected subgraph and cuts it into
// trajectories: every node without an incoming edge starts a track, a
// node with several outgoing edges closes its track and hands over to
// one child track per branch.
func AssembleTracks(g *track.Graph) []Track {
	type head struct {
		node   track.NodeID
		parent uuid.UUID
	}
	var queue []head
	for _, id := range g.Nodes() {
		if len(g.PrevEdges(id)) == 0 {
			queue = append(queue, head{node: id})
		}
	}

	var tracks []Track
	visited := make(map[track.NodeID]bool)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next.node] {
			continue
		}
		tr := Track{ID: uuid.New(), Parent: next.parent}
		current := next.node
		for {
			visited[current] = true
			tr.Nodes = append(tr.Nodes, current)
			outgoing := g.NextEdges(current)
			if len(outgoing) == 1 && !visited[outgoing[0].To] {
				current = outgoing[0].To
				continue
			}
			if len(outgoing) > 1 {
				for _, e := range outgoing {
					queue = append(queue, head{node: e.To, parent: tr.ID})
				}
			}
			break
		}
		tracks = append(tracks, tr)
	}
	return tracks
}
