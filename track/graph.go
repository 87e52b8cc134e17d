// Package track holds the time-indexed candidate graph that tracking
// problems are built on: nodes are candidate detections, edges are
// candidate links between detections in different frames.
package track

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultFrameAttribute is the node attribute holding the frame index.
const DefaultFrameAttribute = "t"

var (
	ErrNodeExists   = errors.New("node already exists")
	ErrEdgeExists   = errors.New("edge already exists")
	ErrNodeNotFound = errors.New("node does not exist")
	ErrMissingFrame = errors.New("missing frame attribute")
)

// NodeID identifies a candidate detection.
type NodeID int64

// EdgeID identifies a candidate link as an ordered pair of nodes.
type EdgeID struct {
	From NodeID
	To   NodeID
}

// Element is either a NodeID or an EdgeID. Indicator variables are keyed
// by Element, so both implementations must stay comparable.
type Element interface {
	fmt.Stringer
	isElement()
}

func (NodeID) isElement() {}
func (EdgeID) isElement() {}

func (n NodeID) String() string {
	return fmt.Sprintf("node %d", int64(n))
}

func (e EdgeID) String() string {
	return fmt.Sprintf("edge %d->%d", int64(e.From), int64(e.To))
}

// Attributes holds named numeric features of a node or an edge.
type Attributes map[string]float64

// Graph is a time-indexed candidate graph. Nodes and edges keep their
// insertion order so that column allocation downstream is reproducible.
// A Graph is built once and treated as immutable afterwards.
type Graph struct {
	// Name of the node attribute holding the frame index
	frameAttribute string
	// Node and edge storage with stable iteration order
	nodes     map[NodeID]Attributes
	nodeOrder []NodeID
	edges     map[EdgeID]Attributes
	edgeOrder []EdgeID
	// Adjacency: incoming and outgoing edges per node
	prevEdges map[NodeID][]EdgeID
	nextEdges map[NodeID][]EdgeID
	// Frame index
	frames  map[NodeID]int
	byFrame map[int][]NodeID
	tBegin  int
	tEnd    int
}

// NewGraph creates an empty graph using DefaultFrameAttribute.
func NewGraph() *Graph {
	return NewGraphWithFrameAttribute(DefaultFrameAttribute)
}

// NewGraphWithFrameAttribute creates an empty graph reading frame indices
// from the given node attribute.
func NewGraphWithFrameAttribute(frameAttribute string) *Graph {
	return &Graph{
		frameAttribute: frameAttribute,
		nodes:          make(map[NodeID]Attributes),
		edges:          make(map[EdgeID]Attributes),
		prevEdges:      make(map[NodeID][]EdgeID),
		nextEdges:      make(map[NodeID][]EdgeID),
		frames:         make(map[NodeID]int),
		byFrame:        make(map[int][]NodeID),
	}
}

// FrameAttribute returns the name of the node attribute holding the frame index.
func (g *Graph) FrameAttribute() string {
	return g.frameAttribute
}

// AddNode adds a candidate detection. The attributes must carry the frame
// attribute; they are stored by reference, not copied.
func (g *Graph) AddNode(id NodeID, attrs Attributes) error {
	if _, ok := g.nodes[id]; ok {
		return errors.Wrapf(ErrNodeExists, "node %d", int64(id))
	}
	frame, ok := attrs[g.frameAttribute]
	if !ok {
		return errors.Wrapf(ErrMissingFrame, "node %d requires attribute %q", int64(id), g.frameAttribute)
	}
	t := int(frame)
	g.nodes[id] = attrs
	g.nodeOrder = append(g.nodeOrder, id)
	g.frames[id] = t
	g.byFrame[t] = append(g.byFrame[t], id)
	if len(g.nodeOrder) == 1 {
		g.tBegin = t
		g.tEnd = t + 1
	} else {
		if t < g.tBegin {
			g.tBegin = t
		}
		if t+1 > g.tEnd {
			g.tEnd = t + 1
		}
	}
	return nil
}

// AddEdge adds a candidate link between two existing nodes.
func (g *Graph) AddEdge(from, to NodeID, attrs Attributes) error {
	if _, ok := g.nodes[from]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "edge %d->%d: source", int64(from), int64(to))
	}
	if _, ok := g.nodes[to]; !ok {
		return errors.Wrapf(ErrNodeNotFound, "edge %d->%d: target", int64(from), int64(to))
	}
	e := EdgeID{From: from, To: to}
	if _, ok := g.edges[e]; ok {
		return errors.Wrapf(ErrEdgeExists, "edge %d->%d", int64(from), int64(to))
	}
	if attrs == nil {
		attrs = Attributes{}
	}
	g.edges[e] = attrs
	g.edgeOrder = append(g.edgeOrder, e)
	g.nextEdges[from] = append(g.nextEdges[from], e)
	g.prevEdges[to] = append(g.prevEdges[to], e)
	return nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge exists.
func (g *Graph) HasEdge(e EdgeID) bool {
	_, ok := g.edges[e]
	return ok
}

// Nodes returns all nodes in insertion order.
// Be careful: this is not a copy, but a reference to the internal slice.
func (g *Graph) Nodes() []NodeID {
	return g.nodeOrder
}

// Edges returns all edges in insertion order.
// Be careful: this is not a copy, but a reference to the internal slice.
func (g *Graph) Edges() []EdgeID {
	return g.edgeOrder
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodeOrder)
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return len(g.edgeOrder)
}

// NodeAttributes returns the attributes of a node, or nil if the node does not exist.
func (g *Graph) NodeAttributes(id NodeID) Attributes {
	return g.nodes[id]
}

// EdgeAttributes returns the attributes of an edge, or nil if the edge does not exist.
func (g *Graph) EdgeAttributes(e EdgeID) Attributes {
	return g.edges[e]
}

// PrevEdges returns the incoming edges of a node in insertion order.
func (g *Graph) PrevEdges(id NodeID) []EdgeID {
	return g.prevEdges[id]
}

// NextEdges returns the outgoing edges of a node in insertion order.
func (g *Graph) NextEdges(id NodeID) []EdgeID {
	return g.nextEdges[id]
}

// Frame returns the frame index of a node.
func (g *Graph) Frame(id NodeID) (int, bool) {
	t, ok := g.frames[id]
	return t, ok
}

// Frames returns the frame range [begin, end) covered by the graph.
// The end is exclusive. An empty graph returns (0, 0).
func (g *Graph) Frames() (int, int) {
	if len(g.nodeOrder) == 0 {
		return 0, 0
	}
	return g.tBegin, g.tEnd
}

// NodesByFrame returns the nodes of a single frame in insertion order.
func (g *Graph) NodesByFrame(t int) []NodeID {
	return g.byFrame[t]
}
