package zx

import (
	"errors"
	"slices"
)

// ErrNodeNotFound is returned by [Diagram.AddEdge] when either endpoint id
// is not present in the diagram, and by [Diagram.RemoveNode] when the id to
// remove does not exist. Both cases mean the caller has lost track of the
// diagram's node set; the operation is rejected before any state changes.
var ErrNodeNotFound = errors.New("node not found")

// ErrInvalidNodeID is returned by [Diagram.AddNodeWithID] when the id is
// negative or already in use.
var ErrInvalidNodeID = errors.New("invalid node id")

// NodeKind distinguishes the three node families of a ZX diagram.
type NodeKind int

const (
	// KindZ is a Z-spider (green generator), parameterized by a phase.
	KindZ NodeKind = iota
	// KindX is an X-spider (red generator), parameterized by a phase.
	KindX
	// KindB is a boundary node marking an external input or output port.
	// Boundary nodes carry no meaningful phase.
	KindB
)

// IsSpider reports whether the kind is a Z- or X-spider.
// Boundary nodes are not spiders and are never fused or rewritten.
func (k NodeKind) IsSpider() bool { return k == KindZ || k == KindX }

// Label returns the one-letter tag used in exports: "Z", "X", or "B".
func (k NodeKind) Label() string {
	switch k {
	case KindZ:
		return "Z"
	case KindX:
		return "X"
	default:
		return "B"
	}
}

// Node is a vertex of the diagram. ID is unique for the lifetime of the
// owning diagram. Phase is an angle in radians; it is stored verbatim and
// only meaningful for spiders (ignored for boundaries). The store never
// interprets phases arithmetically - that is the rewrite layer's job.
type Node struct {
	ID    int
	Kind  NodeKind
	Phase float64
}

// Edge is one undirected wire between two nodes, held by endpoint ids.
// Source and Target preserve the order the edge was last inserted with;
// identity is canonical and order-independent.
type Edge struct {
	Source int
	Target int
}

// edgeKey is the canonical identity of an undirected edge: a <= b always.
type edgeKey struct {
	a, b int
}

// canonical builds the order-independent key for the pair (a, b).
func canonical(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Diagram is the mutable graph store for one ZX diagram. It owns the node
// and edge maps and the id counter; ids are issued per diagram, never
// globally. The zero value is not usable - use [New].
//
// Diagram is not safe for concurrent use without external synchronization.
type Diagram struct {
	nodes  map[int]*Node
	edges  map[edgeKey]Edge
	nextID int
}

// New creates an empty diagram with the id counter at zero.
func New() *Diagram {
	return &Diagram{
		nodes: make(map[int]*Node),
		edges: make(map[edgeKey]Edge),
	}
}

// AddNode allocates the next unused id, stores a node with the given kind
// and phase, and returns the id. It always succeeds; every id returned by
// one diagram is distinct from every other id it has ever returned, even
// after removals.
func (d *Diagram) AddNode(kind NodeKind, phase float64) int {
	id := d.nextID
	d.nextID++
	d.nodes[id] = &Node{ID: id, Kind: kind, Phase: phase}
	return id
}

// AddNodeWithID stores a node under a caller-chosen id, for rebuilding a
// diagram from serialized data where ids must survive a round trip.
// The id must be non-negative and unused; the internal counter is advanced
// past it so ids issued later by AddNode stay unique.
func (d *Diagram) AddNodeWithID(id int, kind NodeKind, phase float64) error {
	if id < 0 {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[id]; exists {
		return ErrInvalidNodeID
	}
	d.nodes[id] = &Node{ID: id, Kind: kind, Phase: phase}
	if id >= d.nextID {
		d.nextID = id + 1
	}
	return nil
}

// AddEdge inserts the undirected edge between a and b, stored once under
// the canonical (min, max) key. Inserting an edge that already exists
// overwrites the stored record, so the graph stays simple. Self-loops
// (a == b) are permitted at this layer.
//
// Returns ErrNodeNotFound if either endpoint is missing; the diagram is
// left unchanged in that case.
func (d *Diagram) AddEdge(a, b int) error {
	if _, ok := d.nodes[a]; !ok {
		return ErrNodeNotFound
	}
	if _, ok := d.nodes[b]; !ok {
		return ErrNodeNotFound
	}
	d.edges[canonical(a, b)] = Edge{Source: a, Target: b}
	return nil
}

// HasEdge reports whether a wire exists between a and b. The lookup is
// order-independent: HasEdge(a, b) == HasEdge(b, a). Pure query.
func (d *Diagram) HasEdge(a, b int) bool {
	_, ok := d.edges[canonical(a, b)]
	return ok
}

// RemoveEdge deletes the edge between a and b if present. Removing an
// absent edge is a no-op, not an error: rewrite rules speculatively remove
// edges they are not certain exist, and idempotence keeps callers simple.
func (d *Diagram) RemoveEdge(a, b int) {
	delete(d.edges, canonical(a, b))
}

// RemoveNode deletes the node with the given id together with every edge
// incident to it, preserving referential integrity. Unlike RemoveEdge this
// is strict: removing an id that does not exist returns ErrNodeNotFound,
// since it signals the caller no longer knows the diagram's node set.
//
// The cascade scans all edges, so removal is O(E).
func (d *Diagram) RemoveNode(id int) error {
	if _, ok := d.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	delete(d.nodes, id)
	for k := range d.edges {
		if k.a == id || k.b == id {
			delete(d.edges, k)
		}
	}
	return nil
}

// Node returns the node with the given id and true, or nil and false if it
// does not exist. The pointer refers to the stored node; callers may adjust
// Kind and Phase in place, but must not change ID.
func (d *Diagram) Node(id int) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id. The slice is freshly allocated but
// shares node pointers with the diagram.
func (d *Diagram) Nodes() []*Node {
	out := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(x, y *Node) int { return x.ID - y.ID })
	return out
}

// Edges returns a copy of all edges sorted by canonical key.
func (d *Diagram) Edges() []Edge {
	keys := make([]edgeKey, 0, len(d.edges))
	for k := range d.edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y edgeKey) int {
		if x.a != y.a {
			return x.a - y.a
		}
		return x.b - y.b
	})
	out := make([]Edge, len(keys))
	for i, k := range keys {
		out[i] = d.edges[k]
	}
	return out
}

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the diagram.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Neighbors returns the ids wired to the given node, sorted ascending.
// A self-loop contributes the node's own id once. Returns nil if the node
// has no incident edges or does not exist.
func (d *Diagram) Neighbors(id int) []int {
	var out []int
	for k := range d.edges {
		switch {
		case k.a == id:
			out = append(out, k.b)
		case k.b == id:
			out = append(out, k.a)
		}
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of edges incident to the node. A self-loop
// counts once. Returns 0 if the node does not exist.
func (d *Diagram) Degree(id int) int {
	n := 0
	for k := range d.edges {
		if k.a == id || k.b == id {
			n++
		}
	}
	return n
}

// Validate checks that every stored edge references existing nodes and
// returns nil if the diagram is structurally sound. The exported mutation
// operations maintain this invariant themselves; Validate exists as a
// guard after bulk construction from external data.
func (d *Diagram) Validate() error {
	for k := range d.edges {
		if _, ok := d.nodes[k.a]; !ok {
			return ErrNodeNotFound
		}
		if _, ok := d.nodes[k.b]; !ok {
			return ErrNodeNotFound
		}
	}
	return nil
}
