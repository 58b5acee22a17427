// Package zx implements the mutable graph store underlying a ZX-calculus
// diagram: an undirected graph whose nodes are Z-spiders, X-spiders, and
// boundary ports, connected by wires.
//
// # Overview
//
// A [Diagram] owns all of its nodes and edges. Nodes are identified by
// integer ids issued by the diagram itself; ids are never reused within a
// diagram's lifetime, so external collaborators (rewrite engines,
// evaluators, renderers) can hold ids as stable weak references without
// any ownership links between nodes.
//
// Edges are undirected and stored once under the canonical key
// (min(a,b), max(a,b)), which makes "is a wired to b" an O(1) lookup
// regardless of the order the endpoints are given in. The graph is simple:
// adding an edge that already exists overwrites the stored record rather
// than accumulating parallel wires.
//
// # Usage
//
// Build a small diagram and export it:
//
//	d := zx.New()
//	z := d.AddNode(zx.KindZ, 0)
//	x := d.AddNode(zx.KindX, math.Pi/2)
//	if err := d.AddEdge(z, x); err != nil {
//	    return err
//	}
//	fmt.Print(d.ToDOT())
//
// # Invariants
//
// After every exported operation:
//
//   - every node id in the diagram is distinct, and the internal id
//     counter exceeds the largest id ever issued
//   - every stored edge's endpoints exist in the node set
//   - at most one edge is stored per unordered node pair
//
// Removing a node cascades to every incident edge. [Diagram.Validate]
// re-checks edge integrity and is useful after bulk deserialization.
//
// # Concurrency
//
// Diagram is a single-owner structure and is not safe for concurrent
// mutation. Read-only queries may be shared across goroutines only while
// no mutation is in flight; callers needing concurrent access must wrap
// each diagram in their own lock.
package zx
