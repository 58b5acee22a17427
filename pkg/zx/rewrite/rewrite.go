// Package rewrite applies local simplification rules to ZX diagrams.
//
// The package implements the two structural rules that operate purely on
// the graph store: spider fusion (two adjacent same-color spiders merge,
// phases add) and identity removal (a phase-zero spider with exactly two
// neighbors is deleted and its neighbors wired together). [Simplify] runs
// both to fixpoint.
//
// Phase arithmetic lives here, not in pkg/zx: the store records angles
// verbatim and this package reduces sums modulo 2π.
package rewrite

import (
	"errors"
	"math"

	"github.com/zxtools/zxviz/pkg/zx"
)

var (
	// ErrNotSpider is returned when a rule is applied to a boundary node.
	// Boundary ports are external anchors and are never rewritten.
	ErrNotSpider = errors.New("node is not a spider")

	// ErrKindMismatch is returned by [FuseSpiders] when the two spiders
	// are of different colors. Mixed-color fusion is not a valid rule.
	ErrKindMismatch = errors.New("mismatched spider kinds")

	// ErrSameNode is returned by [FuseSpiders] when both arguments name
	// the same node.
	ErrSameNode = errors.New("cannot fuse a spider with itself")

	// ErrNotIdentity is returned by [RemoveIdentity] when the spider has
	// a nonzero phase or does not have exactly two distinct neighbors.
	ErrNotIdentity = errors.New("spider is not an identity")
)

// normalize reduces an angle into [0, 2π).
func normalize(phase float64) float64 {
	p := math.Mod(phase, 2*math.Pi)
	if p < 0 {
		p += 2 * math.Pi
	}
	return p
}

// isZeroPhase reports whether the angle is ≡ 0 (mod 2π) within a small
// tolerance, so phases accumulated through repeated fusion still qualify.
func isZeroPhase(phase float64) bool {
	const eps = 1e-9
	p := normalize(phase)
	return p < eps || 2*math.Pi-p < eps
}

// FuseSpiders merges spider b into spider a: a's phase becomes the sum of
// both phases reduced mod 2π, every neighbor of b is rewired to a, and b
// is removed. A wire between a and b (the usual trigger for fusion) simply
// disappears with b; a self-loop is not created.
//
// Both nodes must exist, be distinct, and be spiders of the same color.
// On error the diagram is unchanged.
func FuseSpiders(d *zx.Diagram, a, b int) error {
	if a == b {
		return ErrSameNode
	}
	na, ok := d.Node(a)
	if !ok {
		return zx.ErrNodeNotFound
	}
	nb, ok := d.Node(b)
	if !ok {
		return zx.ErrNodeNotFound
	}
	if !na.Kind.IsSpider() || !nb.Kind.IsSpider() {
		return ErrNotSpider
	}
	if na.Kind != nb.Kind {
		return ErrKindMismatch
	}

	na.Phase = normalize(na.Phase + nb.Phase)

	for _, n := range d.Neighbors(b) {
		if n != a && n != b {
			if err := d.AddEdge(a, n); err != nil {
				return err
			}
		}
	}
	return d.RemoveNode(b)
}

// RemoveIdentity deletes a phase-zero spider that sits on a wire between
// exactly two distinct neighbors, reconnecting the neighbors directly.
// The node must exist and be a spider; otherwise the diagram is unchanged.
func RemoveIdentity(d *zx.Diagram, id int) error {
	n, ok := d.Node(id)
	if !ok {
		return zx.ErrNodeNotFound
	}
	if !n.Kind.IsSpider() {
		return ErrNotSpider
	}
	if !isZeroPhase(n.Phase) {
		return ErrNotIdentity
	}

	nbrs := d.Neighbors(id)
	if len(nbrs) != 2 || nbrs[0] == id || nbrs[1] == id {
		return ErrNotIdentity
	}

	if err := d.RemoveNode(id); err != nil {
		return err
	}
	return d.AddEdge(nbrs[0], nbrs[1])
}

// Simplify applies fusion and identity removal until neither rule matches,
// and returns the number of rewrites performed. The result depends only on
// the diagram's structure, not on iteration order, because each pass scans
// ids in sorted order.
func Simplify(d *zx.Diagram) int {
	total := 0
	for {
		n := simplifyPass(d)
		if n == 0 {
			return total
		}
		total += n
	}
}

// simplifyPass applies at most one round of rewrites across the diagram.
func simplifyPass(d *zx.Diagram) int {
	count := 0

	// Fuse adjacent same-color spider pairs.
	for _, e := range d.Edges() {
		a, ok := d.Node(e.Source)
		if !ok {
			continue // removed earlier in this pass
		}
		b, ok := d.Node(e.Target)
		if !ok || a.ID == b.ID {
			continue
		}
		if a.Kind.IsSpider() && a.Kind == b.Kind {
			if err := FuseSpiders(d, a.ID, b.ID); err == nil {
				count++
			}
		}
	}

	// Drop identity spiders.
	for _, n := range d.Nodes() {
		if !n.Kind.IsSpider() {
			continue
		}
		if err := RemoveIdentity(d, n.ID); err == nil {
			count++
		}
	}
	return count
}
