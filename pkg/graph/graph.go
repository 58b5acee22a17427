// Package graph defines the canonical serialization format for ZX diagrams.
//
// The format is a node-link JSON document used for files, the HTTP API,
// caching, and the diagram store:
//
//	{
//	  "nodes": [
//	    {"id": 0, "kind": "B"},
//	    {"id": 1, "kind": "Z", "phase": 0.7853981633974483}
//	  ],
//	  "edges": [{"source": 0, "target": 1}]
//	}
//
// Node kinds are the same one-letter tags the DOT export uses: "Z", "X",
// and "B". Ids survive a round trip exactly, so references held outside
// the diagram stay valid across save and load.
//
// Use [FromDiagram]/[ToDiagram] to convert to and from the mutable
// pkg/zx representation, and the Read/Write helpers for files and streams.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/zxtools/zxviz/pkg/zx"
)

// Kind tags used in the wire format.
const (
	KindZ = "Z"
	KindX = "X"
	KindB = "B"
)

// Graph is the serialized form of one diagram.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one serialized vertex. Phase is omitted when zero; it is only
// meaningful for spider kinds.
type Node struct {
	ID    int     `json:"id" bson:"id"`
	Kind  string  `json:"kind" bson:"kind"`
	Phase float64 `json:"phase,omitempty" bson:"phase,omitempty"`
}

// Edge is one serialized wire between two node ids.
type Edge struct {
	Source int `json:"source" bson:"source"`
	Target int `json:"target" bson:"target"`
}

// FromDiagram converts a diagram to its serialization format.
// Nodes and edges are sorted for deterministic output, so equal diagrams
// marshal to identical bytes (which the artifact cache relies on).
func FromDiagram(d *zx.Diagram) Graph {
	nodes := d.Nodes()
	edges := d.Edges()

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = Node{ID: n.ID, Kind: n.Kind.Label(), Phase: n.Phase}
	}
	for i, e := range edges {
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		out.Edges[i] = Edge{Source: a, Target: b}
	}
	return out
}

// ToDiagram converts a serialized graph back to a mutable diagram,
// preserving node ids. It returns an error if a node has an unknown kind
// or a duplicate or negative id, or if an edge references a missing node.
func ToDiagram(g Graph) (*zx.Diagram, error) {
	d := zx.New()
	for _, n := range g.Nodes {
		kind, err := parseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		if err := d.AddNodeWithID(n.ID, kind, n.Phase); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges {
		if err := d.AddEdge(e.Source, e.Target); err != nil {
			return nil, fmt.Errorf("edge %d--%d: %w", e.Source, e.Target, err)
		}
	}
	return d, nil
}

func parseKind(s string) (zx.NodeKind, error) {
	switch s {
	case KindZ:
		return zx.KindZ, nil
	case KindX:
		return zx.KindX, nil
	case KindB:
		return zx.KindB, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}

// Marshal converts a diagram to indented JSON bytes.
func Marshal(d *zx.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a diagram.
func Unmarshal(data []byte) (*zx.Diagram, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToDiagram(g)
}

// Write encodes a diagram as indented JSON to w.
func Write(d *zx.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDiagram(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON diagram from r. It does not close r.
func Read(r io.Reader) (*zx.Diagram, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToDiagram(g)
}

// WriteFile writes a diagram to a JSON file at path.
func WriteFile(d *zx.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// ReadFile reads a JSON file and returns the decoded diagram.
func ReadFile(path string) (*zx.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
