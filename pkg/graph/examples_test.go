package graph

import (
	"path/filepath"
	"testing"

	"github.com/zxtools/zxviz/pkg/zx"
)

// The diagrams shipped under examples/ are part of the documented surface;
// make sure they stay loadable and well-formed.
func TestShippedExamples(t *testing.T) {
	tests := []struct {
		file      string
		nodes     int
		edges     int
		wantKinds map[zx.NodeKind]int
	}{
		{
			file:      "cnot.json",
			nodes:     6,
			edges:     5,
			wantKinds: map[zx.NodeKind]int{zx.KindB: 4, zx.KindZ: 1, zx.KindX: 1},
		},
		{
			file:      "chain.json",
			nodes:     5,
			edges:     4,
			wantKinds: map[zx.NodeKind]int{zx.KindB: 2, zx.KindZ: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			d, err := ReadFile(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("ReadFile = %v", err)
			}
			if d.NodeCount() != tt.nodes || d.EdgeCount() != tt.edges {
				t.Errorf("shape = %d nodes / %d edges, want %d / %d",
					d.NodeCount(), d.EdgeCount(), tt.nodes, tt.edges)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate = %v", err)
			}

			kinds := make(map[zx.NodeKind]int)
			for _, n := range d.Nodes() {
				kinds[n.Kind]++
			}
			for kind, want := range tt.wantKinds {
				if kinds[kind] != want {
					t.Errorf("%s count = %d, want %d", kind.Label(), kinds[kind], want)
				}
			}
		})
	}
}
