package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zxtools/zxviz/pkg/cache"
	"github.com/zxtools/zxviz/pkg/graph"
	"github.com/zxtools/zxviz/pkg/zx"
)

func testDiagram(t *testing.T) *zx.Diagram {
	t.Helper()
	d := zx.New()
	in := d.AddNode(zx.KindB, 0)
	z := d.AddNode(zx.KindZ, 0.5)
	out := d.AddNode(zx.KindB, 0)
	for _, pair := range [][2]int{{in, z}, {z, out}} {
		if err := d.AddEdge(pair[0], pair[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", pair[0], pair[1], err)
		}
	}
	return d
}

func writeDiagramFile(t *testing.T, d *zx.Diagram) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := graph.WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"all valid", []string{"svg", "png", "dot", "json"}, false},
		{"empty", nil, false},
		{"unknown", []string{"svg", "pdf"}, true},
		{"case sensitive", []string{"SVG"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.CacheTTL != DefaultCacheTTL {
		t.Errorf("default TTL = %v, want %v", opts.CacheTTL, DefaultCacheTTL)
	}
	if opts.Logger == nil {
		t.Error("default logger is nil")
	}

	custom := Options{Formats: []string{FormatDOT}, CacheTTL: time.Minute}
	custom.SetDefaults()
	if custom.Formats[0] != FormatDOT || custom.CacheTTL != time.Minute {
		t.Error("SetDefaults overwrote explicit values")
	}
}

func TestRunnerLoadMissingFile(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	if _, err := r.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error loading missing file")
	}
}

func TestRunnerExecuteDOTAndJSON(t *testing.T) {
	path := writeDiagramFile(t, testDiagram(t))

	r := NewRunner(nil, nil)
	defer r.Close()

	artifacts, err := r.Execute(context.Background(), path, Options{
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	dot := string(artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "graph ZX {") {
		t.Errorf("dot artifact missing header:\n%s", dot)
	}
	if !strings.Contains(dot, "0 -- 1;") {
		t.Errorf("dot artifact missing edge:\n%s", dot)
	}

	d, err := graph.Unmarshal(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact does not decode: %v", err)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 2 {
		t.Errorf("decoded %d nodes, %d edges, want 3 and 2", d.NodeCount(), d.EdgeCount())
	}
}

func TestRunnerExecuteSimplifies(t *testing.T) {
	d := zx.New()
	in := d.AddNode(zx.KindB, 0)
	a := d.AddNode(zx.KindZ, 0.25)
	b := d.AddNode(zx.KindZ, 0.25)
	out := d.AddNode(zx.KindB, 0)
	for _, pair := range [][2]int{{in, a}, {a, b}, {b, out}} {
		if err := d.AddEdge(pair[0], pair[1]); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	path := writeDiagramFile(t, d)

	r := NewRunner(nil, nil)
	defer r.Close()

	artifacts, err := r.Execute(context.Background(), path, Options{
		Simplify: true,
		Formats:  []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got, err := graph.Unmarshal(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.NodeCount() != 3 {
		t.Errorf("simplified diagram has %d nodes, want 3", got.NodeCount())
	}
}

func TestRunnerRenderInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	_, err := r.Render(context.Background(), testDiagram(t), Options{Formats: []string{"pdf"}})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestRunnerRenderCacheHit(t *testing.T) {
	ctx := context.Background()
	d := testDiagram(t)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	// Pre-seed the artifact so the renderer is never reached.
	want := []byte("<svg>cached</svg>")
	key := cache.ArtifactKey(cache.Hash([]byte(d.ToDOT())), FormatSVG)
	if err := c.Set(ctx, key, want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	r := NewRunner(c, nil)
	defer r.Close()

	artifacts, err := r.Render(ctx, d, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(artifacts[FormatSVG]) != string(want) {
		t.Errorf("svg artifact = %q, want cached value", artifacts[FormatSVG])
	}
}
