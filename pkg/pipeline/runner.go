package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zxtools/zxviz/pkg/cache"
	"github.com/zxtools/zxviz/pkg/graph"
	"github.com/zxtools/zxviz/pkg/observability"
	"github.com/zxtools/zxviz/pkg/render"
	"github.com/zxtools/zxviz/pkg/zx"
	"github.com/zxtools/zxviz/pkg/zx/rewrite"
)

// Runner executes pipeline stages with a shared cache and logger.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Load reads a diagram from a JSON file.
func (r *Runner) Load(ctx context.Context, path string) (*zx.Diagram, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	d, err := graph.ReadFile(path)
	nodes := 0
	if d != nil {
		nodes = d.NodeCount()
	}
	observability.Pipeline().OnLoadComplete(ctx, path, nodes, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	r.logger.Debug("loaded diagram", "path", path, "nodes", d.NodeCount(), "edges", d.EdgeCount())
	return d, nil
}

// Simplify runs the rewrite pass to fixpoint and returns the number of
// rewrites applied.
func (r *Runner) Simplify(ctx context.Context, d *zx.Diagram) int {
	start := time.Now()
	observability.Pipeline().OnSimplifyStart(ctx, d.NodeCount())

	n := rewrite.Simplify(d)

	observability.Pipeline().OnSimplifyComplete(ctx, n, time.Since(start))
	r.logger.Debug("simplified diagram", "rewrites", n, "nodes", d.NodeCount())
	return n
}

// Render produces the requested artifact formats for the diagram.
// SVG and PNG renders are cached under the hash of the DOT source; DOT and
// JSON are cheap enough to regenerate every time.
func (r *Runner) Render(ctx context.Context, d *zx.Diagram, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	dot := d.ToDOT()
	dotHash := cache.Hash([]byte(dot))

	// One Graphviz instance serves every format in the batch. It starts
	// lazily so cache hits and DOT/JSON-only runs never pay for it.
	var renderer *render.Renderer
	getRenderer := func() (*render.Renderer, error) {
		if renderer == nil {
			var err error
			if renderer, err = render.NewRenderer(ctx); err != nil {
				return nil, err
			}
		}
		return renderer, nil
	}
	defer func() {
		if renderer != nil {
			renderer.Close()
		}
	}()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		artifacts[format], err = r.renderOne(ctx, d, dot, dotHash, format, opts.CacheTTL, getRenderer)
		if err != nil {
			break
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (r *Runner) renderOne(ctx context.Context, d *zx.Diagram, dot, dotHash, format string, ttl time.Duration, getRenderer func() (*render.Renderer, error)) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return graph.Marshal(d)
	}

	key := cache.ArtifactKey(dotHash, format)
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		r.logger.Debug("artifact cache hit", "format", format)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	renderer, err := getRenderer()
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	var data []byte
	switch format {
	case FormatSVG:
		data, err = renderer.SVG(ctx, dot)
	case FormatPNG:
		data, err = renderer.PNG(ctx, dot)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	if err := r.cache.Set(ctx, key, data, ttl); err != nil {
		// A cache write failure degrades to uncached operation.
		r.logger.Warn("artifact cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

// Execute runs the full pipeline: load the diagram at path, optionally
// simplify it, and render the requested formats.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()

	d, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if opts.Simplify {
		r.Simplify(ctx, d)
	}
	return r.Render(ctx, d, opts)
}
