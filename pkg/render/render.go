// Package render turns DOT source into image bytes using Graphviz.
//
// The input is the diagram's own DOT export ([zx.Diagram.ToDOT]); rendering
// happens in-process via github.com/goccy/go-graphviz, so no external
// graphviz installation is required.
//
// Starting a Graphviz instance loads a WebAssembly runtime, which is the
// expensive part. [Renderer] holds one instance across calls so a batch of
// formats pays the startup cost once:
//
//	r, err := render.NewRenderer(ctx)
//	defer r.Close()
//	svg, err := r.SVG(ctx, d.ToDOT())
//	png, err := r.PNG(ctx, d.ToDOT())
//
// The package-level [SVG] and [PNG] are one-shot conveniences that create
// and close an instance per call.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Renderer renders DOT source with a single shared Graphviz instance.
// It is not safe for concurrent use; create one per render batch.
type Renderer struct {
	gv *graphviz.Graphviz
}

// NewRenderer starts a Graphviz instance. Close releases it.
func NewRenderer(ctx context.Context) (*Renderer, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	return &Renderer{gv: gv}, nil
}

// SVG renders DOT source to SVG bytes. The root <svg> element is rewritten
// to a zero-origin viewBox with explicit pixel dimensions so the output
// embeds cleanly in HTML without further processing.
func (r *Renderer) SVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := r.render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// PNG renders DOT source to PNG bytes using Graphviz's native raster
// renderer.
func (r *Renderer) PNG(ctx context.Context, dot string) ([]byte, error) {
	return r.render(ctx, dot, graphviz.PNG)
}

// Close releases the underlying Graphviz instance.
func (r *Renderer) Close() error {
	return r.gv.Close()
}

func (r *Renderer) render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := r.gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// SVG renders DOT source to SVG bytes with a fresh Graphviz instance.
func SVG(dot string) ([]byte, error) {
	return oneShot(func(ctx context.Context, r *Renderer) ([]byte, error) {
		return r.SVG(ctx, dot)
	})
}

// PNG renders DOT source to PNG bytes with a fresh Graphviz instance.
func PNG(dot string) ([]byte, error) {
	return oneShot(func(ctx context.Context, r *Renderer) ([]byte, error) {
		return r.PNG(ctx, dot)
	})
}

func oneShot(f func(context.Context, *Renderer) ([]byte, error)) ([]byte, error) {
	ctx := context.Background()
	r, err := NewRenderer(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return f(ctx, r)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
