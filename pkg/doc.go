// Package pkg provides the core libraries for zxviz diagram storage and
// visualization.
//
// # Overview
//
// Zxviz stores ZX-calculus diagrams as mutable graphs and turns them into
// Graphviz renderings. The pkg directory is organized into these areas:
//
//  1. [zx] - The mutable diagram: spiders, boundaries, wires, DOT export
//  2. [zx/rewrite] - Spider fusion and identity removal
//  3. [graph] - Node-link JSON serialization
//  4. [render] - Graphviz SVG/PNG rendering
//  5. [cache] - Rendered artifact caching (file, Redis, null)
//  6. [store] - Named diagram persistence (memory, MongoDB)
//  7. [pipeline] - Orchestration (load, simplify, render)
//
// # Architecture
//
// The typical data flow through zxviz:
//
//	JSON diagram file or HTTP body
//	         ↓
//	    [graph] package (decode into a diagram)
//	         ↓
//	    [zx] package (mutable graph + DOT export)
//	         ↓
//	    [render] package (Graphviz SVG/PNG)
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Quick Start
//
//	d := zx.New()
//	in := d.AddNode(zx.KindB, 0)
//	spider := d.AddNode(zx.KindZ, math.Pi/2)
//	_ = d.AddEdge(in, spider)
//	fmt.Print(d.ToDOT())
package pkg
