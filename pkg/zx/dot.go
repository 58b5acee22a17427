package zx

import (
	"bytes"
	"fmt"
)

// ToDOT renders the diagram as Graphviz DOT source for visualization
// tooling. Each node becomes one declaration line tagged with its kind
// letter (Z, X, or B) and, for spiders, the phase to two decimal places;
// each wire becomes one `a -- b` line. Output is sorted by id so repeated
// exports of the same diagram are byte-identical.
//
// The format is export-only; there is no corresponding parser. Use
// [Diagram.ToDOT] with pkg/render to produce SVG or PNG.
func (d *Diagram) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("graph ZX {\n")

	for _, n := range d.Nodes() {
		label := n.Kind.Label()
		if n.Kind.IsSpider() {
			label = fmt.Sprintf("%s\\n%.2f", label, n.Phase)
		}
		fmt.Fprintf(&buf, "    %d [label=\"%s\", shape=circle];\n", n.ID, label)
	}

	for _, e := range d.Edges() {
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		fmt.Fprintf(&buf, "    %d -- %d;\n", a, b)
	}

	buf.WriteString("}\n")
	return buf.String()
}
