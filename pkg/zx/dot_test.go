package zx

import (
	"strings"
	"testing"
)

func TestToDOTEmpty(t *testing.T) {
	d := New()
	want := "graph ZX {\n}\n"
	if got := d.ToDOT(); got != want {
		t.Errorf("ToDOT() = %q, want %q", got, want)
	}
}

func TestToDOTDeclarations(t *testing.T) {
	d := New()
	z := d.AddNode(KindZ, 0)
	x := d.AddNode(KindX, 1.5708)
	b := d.AddNode(KindB, 99) // phase must be ignored for boundaries
	if err := d.AddEdge(z, x); err != nil {
		t.Fatal(err)
	}
	if err := d.AddEdge(x, b); err != nil {
		t.Fatal(err)
	}

	got := d.ToDOT()
	wantLines := []string{
		`    0 [label="Z\n0.00", shape=circle];`,
		`    1 [label="X\n1.57", shape=circle];`,
		`    2 [label="B", shape=circle];`,
		"    0 -- 1;",
		"    1 -- 2;",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("ToDOT() missing line %q\ngot:\n%s", line, got)
		}
	}
	for _, line := range wantLines {
		if strings.Count(got, line+"\n") != 1 {
			t.Errorf("ToDOT() renders %q more than once", line)
		}
	}
}

func TestToDOTCanonicalEdgeOrder(t *testing.T) {
	d := New()
	a := d.AddNode(KindZ, 0)
	b := d.AddNode(KindZ, 0)
	// Insert reversed; the declaration must still read "0 -- 1".
	if err := d.AddEdge(b, a); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d.ToDOT(), "    0 -- 1;\n") {
		t.Errorf("ToDOT() did not canonicalize edge order:\n%s", d.ToDOT())
	}
}

func TestToDOTDeterministic(t *testing.T) {
	d := New()
	for i := 0; i < 20; i++ {
		d.AddNode(KindZ, float64(i))
	}
	for i := 1; i < 20; i++ {
		if err := d.AddEdge(i-1, i); err != nil {
			t.Fatal(err)
		}
	}
	first := d.ToDOT()
	for i := 0; i < 5; i++ {
		if got := d.ToDOT(); got != first {
			t.Fatal("ToDOT() output differs between calls on an unchanged diagram")
		}
	}
}
