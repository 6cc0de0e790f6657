package graph

import (
	"testing"

	"github.com/simon-lentz/dpograph/value"
)

func testGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "thread-1", Type: "Thread", Attrs: Attrs{}},
			{ID: "msg-1", Type: "Message", Attrs: Attrs{
				"content": value.Str("hello"),
				"author":  value.Str("user"),
			}},
		},
		Edges: []Edge{
			{ID: "e1", Type: "HAS_TURN", Src: "thread-1", Dst: "turn-1", Attrs: Attrs{}},
		},
	}
}

func TestGraph_Lookup(t *testing.T) {
	g := testGraph()

	n, ok := g.Node("msg-1")
	if !ok {
		t.Fatal("Node(msg-1) not found")
	}
	if n.Type != "Message" {
		t.Errorf("Node(msg-1).Type = %q, want Message", n.Type)
	}

	if _, ok := g.Node("absent"); ok {
		t.Error("Node(absent) should not be found")
	}

	e, ok := g.Edge("e1")
	if !ok {
		t.Fatal("Edge(e1) not found")
	}
	if e.Src != "thread-1" {
		t.Errorf("Edge(e1).Src = %q, want thread-1", e.Src)
	}

	if _, ok := g.Edge("absent"); ok {
		t.Error("Edge(absent) should not be found")
	}
}

func TestGraph_CloneIsDeep(t *testing.T) {
	g := testGraph()
	cp := g.Clone()

	cp.Nodes[1].Attrs["content"] = value.Str("mutated")
	cp.Nodes = append(cp.Nodes, Node{ID: "extra", Type: "Task"})
	cp.Edges[0].Src = "elsewhere"

	orig, _ := g.Node("msg-1")
	if got, _ := orig.Attrs["content"].Str(); got != "hello" {
		t.Errorf("clone mutation leaked into original attrs: %q", got)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("clone append leaked into original: %d nodes", len(g.Nodes))
	}
	if g.Edges[0].Src != "thread-1" {
		t.Errorf("clone edge mutation leaked: %q", g.Edges[0].Src)
	}
}

func TestGraph_ClonePreservesOrder(t *testing.T) {
	g := testGraph()
	cp := g.Clone()

	for i := range g.Nodes {
		if g.Nodes[i].ID != cp.Nodes[i].ID {
			t.Fatalf("node order changed at %d: %q vs %q", i, g.Nodes[i].ID, cp.Nodes[i].ID)
		}
	}
	for i := range g.Edges {
		if g.Edges[i].ID != cp.Edges[i].ID {
			t.Fatalf("edge order changed at %d: %q vs %q", i, g.Edges[i].ID, cp.Edges[i].ID)
		}
	}
}

func TestParseRevision(t *testing.T) {
	tests := []struct {
		rev     string
		n       uint64
		wantErr bool
	}{
		{"rev-0", 0, false},
		{"rev-17", 17, false},
		{"rev", 0, true},
		{"rev--1", 0, true},
		{"revision-1", 0, true},
		{"rev-1x", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		n, err := ParseRevision(tt.rev)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRevision(%q) expected error", tt.rev)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRevision(%q) unexpected error: %v", tt.rev, err)
			continue
		}
		if n != tt.n {
			t.Errorf("ParseRevision(%q) = %d, want %d", tt.rev, n, tt.n)
		}
	}
}

func TestFormatRevision_RoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 42} {
		back, err := ParseRevision(FormatRevision(n))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", n, err)
		}
		if back != n {
			t.Errorf("round trip of %d = %d", n, back)
		}
	}
}
