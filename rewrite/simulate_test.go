package rewrite

import (
	"testing"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
	"github.com/simon-lentz/dpograph/value"
)

func simGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "msg-1", Type: "Message", Attrs: graph.Attrs{
				"content": value.Str("hello"),
				"author":  value.Str("user"),
			}},
			{ID: "c1", Type: "Concept", Attrs: graph.Attrs{"label": value.Str("report")}},
		},
		Edges: []graph.Edge{
			{ID: "e1", Type: "MENTIONS", Src: "msg-1", Dst: "c1", Attrs: graph.Attrs{}},
		},
	}
}

func msgBinding() rule.Binding {
	b := rule.NewBinding()
	b.Nodes["msg"] = "msg-1"
	return b
}

func TestSimulate_DoesNotMutateInput(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		Left:      rule.GraphPattern{Nodes: []rule.NodePattern{{Var: "msg", Type: "Message"}}},
		Interface: rule.GraphPattern{Nodes: []rule.NodePattern{{Var: "msg", Type: "Message"}}},
		Right: graph.Graph{
			Nodes: []graph.Node{
				{ID: "var:msg", Type: "Message", Attrs: graph.Attrs{"content": value.Str("edited")}},
				{ID: "new:task", Type: "Task", Attrs: graph.Attrs{}},
			},
			Edges: []graph.Edge{
				{ID: "new:e", Type: "CREATES_TASK", Src: "var:msg", Dst: "new:task"},
			},
		},
	}

	sandbox, scratch, err := Simulate(&g, r, msgBinding(), NewCounters())
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("input graph mutated: %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if got, _ := g.Nodes[0].Attrs["content"].Str(); got != "hello" {
		t.Errorf("input attrs mutated: %q", got)
	}

	if len(sandbox.Nodes) != 3 || len(sandbox.Edges) != 2 {
		t.Fatalf("sandbox shape: %d nodes, %d edges", len(sandbox.Nodes), len(sandbox.Edges))
	}
	if scratch.NextNode != 2 || scratch.NextEdge != 2 {
		t.Errorf("scratch counters = %+v, want {2 2}", scratch)
	}
}

func TestSimulate_NewIDsRenderFromCounters(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		Right: graph.Graph{
			Nodes: []graph.Node{
				{ID: "new:a", Type: "Task", Attrs: graph.Attrs{}},
				{ID: "new:b", Type: "Task", Attrs: graph.Attrs{}},
			},
			Edges: []graph.Edge{
				{ID: "new:dep", Type: "BLOCKED_BY", Src: "new:a", Dst: "new:b"},
			},
		},
	}

	sandbox, _, err := Simulate(&g, r, rule.NewBinding(), Counters{NextNode: 7, NextEdge: 3})
	if err != nil {
		t.Fatal(err)
	}

	if sandbox.Nodes[2].ID != "n7" || sandbox.Nodes[3].ID != "n8" {
		t.Errorf("node ids = %q, %q, want n7, n8", sandbox.Nodes[2].ID, sandbox.Nodes[3].ID)
	}
	added := sandbox.Edges[1]
	if added.ID != "e3" {
		t.Errorf("edge id = %q, want e3", added.ID)
	}
	if added.Src != "n7" || added.Dst != "n8" {
		t.Errorf("endpoints = %q -> %q, want n7 -> n8", added.Src, added.Dst)
	}
}

func TestSimulate_VarAttrsReplaceListedKeysOnly(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		Left:      rule.GraphPattern{Nodes: []rule.NodePattern{{Var: "msg", Type: "Message"}}},
		Interface: rule.GraphPattern{Nodes: []rule.NodePattern{{Var: "msg", Type: "Message"}}},
		Right: graph.Graph{
			Nodes: []graph.Node{
				{ID: "var:msg", Type: "Message", Attrs: graph.Attrs{
					"content": value.Str("edited"),
					"pinned":  value.Bool(true),
				}},
			},
		},
	}

	sandbox, _, err := Simulate(&g, r, msgBinding(), NewCounters())
	if err != nil {
		t.Fatal(err)
	}

	msg, ok := sandbox.Node("msg-1")
	if !ok {
		t.Fatal("msg-1 missing from sandbox")
	}
	if got, _ := msg.Attrs["content"].Str(); got != "edited" {
		t.Errorf("listed key not replaced: %q", got)
	}
	if got, _ := msg.Attrs["author"].Str(); got != "user" {
		t.Errorf("unlisted key not kept: %q", got)
	}
	if pinned, _ := msg.Attrs["pinned"].Bool(); !pinned {
		t.Error("new key not added")
	}
}

func TestSimulate_DeleteStepRemovesNodeAndIncidentEdges(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		// c1 in L but not in K: delete it and its MENTIONS edge.
		Left: rule.GraphPattern{Nodes: []rule.NodePattern{{Var: "c", Type: "Concept"}}},
	}
	b := rule.NewBinding()
	b.Nodes["c"] = "c1"

	sandbox, _, err := Simulate(&g, r, b, NewCounters())
	if err != nil {
		t.Fatal(err)
	}

	if sandbox.HasNode("c1") {
		t.Error("c1 should be deleted")
	}
	if len(sandbox.Edges) != 0 {
		t.Errorf("incident edge should be deleted, %d edges remain", len(sandbox.Edges))
	}
	if len(g.Edges) != 1 {
		t.Error("delete leaked into input graph")
	}
}

func TestSimulate_DeleteEdgeOnly(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		Left: rule.GraphPattern{
			Nodes: []rule.NodePattern{
				{Var: "m", Type: "Message"},
				{Var: "c", Type: "Concept"},
			},
			Edges: []rule.EdgePattern{
				{Var: "men", Type: "MENTIONS", SrcVar: "m", DstVar: "c"},
			},
		},
		// K keeps both nodes but not the edge.
		Interface: rule.GraphPattern{
			Nodes: []rule.NodePattern{
				{Var: "m", Type: "Message"},
				{Var: "c", Type: "Concept"},
			},
		},
		Right: graph.Graph{
			Nodes: []graph.Node{{ID: "var:m", Type: "Message"}},
		},
	}
	b := rule.NewBinding()
	b.Nodes["m"] = "msg-1"
	b.Nodes["c"] = "c1"
	b.Edges["men"] = "e1"

	sandbox, _, err := Simulate(&g, r, b, NewCounters())
	if err != nil {
		t.Fatal(err)
	}

	if len(sandbox.Edges) != 0 {
		t.Errorf("edge e1 should be deleted, %d remain", len(sandbox.Edges))
	}
	if !sandbox.HasNode("msg-1") || !sandbox.HasNode("c1") {
		t.Error("interface nodes must survive")
	}
}

func TestSimulate_UnprefixedRightIDErrors(t *testing.T) {
	g := simGraph()
	r := rule.DpoRule{
		Right: graph.Graph{Nodes: []graph.Node{{ID: "task-1", Type: "Task"}}},
	}

	_, _, err := Simulate(&g, r, rule.NewBinding(), NewCounters())
	if err == nil {
		t.Fatal("unprefixed id in R must error")
	}
}

func TestDiff(t *testing.T) {
	before := simGraph()
	after := before.Clone()
	after.Nodes = append(after.Nodes, graph.Node{ID: "n1", Type: "Task"})
	after.Edges = append(after.Edges, graph.Edge{ID: "e9", Type: "CREATES_TASK", Src: "msg-1", Dst: "n1"})
	after.Nodes = after.Nodes[1:] // drop msg-1

	d := Diff(before, after)
	if d.NodesAdded != 1 || d.NodesRemoved != 1 || d.EdgesAdded != 1 || d.EdgesRemoved != 0 {
		t.Errorf("diff = %+v", d)
	}
}
