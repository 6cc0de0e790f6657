package graph

import (
	"maps"

	"github.com/simon-lentz/dpograph/value"
)

// Attrs is an attribute map. Values are immutable; cloning an Attrs
// copies the map but shares the values.
type Attrs = map[string]value.Value

// Node is a typed graph node. Ids are unique within a graph.
type Node struct {
	ID    string
	Type  string
	Attrs Attrs
}

// Clone returns a copy of the node with its own attribute map.
func (n Node) Clone() Node {
	n.Attrs = cloneAttrs(n.Attrs)
	return n
}

// Edge is a directed, typed edge between two nodes.
type Edge struct {
	ID    string
	Type  string
	Src   string
	Dst   string
	Attrs Attrs
}

// Clone returns a copy of the edge with its own attribute map.
func (e Edge) Clone() Edge {
	e.Attrs = cloneAttrs(e.Attrs)
	return e
}

// Graph holds nodes and edges in insertion order. Insertion order is the
// iteration order; the matcher and the serializer both depend on it.
//
// Graph is a plain value container with no internal locking; the engine
// owns the live graph and hands out deep copies via snapshots.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Clone returns a deep copy of the graph. Attribute values are shared
// (they are immutable); attribute maps and the node/edge slices are not.
func (g Graph) Clone() Graph {
	out := Graph{}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		for i, e := range g.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	return out
}

// Node returns the node with the given id and true if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id and true if present.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// HasNode reports whether a node with the given id exists.
func (g Graph) HasNode(id string) bool {
	_, ok := g.Node(id)
	return ok
}

func cloneAttrs(attrs Attrs) Attrs {
	if attrs == nil {
		return nil
	}
	return maps.Clone(attrs)
}
