package rewrite

import (
	"fmt"
	"strconv"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
)

// Counters are the monotonic id allocators. Both start at 1; fresh ids
// render as n{N} and e{N}. The engine advances its counters only on
// commit; simulation works on a scratch copy so validation never
// consumes ids.
type Counters struct {
	NextNode uint64
	NextEdge uint64
}

// NewCounters returns counters positioned at the first id.
func NewCounters() Counters {
	return Counters{NextNode: 1, NextEdge: 1}
}

func (c *Counters) allocNode() string {
	id := "n" + strconv.FormatUint(c.NextNode, 10)
	c.NextNode++
	return id
}

func (c *Counters) allocEdge() string {
	id := "e" + strconv.FormatUint(c.NextEdge, 10)
	c.NextEdge++
	return id
}

// Simulate produces the sandbox graph for one rule application. It is a
// pure function: g is deep-cloned and never mutated, and the returned
// counters are an advanced copy of the input.
//
// Steps: delete the bindings of L\K (nodes take their incident edges
// with them), keep K's bindings, then walk R in order. A "new:" element
// allocates a fresh id; a "var:" element must survive the delete step
// and has its attributes updated for the keys R lists, leaving unlisted
// keys intact. Edge endpoints in R resolve through the same sentinel
// mapping.
//
// The rule is assumed well-formed; violations that escape rule.WellFormed
// surface as *InternalError.
func Simulate(g *graph.Graph, r rule.DpoRule, binding rule.Binding, counters Counters) (graph.Graph, Counters, error) {
	sandbox := g.Clone()

	// Delete step: L\K node variables, then L\K edge variables.
	for _, np := range r.Left.Nodes {
		if r.Interface.HasNodeVar(np.Var) {
			continue
		}
		id, ok := binding.Node(np.Var)
		if !ok {
			return graph.Graph{}, counters, &InternalError{
				Reason: fmt.Sprintf("node variable %q has no binding", np.Var),
			}
		}
		removeNode(&sandbox, id)
	}
	for _, ep := range r.Left.Edges {
		if r.Interface.HasEdgeVar(ep.Var) {
			continue
		}
		id, ok := binding.Edge(ep.Var)
		if !ok {
			return graph.Graph{}, counters, &InternalError{
				Reason: fmt.Sprintf("edge variable %q has no binding", ep.Var),
			}
		}
		removeEdge(&sandbox, id)
	}

	// Preserve step: every interface binding must have survived.
	for _, np := range r.Interface.Nodes {
		id, ok := binding.Node(np.Var)
		if !ok || !sandbox.HasNode(id) {
			return graph.Graph{}, counters, &InternalError{
				Reason: fmt.Sprintf("interface node %q not present after delete step", np.Var),
			}
		}
	}

	// Add step: R nodes in order, then R edges in order.
	newNodeIDs := map[string]string{}
	for _, rn := range r.Right.Nodes {
		ref, err := rule.ParseRef(rn.ID)
		if err != nil {
			return graph.Graph{}, counters, err
		}
		switch ref.Kind {
		case rule.RefNew:
			id := counters.allocNode()
			newNodeIDs[ref.Name] = id
			added := rn.Clone()
			added.ID = id
			sandbox.Nodes = append(sandbox.Nodes, added)
		case rule.RefVar:
			id, ok := binding.Node(ref.Name)
			if !ok {
				return graph.Graph{}, counters, &InternalError{
					Reason: fmt.Sprintf("R references unbound variable %q", ref.Name),
				}
			}
			if err := updateNodeAttrs(&sandbox, id, rn.Attrs); err != nil {
				return graph.Graph{}, counters, err
			}
		}
	}

	for _, re := range r.Right.Edges {
		ref, err := rule.ParseRef(re.ID)
		if err != nil {
			return graph.Graph{}, counters, err
		}
		switch ref.Kind {
		case rule.RefNew:
			src, err := resolveEndpoint(re.Src, binding, newNodeIDs)
			if err != nil {
				return graph.Graph{}, counters, err
			}
			dst, err := resolveEndpoint(re.Dst, binding, newNodeIDs)
			if err != nil {
				return graph.Graph{}, counters, err
			}
			added := re.Clone()
			added.ID = counters.allocEdge()
			added.Src = src
			added.Dst = dst
			sandbox.Edges = append(sandbox.Edges, added)
		case rule.RefVar:
			id, ok := binding.Edge(ref.Name)
			if !ok {
				return graph.Graph{}, counters, &InternalError{
					Reason: fmt.Sprintf("R references unbound edge variable %q", ref.Name),
				}
			}
			if err := updateEdgeAttrs(&sandbox, id, re.Attrs); err != nil {
				return graph.Graph{}, counters, err
			}
		}
	}

	return sandbox, counters, nil
}

// removeNode deletes the node and every edge incident to it.
func removeNode(g *graph.Graph, id string) {
	nodes := g.Nodes[:0]
	for _, n := range g.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	g.Nodes = nodes

	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Src != id && e.Dst != id {
			edges = append(edges, e)
		}
	}
	g.Edges = edges
}

func removeEdge(g *graph.Graph, id string) {
	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e.ID != id {
			edges = append(edges, e)
		}
	}
	g.Edges = edges
}

// updateNodeAttrs replaces the keys listed in attrs on the identified
// node; unlisted keys stay intact.
func updateNodeAttrs(g *graph.Graph, id string, attrs graph.Attrs) error {
	for i := range g.Nodes {
		if g.Nodes[i].ID != id {
			continue
		}
		if g.Nodes[i].Attrs == nil && len(attrs) > 0 {
			g.Nodes[i].Attrs = graph.Attrs{}
		}
		for k, v := range attrs {
			g.Nodes[i].Attrs[k] = v
		}
		return nil
	}
	return &InternalError{Reason: fmt.Sprintf("node %q vanished during add step", id)}
}

func updateEdgeAttrs(g *graph.Graph, id string, attrs graph.Attrs) error {
	for i := range g.Edges {
		if g.Edges[i].ID != id {
			continue
		}
		if g.Edges[i].Attrs == nil && len(attrs) > 0 {
			g.Edges[i].Attrs = graph.Attrs{}
		}
		for k, v := range attrs {
			g.Edges[i].Attrs[k] = v
		}
		return nil
	}
	return &InternalError{Reason: fmt.Sprintf("edge %q vanished during add step", id)}
}

// resolveEndpoint maps a sentinel endpoint reference to a concrete id.
func resolveEndpoint(endpoint string, binding rule.Binding, newNodeIDs map[string]string) (string, error) {
	ref, err := rule.ParseRef(endpoint)
	if err != nil {
		return "", err
	}
	switch ref.Kind {
	case rule.RefVar:
		id, ok := binding.Node(ref.Name)
		if !ok {
			return "", &InternalError{
				Reason: fmt.Sprintf("edge endpoint references unbound variable %q", ref.Name),
			}
		}
		return id, nil
	default:
		id, ok := newNodeIDs[ref.Name]
		if !ok {
			return "", &InternalError{
				Reason: fmt.Sprintf("edge endpoint references unknown new node %q", ref.Name),
			}
		}
		return id, nil
	}
}
