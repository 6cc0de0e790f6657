package invariant

import (
	"fmt"
	"strings"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
)

// Run executes the full battery: the graph-level checks against the
// sandbox graph and the rule-level history check, aggregated into a
// Report. Node types outside the recognized set are legal in the graph
// (the typed-edge check fails only edges that touch such nodes); each such
// type contributes a warning so callers can spot unexpected vocabulary.
func Run(g *graph.Graph, r rule.DpoRule) Report {
	results := []Result{
		WellTypedEdges(g),
		NoOrphanMessages(g),
		NoAssistantPIILeak(g),
		ImmutableHistory(r),
	}
	return NewReport(results, unrecognizedTypeWarnings(g))
}

// WellTypedEdges checks that every edge has a recognized type, that both
// endpoints resolve to recognized node types, and that the
// (edge, src, dst) triple is in the typed-edge table.
func WellTypedEdges(g *graph.Graph) Result {
	const name = "well_typed_edges"

	nodeTypes := make(map[string]graph.NodeType, len(g.Nodes))
	for _, n := range g.Nodes {
		if nt, ok := graph.NodeTypeFromString(n.Type); ok {
			nodeTypes[n.ID] = nt
		}
	}

	var problems []string
	for _, e := range g.Edges {
		et, ok := graph.EdgeTypeFromString(e.Type)
		if !ok {
			problems = append(problems, fmt.Sprintf("Unknown edge type '%s' on edge %s", e.Type, e.ID))
			continue
		}
		srcType, ok := nodeTypes[e.Src]
		if !ok {
			problems = append(problems, fmt.Sprintf("Edge %s has unknown src node %s", e.ID, e.Src))
			continue
		}
		dstType, ok := nodeTypes[e.Dst]
		if !ok {
			problems = append(problems, fmt.Sprintf("Edge %s has unknown dst node %s", e.ID, e.Dst))
			continue
		}
		if !graph.WellTyped(et, srcType, dstType) {
			problems = append(problems, fmt.Sprintf(
				"Edge %s of type %s has illegal src/dst types: %s -> %s",
				e.ID, et, srcType, dstType,
			))
		}
	}

	if len(problems) > 0 {
		return Result{Name: name, Passed: false, Message: strings.Join(problems, "; ")}
	}
	return Result{Name: name, Passed: true, Message: "All edges respect allowed src/dst types."}
}

// NoOrphanMessages checks that every Message node has exactly one
// incoming HAS_MESSAGE edge and exactly one outgoing AUTHORED_BY edge.
func NoOrphanMessages(g *graph.Graph) Result {
	const name = "no_orphan_messages"

	hasMessage := map[string]int{}
	authoredBy := map[string]int{}
	for _, e := range g.Edges {
		switch e.Type {
		case graph.HasMessage.String():
			hasMessage[e.Dst]++
		case graph.AuthoredBy.String():
			authoredBy[e.Src]++
		}
	}

	var problems []string
	for _, n := range g.Nodes {
		if n.Type != graph.Message.String() {
			continue
		}
		hm := hasMessage[n.ID]
		ab := authoredBy[n.ID]
		if hm != 1 || ab != 1 {
			problems = append(problems, fmt.Sprintf(
				"Message %s has %d HAS_MESSAGE and %d AUTHORED_BY edges (expected 1 each)",
				n.ID, hm, ab,
			))
		}
	}

	if len(problems) > 0 {
		return Result{Name: name, Passed: false, Message: strings.Join(problems, "; ")}
	}
	return Result{
		Name:    name,
		Passed:  true,
		Message: "All messages have exactly one HAS_MESSAGE and one AUTHORED_BY.",
	}
}

// ImmutableHistory checks, at the rule level, that no Message node can be
// deleted: every node variable typed Message in L must appear in the
// interface K and be referenced by a "var:" node in R.
func ImmutableHistory(r rule.DpoRule) Result {
	const name = "immutable_history"

	var messageVars []string
	for _, np := range r.Left.Nodes {
		if np.Type == graph.Message.String() {
			messageVars = append(messageVars, np.Var)
		}
	}
	if len(messageVars) == 0 {
		return Result{Name: name, Passed: true, Message: "Rule does not touch any Message nodes in L."}
	}

	varsInRight := map[string]bool{}
	for _, n := range r.Right.Nodes {
		if ref, err := rule.ParseRef(n.ID); err == nil && ref.Kind == rule.RefVar {
			varsInRight[ref.Name] = true
		}
	}

	var problems []string
	for _, v := range messageVars {
		if !r.Interface.HasNodeVar(v) {
			problems = append(problems, fmt.Sprintf(
				"Message var '%s' appears in L but not in interface K (would allow deletion).", v,
			))
		}
		if !varsInRight[v] {
			problems = append(problems, fmt.Sprintf(
				"Message var '%s' appears in L but no corresponding 'var:%s' node in R (would delete message).",
				v, v,
			))
		}
	}

	if len(problems) > 0 {
		return Result{Name: name, Passed: false, Message: strings.Join(problems, "; ")}
	}
	return Result{
		Name:    name,
		Passed:  true,
		Message: "All Messages in L are preserved via K and R; no deletions.",
	}
}

// unrecognizedTypeWarnings lists node types outside the recognized set,
// one warning per distinct type, in first-appearance order.
func unrecognizedTypeWarnings(g *graph.Graph) []string {
	seen := map[string]bool{}
	var warnings []string
	for _, n := range g.Nodes {
		if _, ok := graph.NodeTypeFromString(n.Type); ok {
			continue
		}
		if seen[n.Type] {
			continue
		}
		seen[n.Type] = true
		warnings = append(warnings, fmt.Sprintf(
			"node type '%s' is not recognized; such nodes cannot participate in typed edges", n.Type,
		))
	}
	return warnings
}
