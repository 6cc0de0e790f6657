package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/internal/trace"
	"github.com/simon-lentz/dpograph/rule"
)

// Matcher finds bindings for left-hand patterns. A Matcher is stateless
// between calls except for its compiled-regex cache and may be reused
// across rules.
type Matcher struct {
	regexes *regexCache
	logger  *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger enables debug logging of the search: each accepted node and
// edge candidate, and the size of the final binding. Pass nil to disable
// (the default).
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{regexes: newRegexCache()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Find returns the first injective binding of the pattern in g under the
// fixed enumeration order, or a *FailedError if none exists.
//
// The pattern is assumed well-formed (see rule.WellFormed); the engine
// checks well-formedness before matching.
func (m *Matcher) Find(g *graph.Graph, pattern rule.GraphPattern) (rule.Binding, error) {
	s := &search{
		matcher:   m,
		graph:     g,
		pattern:   pattern,
		binding:   rule.NewBinding(),
		usedNodes: map[string]bool{},
		usedEdges: map[string]bool{},
	}

	found, err := s.bindNode(0)
	if err != nil {
		return rule.Binding{}, err
	}
	if !found {
		return rule.Binding{}, &FailedError{Reason: s.failure()}
	}

	trace.DebugLazy(context.Background(), m.logger, "pattern matched", func() []slog.Attr {
		return []slog.Attr{
			slog.Int("node_vars", len(s.binding.Nodes)),
			slog.Int("edge_vars", len(s.binding.Edges)),
		}
	})
	return s.binding, nil
}

// search carries the backtracking state for one Find call.
type search struct {
	matcher   *Matcher
	graph     *graph.Graph
	pattern   rule.GraphPattern
	binding   rule.Binding
	usedNodes map[string]bool
	usedEdges map[string]bool

	// stuckNode/stuckEdge record the deepest variable that exhausted its
	// candidates, for the failure message.
	stuckNode int
	stuckEdge int
}

// bindNode extends the binding with the i-th node variable, trying graph
// nodes in insertion order.
func (s *search) bindNode(i int) (bool, error) {
	if i == len(s.pattern.Nodes) {
		return s.bindEdge(0)
	}
	np := s.pattern.Nodes[i]

	for idx := range s.graph.Nodes {
		node := &s.graph.Nodes[idx]
		if s.usedNodes[node.ID] {
			continue
		}
		if np.Type != "" && node.Type != np.Type {
			continue
		}
		ok, err := s.matcher.regexes.evalAttrs(node.Attrs, np.Attrs)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		s.binding.Nodes[np.Var] = node.ID
		s.usedNodes[node.ID] = true
		trace.Debug(context.Background(), s.matcher.logger, "node candidate bound",
			slog.String("var", np.Var),
			slog.String("id", node.ID),
		)

		found, err := s.bindNode(i + 1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}

		delete(s.binding.Nodes, np.Var)
		delete(s.usedNodes, node.ID)
	}

	if i >= s.stuckNode {
		s.stuckNode = i + 1
	}
	return false, nil
}

// bindEdge extends the binding with the j-th edge variable, trying graph
// edges in insertion order.
func (s *search) bindEdge(j int) (bool, error) {
	if j == len(s.pattern.Edges) {
		if !s.checkConstraints() {
			return false, nil
		}
		return true, nil
	}
	ep := s.pattern.Edges[j]
	srcID := s.binding.Nodes[ep.SrcVar]
	dstID := s.binding.Nodes[ep.DstVar]

	for idx := range s.graph.Edges {
		edge := &s.graph.Edges[idx]
		if s.usedEdges[edge.ID] {
			continue
		}
		if ep.Type != "" && edge.Type != ep.Type {
			continue
		}
		if edge.Src != srcID || edge.Dst != dstID {
			continue
		}
		ok, err := s.matcher.regexes.evalAttrs(edge.Attrs, ep.Attrs)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		s.binding.Edges[ep.Var] = edge.ID
		s.usedEdges[edge.ID] = true
		trace.Debug(context.Background(), s.matcher.logger, "edge candidate bound",
			slog.String("var", ep.Var),
			slog.String("id", edge.ID),
		)

		found, err := s.bindEdge(j + 1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}

		delete(s.binding.Edges, ep.Var)
		delete(s.usedEdges, edge.ID)
	}

	if j >= s.stuckEdge {
		s.stuckEdge = j + 1
	}
	return false, nil
}

// checkConstraints verifies the additive structural constraints against
// the complete binding. Default injectivity already holds; these only
// matter for patterns relying on explicit distinctness declarations.
func (s *search) checkConstraints() bool {
	for _, c := range s.pattern.Constraints {
		seen := make(map[string]bool, len(c.Vars))
		for _, v := range c.Vars {
			var id string
			switch c.Kind {
			case rule.DistinctNodes:
				id = s.binding.Nodes[v]
			case rule.DistinctEdges:
				id = s.binding.Edges[v]
			}
			if seen[id] {
				return false
			}
			seen[id] = true
		}
	}
	return true
}

// failure names the deepest variable that exhausted its candidates.
func (s *search) failure() string {
	if s.stuckEdge > 0 && s.stuckEdge <= len(s.pattern.Edges) {
		return fmt.Sprintf("no candidate for edge variable %q", s.pattern.Edges[s.stuckEdge-1].Var)
	}
	if s.stuckNode > 0 && s.stuckNode <= len(s.pattern.Nodes) {
		return fmt.Sprintf("no candidate for node variable %q", s.pattern.Nodes[s.stuckNode-1].Var)
	}
	return "pattern has no binding in the current graph"
}
