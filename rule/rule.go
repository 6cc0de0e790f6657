package rule

import (
	"slices"
	"time"

	"github.com/simon-lentz/dpograph/graph"
)

// Metadata identifies and describes a rule.
type Metadata struct {
	ID          string
	Version     string
	Description string
	Tags        []string
	Author      string
	CreatedAt   time.Time
}

// Clone returns a copy with its own tag slice.
func (m Metadata) Clone() Metadata {
	m.Tags = slices.Clone(m.Tags)
	return m
}

// DpoRule is a double-pushout rewrite rule.
//
// Left is the pattern matched against the live graph; Interface is the
// preserved sub-pattern (K ⊆ L); Right is a concrete replacement graph
// whose ids are sentinel references (see [ParseRef]). Applying the rule
// deletes L\K, keeps K, and adds R's fresh elements.
type DpoRule struct {
	Metadata  Metadata
	Left      GraphPattern
	Interface GraphPattern
	Right     graph.Graph
}

// Binding maps pattern variables to concrete graph ids: one entry per
// node variable and one per edge variable.
type Binding struct {
	Nodes map[string]string
	Edges map[string]string
}

// NewBinding returns an empty binding ready for use.
func NewBinding() Binding {
	return Binding{Nodes: map[string]string{}, Edges: map[string]string{}}
}

// Node returns the id bound to a node variable.
func (b Binding) Node(name string) (string, bool) {
	id, ok := b.Nodes[name]
	return id, ok
}

// Edge returns the id bound to an edge variable.
func (b Binding) Edge(name string) (string, bool) {
	id, ok := b.Edges[name]
	return id, ok
}

// NodeVars returns the bound node variables in sorted order.
func (b Binding) NodeVars() []string {
	vars := make([]string, 0, len(b.Nodes))
	for v := range b.Nodes {
		vars = append(vars, v)
	}
	slices.Sort(vars)
	return vars
}

// EdgeVars returns the bound edge variables in sorted order.
func (b Binding) EdgeVars() []string {
	vars := make([]string, 0, len(b.Edges))
	for v := range b.Edges {
		vars = append(vars, v)
	}
	slices.Sort(vars)
	return vars
}

// Clone returns a binding with its own maps.
func (b Binding) Clone() Binding {
	out := NewBinding()
	for k, v := range b.Nodes {
		out.Nodes[k] = v
	}
	for k, v := range b.Edges {
		out.Edges[k] = v
	}
	return out
}
