package rule

// NodePattern matches one node. Var names the binding; Type, when
// non-empty, restricts the node's type; Attrs lists per-attribute
// operation conjunctions.
type NodePattern struct {
	Var   string
	Type  string
	Attrs map[string][]AttrOp
}

// EdgePattern matches one edge between two bound node variables.
type EdgePattern struct {
	Var    string
	Type   string
	SrcVar string
	DstVar string
	Attrs  map[string][]AttrOp
}

// ConstraintKind identifies a structural constraint.
type ConstraintKind uint8

const (
	// DistinctNodes requires the named node variables to bind distinct
	// nodes. Distinct variables already bind distinct elements by
	// default; this constraint is additive, not the source of
	// injectivity.
	DistinctNodes ConstraintKind = iota

	// DistinctEdges requires the named edge variables to bind distinct
	// edges.
	DistinctEdges
)

// String returns the wire tag for the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case DistinctNodes:
		return "distinct_nodes"
	case DistinctEdges:
		return "distinct_edges"
	default:
		return "unknown"
	}
}

func constraintKindFromTag(s string) (ConstraintKind, bool) {
	switch s {
	case "distinct_nodes":
		return DistinctNodes, true
	case "distinct_edges":
		return DistinctEdges, true
	default:
		return 0, false
	}
}

// Constraint is a structural constraint over pattern variables.
type Constraint struct {
	Kind ConstraintKind
	Vars []string
}

// GraphPattern is an ordered set of node and edge patterns plus
// structural constraints. Order fixes the matcher's enumeration order.
type GraphPattern struct {
	Nodes       []NodePattern
	Edges       []EdgePattern
	Constraints []Constraint
}

// NodeVar returns the node pattern for the given variable and true if
// declared.
func (p GraphPattern) NodeVar(name string) (NodePattern, bool) {
	for _, np := range p.Nodes {
		if np.Var == name {
			return np, true
		}
	}
	return NodePattern{}, false
}

// EdgeVar returns the edge pattern for the given variable and true if
// declared.
func (p GraphPattern) EdgeVar(name string) (EdgePattern, bool) {
	for _, ep := range p.Edges {
		if ep.Var == name {
			return ep, true
		}
	}
	return EdgePattern{}, false
}

// HasNodeVar reports whether the pattern declares the node variable.
func (p GraphPattern) HasNodeVar(name string) bool {
	_, ok := p.NodeVar(name)
	return ok
}

// HasEdgeVar reports whether the pattern declares the edge variable.
func (p GraphPattern) HasEdgeVar(name string) bool {
	_, ok := p.EdgeVar(name)
	return ok
}
