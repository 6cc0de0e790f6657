package rule

import "fmt"

// WellFormed checks the structural contract of a rule and returns a
// *MalformedError describing the first violation, or nil.
//
// Checks, in order:
//   - L and K declare each variable at most once, edge patterns
//     reference declared node variables, and structural constraints
//     name declared variables
//   - every K variable appears in L
//   - every id in R parses as a sentinel reference; "var:" refs name K
//     variables; "new:" names are unique within R
//   - R edge endpoints are sentinel references resolvable to a K node
//     variable or a "new:" node declared in R
func WellFormed(r DpoRule) error {
	if err := checkPattern("L", r.Left); err != nil {
		return err
	}
	if err := checkPattern("K", r.Interface); err != nil {
		return err
	}

	for _, np := range r.Interface.Nodes {
		if !r.Left.HasNodeVar(np.Var) {
			return &MalformedError{
				Reason: fmt.Sprintf("interface node variable %q does not appear in L", np.Var),
			}
		}
	}
	for _, ep := range r.Interface.Edges {
		if !r.Left.HasEdgeVar(ep.Var) {
			return &MalformedError{
				Reason: fmt.Sprintf("interface edge variable %q does not appear in L", ep.Var),
			}
		}
	}

	return checkRight(r)
}

func checkPattern(side string, p GraphPattern) error {
	nodeVars := make(map[string]bool, len(p.Nodes))
	for _, np := range p.Nodes {
		if np.Var == "" {
			return &MalformedError{Reason: side + " declares a node pattern with an empty variable"}
		}
		if nodeVars[np.Var] {
			return &MalformedError{
				Reason: fmt.Sprintf("%s declares node variable %q twice", side, np.Var),
			}
		}
		nodeVars[np.Var] = true
	}

	edgeVars := make(map[string]bool, len(p.Edges))
	for _, ep := range p.Edges {
		if ep.Var == "" {
			return &MalformedError{Reason: side + " declares an edge pattern with an empty variable"}
		}
		if edgeVars[ep.Var] {
			return &MalformedError{
				Reason: fmt.Sprintf("%s declares edge variable %q twice", side, ep.Var),
			}
		}
		edgeVars[ep.Var] = true
		if !nodeVars[ep.SrcVar] {
			return &MalformedError{
				Reason: fmt.Sprintf("%s edge %q references undeclared src variable %q", side, ep.Var, ep.SrcVar),
			}
		}
		if !nodeVars[ep.DstVar] {
			return &MalformedError{
				Reason: fmt.Sprintf("%s edge %q references undeclared dst variable %q", side, ep.Var, ep.DstVar),
			}
		}
	}

	for _, c := range p.Constraints {
		for _, v := range c.Vars {
			switch c.Kind {
			case DistinctNodes:
				if !nodeVars[v] {
					return &MalformedError{
						Reason: fmt.Sprintf("%s distinct_nodes names undeclared variable %q", side, v),
					}
				}
			case DistinctEdges:
				if !edgeVars[v] {
					return &MalformedError{
						Reason: fmt.Sprintf("%s distinct_edges names undeclared variable %q", side, v),
					}
				}
			}
		}
	}
	return nil
}

func checkRight(r DpoRule) error {
	newNodes := make(map[string]bool)
	for _, n := range r.Right.Nodes {
		ref, err := ParseRef(n.ID)
		if err != nil {
			return err
		}
		switch ref.Kind {
		case RefVar:
			if !r.Interface.HasNodeVar(ref.Name) {
				return &MalformedError{
					Reason: fmt.Sprintf("R node %q references variable %q not in the interface", n.ID, ref.Name),
				}
			}
		case RefNew:
			if newNodes[ref.Name] {
				return &MalformedError{
					Reason: fmt.Sprintf("R declares new node %q twice", ref.Name),
				}
			}
			newNodes[ref.Name] = true
		}
	}

	newEdges := make(map[string]bool)
	for _, e := range r.Right.Edges {
		ref, err := ParseRef(e.ID)
		if err != nil {
			return err
		}
		switch ref.Kind {
		case RefVar:
			if !r.Interface.HasEdgeVar(ref.Name) {
				return &MalformedError{
					Reason: fmt.Sprintf("R edge %q references variable %q not in the interface", e.ID, ref.Name),
				}
			}
		case RefNew:
			if newEdges[ref.Name] {
				return &MalformedError{
					Reason: fmt.Sprintf("R declares new edge %q twice", ref.Name),
				}
			}
			newEdges[ref.Name] = true
		}
		if err := checkEndpoint(r, newNodes, e.ID, "src", e.Src); err != nil {
			return err
		}
		if err := checkEndpoint(r, newNodes, e.ID, "dst", e.Dst); err != nil {
			return err
		}
	}
	return nil
}

// checkEndpoint verifies that an R edge endpoint resolves within R:
// either a K node variable or a new node declared in R. R cannot
// reference live nodes outside its own boundary.
func checkEndpoint(r DpoRule, newNodes map[string]bool, edgeID, field, endpoint string) error {
	ref, err := ParseRef(endpoint)
	if err != nil {
		return &MalformedError{
			Reason: fmt.Sprintf("R edge %q %s %q is not a sentinel reference", edgeID, field, endpoint),
		}
	}
	switch ref.Kind {
	case RefVar:
		if !r.Interface.HasNodeVar(ref.Name) {
			return &MalformedError{
				Reason: fmt.Sprintf("R edge %q %s references variable %q not in the interface", edgeID, field, ref.Name),
			}
		}
	case RefNew:
		if !newNodes[ref.Name] {
			return &MalformedError{
				Reason: fmt.Sprintf("R edge %q %s references undeclared new node %q", edgeID, field, ref.Name),
			}
		}
	}
	return nil
}
