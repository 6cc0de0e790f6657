package rule

import (
	"fmt"
	"strings"
)

// RefKind distinguishes preserved from fresh elements in R.
type RefKind uint8

const (
	// RefVar refers to the binding of an interface variable.
	RefVar RefKind = iota

	// RefNew marks a fresh element allocated at apply time.
	RefNew
)

// Ref is a parsed sentinel reference from an id in R.
type Ref struct {
	Kind RefKind
	Name string
}

// ParseRef parses a sentinel-prefixed id from R. Ids must read "var:NAME"
// or "new:NAME" with a non-empty NAME; anything else is malformed.
func ParseRef(id string) (Ref, error) {
	if name, ok := strings.CutPrefix(id, "var:"); ok {
		if name == "" {
			return Ref{}, &MalformedError{Reason: `empty variable name in "var:" reference`}
		}
		return Ref{Kind: RefVar, Name: name}, nil
	}
	if name, ok := strings.CutPrefix(id, "new:"); ok {
		if name == "" {
			return Ref{}, &MalformedError{Reason: `empty name in "new:" reference`}
		}
		return Ref{Kind: RefNew, Name: name}, nil
	}
	return Ref{}, &MalformedError{
		Reason: fmt.Sprintf("id %q in R lacks a var: or new: prefix", id),
	}
}

// String renders the reference back to its sentinel form.
func (r Ref) String() string {
	if r.Kind == RefNew {
		return "new:" + r.Name
	}
	return "var:" + r.Name
}
