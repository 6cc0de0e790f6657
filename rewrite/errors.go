package rewrite

import (
	"errors"
	"strings"
)

// ErrRuleRegistered is returned by RegisterRule when a different rule is
// already registered under the same metadata id.
var ErrRuleRegistered = errors.New("rewrite: a different rule is already registered under this id")

// InvalidRuleError reports that one or more invariants failed; each
// entry names the invariant and the offending elements.
type InvalidRuleError struct {
	Errors []string
}

func (e *InvalidRuleError) Error() string {
	return "invalid rule: " + strings.Join(e.Errors, "; ")
}

// InternalError is reserved for bugs: states the pipeline should make
// unreachable, such as a bound variable missing from the sandbox.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Reason
}
