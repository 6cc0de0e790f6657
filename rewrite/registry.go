package rewrite

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/simon-lentz/dpograph/rule"
)

// ruleNamespace is the UUID namespace for registry keys. Keys are
// name-based (version 5 via SHA-1), derived from the rule's canonical
// hash, so the same rule gets the same key in every process.
var ruleNamespace = uuid.MustParse("f1aeb4b2-30ce-4c1f-9d6b-5a1d2c8e7f40")

// RegisteredRule pairs a registered rule with its canonical hash and its
// stable registry key.
type RegisteredRule struct {
	Key  uuid.UUID
	Hash string
	Rule rule.DpoRule
}

// RegisterRule records a rule in the named-rule registry under its
// metadata id. Registration is optional and plays no role in Apply's
// correctness; it exists so callers can look up and re-run named rules.
//
// Re-registering the identical rule is idempotent. Registering a
// different rule under an existing id returns ErrRuleRegistered.
func (e *Engine) RegisterRule(r rule.DpoRule) (RegisteredRule, error) {
	if err := rule.WellFormed(r); err != nil {
		return RegisteredRule{}, err
	}
	hash, err := rule.Hash(r)
	if err != nil {
		return RegisteredRule{}, &InternalError{Reason: "rule hash: " + err.Error()}
	}

	if existing, ok := e.registry[r.Metadata.ID]; ok {
		if existing.Hash == hash {
			return existing, nil
		}
		return RegisteredRule{}, ErrRuleRegistered
	}

	entry := RegisteredRule{
		Key:  uuid.NewSHA1(ruleNamespace, []byte(hash)),
		Hash: hash,
		Rule: r,
	}
	e.registry[r.Metadata.ID] = entry
	return entry, nil
}

// Rule returns the registered rule for the given metadata id.
func (e *Engine) Rule(id string) (rule.DpoRule, bool) {
	entry, ok := e.registry[id]
	return entry.Rule, ok
}

// Rules returns all registered rules sorted by metadata id.
func (e *Engine) Rules() []RegisteredRule {
	out := make([]RegisteredRule, 0, len(e.registry))
	for _, entry := range e.registry {
		out = append(out, entry)
	}
	slices.SortFunc(out, func(a, b RegisteredRule) int {
		return strings.Compare(a.Rule.Metadata.ID, b.Rule.Metadata.ID)
	})
	return out
}
