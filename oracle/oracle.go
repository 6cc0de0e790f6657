package oracle

import (
	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/invariant"
	"github.com/simon-lentz/dpograph/rewrite"
	"github.com/simon-lentz/dpograph/rule"
)

// Oracle proposes rewrite rules from natural language. Implementations
// are external collaborators; the core validates everything they return.
type Oracle interface {
	// ProposeRule translates a command into a rule against the given
	// snapshot.
	ProposeRule(command string, context graph.Snapshot) (rule.DpoRule, error)

	// RefineWithFeedback retries a rejected proposal using the
	// validation report the core produced for it.
	RefineWithFeedback(command string, context graph.Snapshot, previous rule.DpoRule, report invariant.Report) (rule.DpoRule, error)

	// ExplainProof renders a human-readable account of a committed
	// rewrite.
	ExplainProof(proof rewrite.Proof) (string, error)
}
