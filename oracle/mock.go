package oracle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/invariant"
	"github.com/simon-lentz/dpograph/rewrite"
	"github.com/simon-lentz/dpograph/rule"
	"github.com/simon-lentz/dpograph/value"
)

// ErrUnknownCommand is returned by the mock for commands it has no
// canned rule for.
var ErrUnknownCommand = errors.New("oracle: mock has no rule for this command")

// mockCreatedAt pins the canned rule's metadata so proposals are
// reproducible across runs.
var mockCreatedAt = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

// Mock is a deterministic Oracle for tests: it recognizes commands that
// contain "create a task" (case-insensitive) and returns a fixed rule
// that preserves the matched message and attaches a fresh Task.
type Mock struct{}

var _ Oracle = Mock{}

// ProposeRule returns the canned create-task rule or ErrUnknownCommand.
func (Mock) ProposeRule(command string, _ graph.Snapshot) (rule.DpoRule, error) {
	if !strings.Contains(strings.ToLower(command), "create a task") {
		return rule.DpoRule{}, ErrUnknownCommand
	}

	msgPattern := rule.GraphPattern{
		Nodes: []rule.NodePattern{{Var: "msg", Type: "Message"}},
	}
	return rule.DpoRule{
		Metadata: rule.Metadata{
			ID:          "rho_create_task_from_message_mock",
			Version:     "0.1.0",
			Description: "Creates a new Task node from a user message.",
			Tags:        []string{"task", "creation"},
			Author:      "mock-oracle",
			CreatedAt:   mockCreatedAt,
		},
		Left:      msgPattern,
		Interface: msgPattern,
		Right: graph.Graph{
			Nodes: []graph.Node{
				{ID: "var:msg", Type: "Message", Attrs: graph.Attrs{}},
				{ID: "new:task", Type: "Task", Attrs: graph.Attrs{
					"title":  value.Str("Write the report"),
					"status": value.Str("Pending"),
				}},
			},
			Edges: []graph.Edge{
				{ID: "new:edge", Type: "CREATES_TASK", Src: "var:msg", Dst: "new:task", Attrs: graph.Attrs{}},
			},
		},
	}, nil
}

// RefineWithFeedback returns the previous proposal unchanged; a real
// oracle would repair the rule using the report.
func (Mock) RefineWithFeedback(_ string, _ graph.Snapshot, previous rule.DpoRule, _ invariant.Report) (rule.DpoRule, error) {
	return previous, nil
}

// ExplainProof renders a one-line account of the committed rewrite.
func (Mock) ExplainProof(proof rewrite.Proof) (string, error) {
	return fmt.Sprintf(
		"Rule %s advanced %s to %s: +%d/-%d nodes, +%d/-%d edges.",
		proof.RuleMetadata.ID,
		proof.BeforeRev,
		proof.AfterRev,
		proof.Diff.NodesAdded,
		proof.Diff.NodesRemoved,
		proof.Diff.EdgesAdded,
		proof.Diff.EdgesRemoved,
	), nil
}
