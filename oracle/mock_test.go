package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/invariant"
	"github.com/simon-lentz/dpograph/oracle"
	"github.com/simon-lentz/dpograph/rewrite"
	"github.com/simon-lentz/dpograph/rule"
)

func TestMock_ProposeRule(t *testing.T) {
	mock := oracle.Mock{}
	snap := graph.Snapshot{}

	r, err := mock.ProposeRule("Hey, can you create a task to write the report?", snap)
	require.NoError(t, err)

	assert.Equal(t, "rho_create_task_from_message_mock", r.Metadata.ID)
	assert.Len(t, r.Right.Nodes, 2)
	assert.Len(t, r.Right.Edges, 1)
	assert.NoError(t, rule.WellFormed(r), "mock proposals must be well-formed")

	var taskTitle string
	for _, n := range r.Right.Nodes {
		if n.Type == "Task" {
			taskTitle, _ = n.Attrs["title"].Str()
		}
	}
	assert.Equal(t, "Write the report", taskTitle)
}

func TestMock_ProposeRule_Deterministic(t *testing.T) {
	mock := oracle.Mock{}
	a, err := mock.ProposeRule("create a task please", graph.Snapshot{})
	require.NoError(t, err)
	b, err := mock.ProposeRule("create a task please", graph.Snapshot{})
	require.NoError(t, err)

	ha, err := rule.Hash(a)
	require.NoError(t, err)
	hb, err := rule.Hash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

func TestMock_UnknownCommand(t *testing.T) {
	mock := oracle.Mock{}
	_, err := mock.ProposeRule("summarize the thread", graph.Snapshot{})
	assert.ErrorIs(t, err, oracle.ErrUnknownCommand)
}

func TestMock_RefineReturnsPrevious(t *testing.T) {
	mock := oracle.Mock{}
	prev, err := mock.ProposeRule("create a task", graph.Snapshot{})
	require.NoError(t, err)

	refined, err := mock.RefineWithFeedback("create a task", graph.Snapshot{}, prev, invariant.Report{})
	require.NoError(t, err)
	assert.Equal(t, prev.Metadata.ID, refined.Metadata.ID)
}

func TestMock_ExplainProof(t *testing.T) {
	mock := oracle.Mock{}
	explanation, err := mock.ExplainProof(rewrite.Proof{
		RuleMetadata: rule.Metadata{ID: "rho_x"},
		BeforeRev:    "rev-0",
		AfterRev:     "rev-1",
		Diff:         rewrite.DiffSummary{NodesAdded: 1, EdgesAdded: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, explanation, "rho_x")
	assert.Contains(t, explanation, "rev-0")
	assert.Contains(t, explanation, "rev-1")
}
