package json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterjson "github.com/simon-lentz/dpograph/adapter/json"
	"github.com/simon-lentz/dpograph/rule"
)

const ruleDoc = `{
  // Preserve a message and attach a fresh task.
  "metadata": {
    "id": "rho_create_task_from_message",
    "version": "0.1.0",
    "description": "Creates a new Task node from a user message.",
    "tags": ["task", "creation"],
    "author": "system",
    "created_at": "2025-11-15T12:00:00Z"
  },
  "left": {
    "nodes": [{"var": "msg", "node_type": "Message", "attrs": {}}],
    "edges": [],
    "constraints": []
  },
  "interface": {
    "nodes": [{"var": "msg", "node_type": "Message", "attrs": {}}],
    "edges": [],
    "constraints": []
  },
  "right": {
    "nodes": [
      {"id": "var:msg", "node_type": "Message", "attrs": {}},
      {"id": "new:task", "node_type": "Task", "attrs": {
        "title": {"kind": "Str", "value": "Write the report"},
        "status": {"kind": "Str", "value": "Pending"}
      }}
    ],
    "edges": [
      {"id": "new:edge", "edge_type": "CREATES_TASK", "src": "var:msg", "dst": "new:task", "attrs": {}}
    ]
  }
}`

const graphDoc = `{
  "nodes": [
    {"id": "thread-1", "node_type": "Thread", "attrs": {}},
    {"id": "turn-1", "node_type": "Turn", "attrs": {}},
  ], // trailing comma and comments are JSONC
  "edges": [
    {"id": "e1", "edge_type": "HAS_TURN", "src": "thread-1", "dst": "turn-1", "attrs": {}}
  ]
}`

func TestParseRule(t *testing.T) {
	a := adapterjson.NewAdapter()
	r, err := a.ParseRule([]byte(ruleDoc))
	require.NoError(t, err)

	assert.Equal(t, "rho_create_task_from_message", r.Metadata.ID)
	assert.Equal(t, []string{"task", "creation"}, r.Metadata.Tags)
	require.Len(t, r.Left.Nodes, 1)
	assert.Equal(t, "Message", r.Left.Nodes[0].Type)
	require.Len(t, r.Right.Nodes, 2)
	assert.Equal(t, "new:task", r.Right.Nodes[1].ID)
}

func TestParseRule_RejectsMalformed(t *testing.T) {
	a := adapterjson.NewAdapter()
	doc := `{"right": {"nodes": [{"id": "task-1", "node_type": "Task", "attrs": {}}], "edges": []}}`
	_, err := a.ParseRule([]byte(doc))
	var malformed *rule.MalformedError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseGraph_JSONC(t *testing.T) {
	a := adapterjson.NewAdapter()
	g, err := a.ParseGraph([]byte(graphDoc))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
}

func TestParseGraph_StrictRejectsJSONC(t *testing.T) {
	a := adapterjson.NewAdapter(adapterjson.WithStrictJSON(true))
	_, err := a.ParseGraph([]byte(graphDoc))
	assert.Error(t, err)
}

func TestParseGraph_DuplicateIDs(t *testing.T) {
	a := adapterjson.NewAdapter()
	doc := `{"nodes": [
	  {"id": "n1", "node_type": "Task", "attrs": {}},
	  {"id": "n1", "node_type": "Task", "attrs": {}}
	], "edges": []}`
	_, err := a.ParseGraph([]byte(doc))
	assert.ErrorContains(t, err, `duplicate node id "n1"`)
}

func TestParse_EmptyDocument(t *testing.T) {
	a := adapterjson.NewAdapter()
	_, err := a.ParseGraph([]byte("  \n"))
	assert.ErrorIs(t, err, adapterjson.ErrEmptyDocument)
}

func TestParse_TrailingContentRejected(t *testing.T) {
	a := adapterjson.NewAdapter()
	_, err := a.ParseGraph([]byte(`{"nodes": [], "edges": []} {"nodes": []}`))
	assert.ErrorContains(t, err, "unexpected content")
}

func TestRule_WriteParseRoundTrip(t *testing.T) {
	a := adapterjson.NewAdapter()
	r, err := a.ParseRule([]byte(ruleDoc))
	require.NoError(t, err)

	first, err := a.WriteRule(r)
	require.NoError(t, err)

	back, err := a.ParseRule(first)
	require.NoError(t, err)

	second, err := a.WriteRule(back)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "parse-write must be identity on canonical documents")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	a := adapterjson.NewAdapter()
	doc := `{
	  "graph": {"nodes": [{"id": "n1", "node_type": "Task", "attrs": {}}], "edges": []},
	  "metadata": {"revision": "rev-2", "timestamp": "2025-11-15T12:00:00Z", "actor_id": "system", "description": "x"}
	}`
	s, err := a.ParseSnapshot([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "rev-2", s.Metadata.Revision)

	out, err := a.WriteSnapshot(s)
	require.NoError(t, err)
	back, err := a.ParseSnapshot(out)
	require.NoError(t, err)
	again, err := a.WriteSnapshot(back)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestParseSnapshot_BadRevision(t *testing.T) {
	a := adapterjson.NewAdapter()
	doc := `{
	  "graph": {"nodes": [], "edges": []},
	  "metadata": {"revision": "version-2", "timestamp": "2025-11-15T12:00:00Z", "actor_id": "system", "description": ""}
	}`
	_, err := a.ParseSnapshot([]byte(doc))
	assert.ErrorContains(t, err, "rev-N")
}
