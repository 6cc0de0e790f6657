package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rewrite"
	"github.com/simon-lentz/dpograph/value"
)

var fixedTime = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// newSeededEngine builds an engine over the seed conversation state.
func newSeededEngine(t *testing.T) *rewrite.Engine {
	t.Helper()
	eng := rewrite.New(rewrite.WithClock(fixedClock))
	eng.Seed(seedState(), "Seed conversation state")
	return eng
}

func seedState() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "thread-1", Type: "Thread", Attrs: graph.Attrs{}},
			{ID: "turn-1", Type: "Turn", Attrs: graph.Attrs{}},
			{ID: "msg-1", Type: "Message", Attrs: graph.Attrs{
				"content": value.Str("Please create a task to write the report."),
				"author":  value.Str("user"),
			}},
			{ID: "user-actor", Type: "Actor", Attrs: graph.Attrs{}},
		},
		Edges: []graph.Edge{
			{ID: "e1", Type: "HAS_TURN", Src: "thread-1", Dst: "turn-1", Attrs: graph.Attrs{}},
			{ID: "e2", Type: "HAS_MESSAGE", Src: "turn-1", Dst: "msg-1", Attrs: graph.Attrs{}},
			{ID: "e3", Type: "AUTHORED_BY", Src: "msg-1", Dst: "user-actor", Attrs: graph.Attrs{}},
		},
	}
}

func canonicalSnapshot(t *testing.T, snap graph.Snapshot) string {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	return string(data)
}
