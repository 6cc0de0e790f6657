package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
)

// ParseRule decodes a DpoRule document and checks its structural
// well-formedness, so a rule obtained from the adapter is ready for the
// engine.
func (a *Adapter) ParseRule(data []byte) (rule.DpoRule, error) {
	var r rule.DpoRule
	if err := a.decode(data, &r); err != nil {
		return rule.DpoRule{}, err
	}
	if err := rule.WellFormed(r); err != nil {
		return rule.DpoRule{}, err
	}
	return r, nil
}

// ParseGraph decodes a Graph document.
func (a *Adapter) ParseGraph(data []byte) (graph.Graph, error) {
	var g graph.Graph
	if err := a.decode(data, &g); err != nil {
		return graph.Graph{}, err
	}
	if err := checkIDs(g); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// ParseSnapshot decodes a Snapshot document.
func (a *Adapter) ParseSnapshot(data []byte) (graph.Snapshot, error) {
	var s graph.Snapshot
	if err := a.decode(data, &s); err != nil {
		return graph.Snapshot{}, err
	}
	if err := checkIDs(s.Graph); err != nil {
		return graph.Snapshot{}, err
	}
	if s.Metadata.Revision != "" {
		if _, err := graph.ParseRevision(s.Metadata.Revision); err != nil {
			return graph.Snapshot{}, err
		}
	}
	return s, nil
}

// decode strips JSONC unless strict, then decodes into out, rejecting
// trailing content.
func (a *Adapter) decode(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}
	if !a.strictJSON {
		data = jsonc.ToJSON(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("adapter/json: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("adapter/json: unexpected content after document")
	}
	return nil
}

// checkIDs enforces id uniqueness, which decoding alone cannot.
func checkIDs(g graph.Graph) error {
	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("adapter/json: node with empty id")
		}
		if nodeIDs[n.ID] {
			return fmt.Errorf("adapter/json: duplicate node id %q", n.ID)
		}
		nodeIDs[n.ID] = true
	}
	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if e.ID == "" {
			return fmt.Errorf("adapter/json: edge with empty id")
		}
		if edgeIDs[e.ID] {
			return fmt.Errorf("adapter/json: duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true
	}
	return nil
}
