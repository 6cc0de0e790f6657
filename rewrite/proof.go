package rewrite

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rule"
)

// DiffSummary counts the structural changes between two snapshots.
type DiffSummary struct {
	NodesAdded   int `json:"nodes_added"`
	NodesRemoved int `json:"nodes_removed"`
	EdgesAdded   int `json:"edges_added"`
	EdgesRemoved int `json:"edges_removed"`
}

// ConfluenceProof is a placeholder for the deferred confluence analysis;
// it is nil on every proof this version produces.
type ConfluenceProof struct {
	Method  string `json:"method"`
	Details string `json:"details"`
}

// Proof records one committed rewrite: the rule's identity and canonical
// hash, the revision step, both snapshots, and the structural diff.
type Proof struct {
	RuleMetadata rule.Metadata
	RuleHash     string
	BeforeRev    string
	AfterRev     string
	Before       graph.Snapshot
	After        graph.Snapshot
	Confluence   *ConfluenceProof
	Diff         DiffSummary
	ActorID      string
	Timestamp    time.Time
}

// Clone returns a deep copy of the proof.
func (p Proof) Clone() Proof {
	p.RuleMetadata = p.RuleMetadata.Clone()
	p.Before = p.Before.Clone()
	p.After = p.After.Clone()
	if p.Confluence != nil {
		cp := *p.Confluence
		p.Confluence = &cp
	}
	return p
}

// Diff computes the summary of structural changes from before to after
// by id membership.
func Diff(before, after graph.Graph) DiffSummary {
	beforeNodes := make(map[string]bool, len(before.Nodes))
	for _, n := range before.Nodes {
		beforeNodes[n.ID] = true
	}
	afterNodes := make(map[string]bool, len(after.Nodes))
	for _, n := range after.Nodes {
		afterNodes[n.ID] = true
	}
	beforeEdges := make(map[string]bool, len(before.Edges))
	for _, e := range before.Edges {
		beforeEdges[e.ID] = true
	}
	afterEdges := make(map[string]bool, len(after.Edges))
	for _, e := range after.Edges {
		afterEdges[e.ID] = true
	}

	var d DiffSummary
	for id := range afterNodes {
		if !beforeNodes[id] {
			d.NodesAdded++
		}
	}
	for id := range beforeNodes {
		if !afterNodes[id] {
			d.NodesRemoved++
		}
	}
	for id := range afterEdges {
		if !beforeEdges[id] {
			d.EdgesAdded++
		}
	}
	for id := range beforeEdges {
		if !afterEdges[id] {
			d.EdgesRemoved++
		}
	}
	return d
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: edges_added, edges_removed, nodes_added, nodes_removed.
func (d DiffSummary) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"edges_added":`)
	dst = strconv.AppendInt(dst, int64(d.EdgesAdded), 10)
	dst = append(dst, `,"edges_removed":`...)
	dst = strconv.AppendInt(dst, int64(d.EdgesRemoved), 10)
	dst = append(dst, `,"nodes_added":`...)
	dst = strconv.AppendInt(dst, int64(d.NodesAdded), 10)
	dst = append(dst, `,"nodes_removed":`...)
	dst = strconv.AppendInt(dst, int64(d.NodesRemoved), 10)
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DiffSummary) UnmarshalJSON(data []byte) error {
	var wire struct {
		NodesAdded   int `json:"nodes_added"`
		NodesRemoved int `json:"nodes_removed"`
		EdgesAdded   int `json:"edges_added"`
		EdgesRemoved int `json:"edges_removed"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*d = DiffSummary(wire)
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: actor_id, after_revision, after_snapshot, before_revision,
// before_snapshot, confluence_proof, diff_summary, rule_hash,
// rule_metadata, timestamp.
func (p Proof) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"actor_id":`)
	dst = appendString(dst, p.ActorID)
	dst = append(dst, `,"after_revision":`...)
	dst = appendString(dst, p.AfterRev)
	dst = append(dst, `,"after_snapshot":`...)
	dst, err := p.After.AppendJSON(dst)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"before_revision":`...)
	dst = appendString(dst, p.BeforeRev)
	dst = append(dst, `,"before_snapshot":`...)
	if dst, err = p.Before.AppendJSON(dst); err != nil {
		return nil, err
	}
	dst = append(dst, `,"confluence_proof":`...)
	if p.Confluence == nil {
		dst = append(dst, `null`...)
	} else {
		dst = append(dst, `{"details":`...)
		dst = appendString(dst, p.Confluence.Details)
		dst = append(dst, `,"method":`...)
		dst = appendString(dst, p.Confluence.Method)
		dst = append(dst, '}')
	}
	dst = append(dst, `,"diff_summary":`...)
	b, err := p.Diff.MarshalJSON()
	if err != nil {
		return nil, err
	}
	dst = append(dst, b...)
	dst = append(dst, `,"rule_hash":`...)
	dst = appendString(dst, p.RuleHash)
	dst = append(dst, `,"rule_metadata":`...)
	if b, err = p.RuleMetadata.MarshalJSON(); err != nil {
		return nil, err
	}
	dst = append(dst, b...)
	dst = append(dst, `,"timestamp":`...)
	dst = appendString(dst, p.Timestamp.UTC().Format(time.RFC3339Nano))
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Proof) UnmarshalJSON(data []byte) error {
	var wire struct {
		RuleMetadata rule.Metadata    `json:"rule_metadata"`
		RuleHash     string           `json:"rule_hash"`
		BeforeRev    string           `json:"before_revision"`
		AfterRev     string           `json:"after_revision"`
		Before       graph.Snapshot   `json:"before_snapshot"`
		After        graph.Snapshot   `json:"after_snapshot"`
		Confluence   *ConfluenceProof `json:"confluence_proof"`
		Diff         DiffSummary      `json:"diff_summary"`
		ActorID      string           `json:"actor_id"`
		Timestamp    string           `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var ts time.Time
	if wire.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339Nano, wire.Timestamp)
		if err != nil {
			return err
		}
		ts = parsed.UTC()
	}
	*p = Proof{
		RuleMetadata: wire.RuleMetadata,
		RuleHash:     wire.RuleHash,
		BeforeRev:    wire.BeforeRev,
		AfterRev:     wire.AfterRev,
		Before:       wire.Before,
		After:        wire.After,
		Confluence:   wire.Confluence,
		Diff:         wire.Diff,
		ActorID:      wire.ActorID,
		Timestamp:    ts,
	}
	return nil
}

func appendString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}
