package json

import (
	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/rewrite"
	"github.com/simon-lentz/dpograph/rule"
)

// WriteRule renders the rule's canonical bytes.
func (a *Adapter) WriteRule(r rule.DpoRule) ([]byte, error) {
	return r.MarshalJSON()
}

// WriteGraph renders the graph's canonical bytes.
func (a *Adapter) WriteGraph(g graph.Graph) ([]byte, error) {
	return g.AppendJSON(nil)
}

// WriteSnapshot renders the snapshot's canonical bytes.
func (a *Adapter) WriteSnapshot(s graph.Snapshot) ([]byte, error) {
	return s.AppendJSON(nil)
}

// WriteProof renders the proof's canonical bytes.
func (a *Adapter) WriteProof(p rewrite.Proof) ([]byte, error) {
	return p.MarshalJSON()
}
