package graph

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/simon-lentz/dpograph/value"
)

// Canonical JSON: every mapping, including struct fields keyed by their
// wire names, emits in lexicographic key order. Canonical bytes define
// snapshot equality, so the writers below control layout directly.

// AppendJSON appends the node's canonical form to dst.
// Field order: attrs, id, node_type.
func (n Node) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"attrs":`...)
	dst, err := AppendAttrs(dst, n.Attrs)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"id":`...)
	dst = appendString(dst, n.ID)
	dst = append(dst, `,"node_type":`...)
	dst = appendString(dst, n.Type)
	return append(dst, '}'), nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (n Node) MarshalJSON() ([]byte, error) {
	return n.AppendJSON(nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID    string                 `json:"id"`
		Type  string                 `json:"node_type"`
		Attrs map[string]value.Value `json:"attrs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*n = Node{ID: wire.ID, Type: wire.Type, Attrs: wire.Attrs}
	return nil
}

// AppendJSON appends the edge's canonical form to dst.
// Field order: attrs, dst, edge_type, id, src.
func (e Edge) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"attrs":`...)
	dst, err := AppendAttrs(dst, e.Attrs)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"dst":`...)
	dst = appendString(dst, e.Dst)
	dst = append(dst, `,"edge_type":`...)
	dst = appendString(dst, e.Type)
	dst = append(dst, `,"id":`...)
	dst = appendString(dst, e.ID)
	dst = append(dst, `,"src":`...)
	dst = appendString(dst, e.Src)
	return append(dst, '}'), nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (e Edge) MarshalJSON() ([]byte, error) {
	return e.AppendJSON(nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID    string                 `json:"id"`
		Type  string                 `json:"edge_type"`
		Src   string                 `json:"src"`
		Dst   string                 `json:"dst"`
		Attrs map[string]value.Value `json:"attrs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Edge{ID: wire.ID, Type: wire.Type, Src: wire.Src, Dst: wire.Dst, Attrs: wire.Attrs}
	return nil
}

// AppendJSON appends the graph's canonical form to dst.
// Field order: edges, nodes. Element order is insertion order.
func (g Graph) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"edges":[`...)
	var err error
	for i, e := range g.Edges {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = e.AppendJSON(dst)
		if err != nil {
			return nil, err
		}
	}
	dst = append(dst, `],"nodes":[`...)
	for i, n := range g.Nodes {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = n.AppendJSON(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, `]}`...), nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (g Graph) MarshalJSON() ([]byte, error) {
	return g.AppendJSON(nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var wire struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*g = Graph{Nodes: wire.Nodes, Edges: wire.Edges}
	return nil
}

// AppendJSON appends the metadata's canonical form to dst.
// Field order: actor_id, description, revision, timestamp.
// Timestamps emit in UTC RFC 3339 with nanoseconds.
func (m Metadata) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"actor_id":`...)
	dst = appendString(dst, m.ActorID)
	dst = append(dst, `,"description":`...)
	dst = appendString(dst, m.Description)
	dst = append(dst, `,"revision":`...)
	dst = appendString(dst, m.Revision)
	dst = append(dst, `,"timestamp":`...)
	dst = appendString(dst, m.Timestamp.UTC().Format(time.RFC3339Nano))
	return append(dst, '}')
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return m.AppendJSON(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var wire struct {
		Revision    string `json:"revision"`
		Timestamp   string `json:"timestamp"`
		ActorID     string `json:"actor_id"`
		Description string `json:"description"`
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
	*m = Metadata{
		Revision:    wire.Revision,
		Timestamp:   ts,
		ActorID:     wire.ActorID,
		Description: wire.Description,
	}
	return nil
}

// AppendJSON appends the snapshot's canonical form to dst.
// Field order: graph, metadata.
func (s Snapshot) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"graph":`...)
	dst, err := s.Graph.AppendJSON(dst)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"metadata":`...)
	dst = s.Metadata.AppendJSON(dst)
	return append(dst, '}'), nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return s.AppendJSON(nil)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var wire struct {
		Graph    Graph    `json:"graph"`
		Metadata Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*s = Snapshot{Graph: wire.Graph, Metadata: wire.Metadata}
	return nil
}

// AppendAttrs appends an attribute map in canonical form: keys in sorted
// byte order, values in their canonical tagged form. A nil map emits {}.
func AppendAttrs(dst []byte, attrs Attrs) ([]byte, error) {
	dst = append(dst, '{')
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var err error
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, k)
		dst = append(dst, ':')
		dst, err = attrs[k].AppendJSON(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

func appendString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}
