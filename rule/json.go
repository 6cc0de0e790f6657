package rule

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/simon-lentz/dpograph/graph"
	"github.com/simon-lentz/dpograph/value"
)

// Canonical JSON mirrors the graph package: all mapping keys, including
// struct fields keyed by wire name, emit in lexicographic order.

// MarshalJSON implements json.Marshaler with the canonical form.
// Shape: {"op":K,...} with the operand under "value", "values", or
// "pattern" depending on the kind.
func (o AttrOp) MarshalJSON() ([]byte, error) {
	return o.appendJSON(nil)
}

func (o AttrOp) appendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"op":`...)
	dst = appendString(dst, o.kind.String())
	var err error
	switch o.kind {
	case OpRegex:
		dst = append(dst, `,"pattern":`...)
		dst = appendString(dst, o.pattern)
	case OpIn:
		dst = append(dst, `,"values":[`...)
		for i, v := range o.values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = v.AppendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, ']')
	default:
		dst = append(dst, `,"value":`...)
		dst, err = o.operand.AppendJSON(dst)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *AttrOp) UnmarshalJSON(data []byte) error {
	var wire struct {
		Op      string          `json:"op"`
		Value   json.RawMessage `json:"value"`
		Values  []value.Value   `json:"values"`
		Pattern string          `json:"pattern"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, ok := opKindFromTag(wire.Op)
	if !ok {
		return fmt.Errorf("rule: unknown attribute op %q", wire.Op)
	}
	switch kind {
	case OpRegex:
		*o = Regex(wire.Pattern)
	case OpIn:
		*o = In(wire.Values...)
	default:
		var operand value.Value
		if len(wire.Value) > 0 {
			if err := json.Unmarshal(wire.Value, &operand); err != nil {
				return err
			}
		}
		*o = AttrOp{kind: kind, operand: operand}
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: attrs, node_type, var. An unset type emits null.
func (p NodePattern) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"attrs":`)
	dst, err := appendOpAttrs(dst, p.Attrs)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"node_type":`...)
	dst = appendOptionalString(dst, p.Type)
	dst = append(dst, `,"var":`...)
	dst = appendString(dst, p.Var)
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *NodePattern) UnmarshalJSON(data []byte) error {
	var wire struct {
		Var   string              `json:"var"`
		Type  *string             `json:"node_type"`
		Attrs map[string][]AttrOp `json:"attrs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.Var = wire.Var
	p.Attrs = wire.Attrs
	if wire.Type != nil {
		p.Type = *wire.Type
	} else {
		p.Type = ""
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: attrs, dst_var, edge_type, src_var, var.
func (p EdgePattern) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"attrs":`)
	dst, err := appendOpAttrs(dst, p.Attrs)
	if err != nil {
		return nil, err
	}
	dst = append(dst, `,"dst_var":`...)
	dst = appendString(dst, p.DstVar)
	dst = append(dst, `,"edge_type":`...)
	dst = appendOptionalString(dst, p.Type)
	dst = append(dst, `,"src_var":`...)
	dst = appendString(dst, p.SrcVar)
	dst = append(dst, `,"var":`...)
	dst = appendString(dst, p.Var)
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *EdgePattern) UnmarshalJSON(data []byte) error {
	var wire struct {
		Var    string              `json:"var"`
		Type   *string             `json:"edge_type"`
		SrcVar string              `json:"src_var"`
		DstVar string              `json:"dst_var"`
		Attrs  map[string][]AttrOp `json:"attrs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.Var = wire.Var
	p.SrcVar = wire.SrcVar
	p.DstVar = wire.DstVar
	p.Attrs = wire.Attrs
	if wire.Type != nil {
		p.Type = *wire.Type
	} else {
		p.Type = ""
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: kind, vars.
func (c Constraint) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"kind":`)
	dst = appendString(dst, c.Kind.String())
	dst = append(dst, `,"vars":[`...)
	for i, v := range c.Vars {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, v)
	}
	return append(dst, `]}`...), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Constraint) UnmarshalJSON(data []byte) error {
	var wire struct {
		Kind string   `json:"kind"`
		Vars []string `json:"vars"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	kind, ok := constraintKindFromTag(wire.Kind)
	if !ok {
		return fmt.Errorf("rule: unknown structural constraint %q", wire.Kind)
	}
	c.Kind = kind
	c.Vars = wire.Vars
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: constraints, edges, nodes.
func (p GraphPattern) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"constraints":[`)
	for i, c := range p.Constraints {
		if i > 0 {
			dst = append(dst, ',')
		}
		b, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		dst = append(dst, b...)
	}
	dst = append(dst, `],"edges":[`...)
	for i, e := range p.Edges {
		if i > 0 {
			dst = append(dst, ',')
		}
		b, err := e.MarshalJSON()
		if err != nil {
			return nil, err
		}
		dst = append(dst, b...)
	}
	dst = append(dst, `],"nodes":[`...)
	for i, n := range p.Nodes {
		if i > 0 {
			dst = append(dst, ',')
		}
		b, err := n.MarshalJSON()
		if err != nil {
			return nil, err
		}
		dst = append(dst, b...)
	}
	return append(dst, `]}`...), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *GraphPattern) UnmarshalJSON(data []byte) error {
	var wire struct {
		Nodes       []NodePattern `json:"nodes"`
		Edges       []EdgePattern `json:"edges"`
		Constraints []Constraint  `json:"constraints"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = GraphPattern{Nodes: wire.Nodes, Edges: wire.Edges, Constraints: wire.Constraints}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: author, created_at, description, id, tags, version.
func (m Metadata) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"author":`)
	dst = appendString(dst, m.Author)
	dst = append(dst, `,"created_at":`...)
	dst = appendString(dst, m.CreatedAt.UTC().Format(time.RFC3339Nano))
	dst = append(dst, `,"description":`...)
	dst = appendString(dst, m.Description)
	dst = append(dst, `,"id":`...)
	dst = appendString(dst, m.ID)
	dst = append(dst, `,"tags":[`...)
	for i, tag := range m.Tags {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, tag)
	}
	dst = append(dst, `],"version":`...)
	dst = appendString(dst, m.Version)
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID          string   `json:"id"`
		Version     string   `json:"version"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		Author      string   `json:"author"`
		CreatedAt   string   `json:"created_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var ts time.Time
	if wire.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, wire.CreatedAt)
		if err != nil {
			return err
		}
		ts = parsed.UTC()
	}
	*m = Metadata{
		ID:          wire.ID,
		Version:     wire.Version,
		Description: wire.Description,
		Tags:        wire.Tags,
		Author:      wire.Author,
		CreatedAt:   ts,
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical form.
// Field order: interface, left, metadata, right.
func (r DpoRule) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"interface":`)
	b, err := r.Interface.MarshalJSON()
	if err != nil {
		return nil, err
	}
	dst = append(dst, b...)
	dst = append(dst, `,"left":`...)
	if b, err = r.Left.MarshalJSON(); err != nil {
		return nil, err
	}
	dst = append(dst, b...)
	dst = append(dst, `,"metadata":`...)
	if b, err = r.Metadata.MarshalJSON(); err != nil {
		return nil, err
	}
	dst = append(dst, b...)
	dst = append(dst, `,"right":`...)
	if dst, err = r.Right.AppendJSON(dst); err != nil {
		return nil, err
	}
	return append(dst, '}'), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *DpoRule) UnmarshalJSON(data []byte) error {
	var wire struct {
		Metadata  Metadata     `json:"metadata"`
		Left      GraphPattern `json:"left"`
		Interface GraphPattern `json:"interface"`
		Right     graph.Graph  `json:"right"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = DpoRule{
		Metadata:  wire.Metadata,
		Left:      wire.Left,
		Interface: wire.Interface,
		Right:     wire.Right,
	}
	return nil
}

// appendOpAttrs appends a pattern attribute map: keys sorted, each value
// an array of ops.
func appendOpAttrs(dst []byte, attrs map[string][]AttrOp) ([]byte, error) {
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
		dst = append(dst, ':', '[')
		for j, op := range attrs[k] {
			if j > 0 {
				dst = append(dst, ',')
			}
			dst, err = op.appendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, ']')
	}
	return append(dst, '}'), nil
}

func appendOptionalString(dst []byte, s string) []byte {
	if s == "" {
		return append(dst, `null`...)
	}
	return appendString(dst, s)
}

func appendString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}
