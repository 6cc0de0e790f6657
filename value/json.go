package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNotFinite is returned when serializing a Float holding NaN or an
// infinity; such values have no canonical form.
var ErrNotFinite = errors.New("value: non-finite float has no canonical form")

// AppendJSON appends the canonical JSON form of the value to dst.
//
// The canonical form is the definition of value equality for snapshot
// comparison: object keys emit in sorted byte order, floats in shortest
// round-trip form, and the "kind" tag always precedes "value".
func (v Value) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, `{"kind":"`...)
	dst = append(dst, v.kind.String()...)
	dst = append(dst, '"')
	if v.kind == KindNull {
		return append(dst, '}'), nil
	}
	dst = append(dst, `,"value":`...)
	dst, err := v.appendPayload(dst)
	if err != nil {
		return nil, err
	}
	return append(dst, '}'), nil
}

func (v Value) appendPayload(dst []byte) ([]byte, error) {
	switch v.kind {
	case KindStr:
		return appendString(dst, v.str), nil
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, ErrNotFinite
		}
		f := v.f
		if f == 0 {
			f = 0 // collapse -0.0 for values constructed before normalization
		}
		return strconv.AppendFloat(dst, f, 'g', -1, 64), nil
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindList:
		dst = append(dst, '[')
		for i, elem := range v.list {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = elem.AppendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindObj:
		dst = append(dst, '{')
		for i, k := range v.Keys() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, k)
			dst = append(dst, ':')
			var err error
			dst, err = v.obj[k].AppendJSON(dst)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("value: unknown kind %d", v.kind)
	}
}

// appendString appends s as a JSON string using the standard library's
// escaping, which is deterministic.
func appendString(dst []byte, s string) []byte {
	// json.Marshal on a string cannot fail.
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil)
}

// UnmarshalJSON implements json.Unmarshaler for the tagged wire form.
//
// Decoding is lenient about key order and whitespace; re-serializing
// always yields the canonical bytes.
func (v *Value) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	kind, ok := kindFromTag(envelope.Kind)
	if !ok {
		return fmt.Errorf("value: unknown kind tag %q", envelope.Kind)
	}
	if kind == KindNull {
		*v = Null()
		return nil
	}
	if len(envelope.Value) == 0 {
		return fmt.Errorf("value: kind %q requires a value field", envelope.Kind)
	}
	decoded, err := decodePayload(kind, envelope.Value)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func decodePayload(kind Kind, raw json.RawMessage) (Value, error) {
	switch kind {
	case KindStr:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("value: Str payload: %w", err)
		}
		return Str(s), nil
	case KindInt:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return Value{}, fmt.Errorf("value: Int payload: %w", err)
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("value: Int payload: %w", err)
		}
		return Int(i), nil
	case KindFloat:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return Value{}, fmt.Errorf("value: Float payload: %w", err)
		}
		return Float(f), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, fmt.Errorf("value: Bool payload: %w", err)
		}
		return Bool(b), nil
	case KindList:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return Value{}, fmt.Errorf("value: List payload: %w", err)
		}
		list := make([]Value, len(elems))
		for i, e := range elems {
			if err := list[i].UnmarshalJSON(e); err != nil {
				return Value{}, err
			}
		}
		return Value{kind: KindList, list: list}, nil
	case KindObj:
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return Value{}, fmt.Errorf("value: Obj payload: %w", err)
		}
		obj := make(map[string]Value, len(entries))
		for k, e := range entries {
			var elem Value
			if err := elem.UnmarshalJSON(e); err != nil {
				return Value{}, err
			}
			obj[k] = elem
		}
		return Value{kind: KindObj, obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("value: unknown kind %d", kind)
	}
}
