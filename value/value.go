package value

import (
	"math"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the zero kind; the zero Value is Null.
	KindNull Kind = iota
	KindStr
	KindInt
	KindFloat
	KindBool
	KindList
	KindObj
)

// String returns the canonical tag for the kind, as it appears in the
// "kind" field of the JSON form.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindStr:
		return "Str"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindList:
		return "List"
	case KindObj:
		return "Obj"
	default:
		return "unknown"
	}
}

// kindFromTag is the inverse of Kind.String for wire decoding.
func kindFromTag(s string) (Kind, bool) {
	switch s {
	case "Null":
		return KindNull, true
	case "Str":
		return KindStr, true
	case "Int":
		return KindInt, true
	case "Float":
		return KindFloat, true
	case "Bool":
		return KindBool, true
	case "List":
		return KindList, true
	case "Obj":
		return KindObj, true
	default:
		return KindNull, false
	}
}

// Value is an immutable tagged-union value.
//
// The zero Value is Null. Values are safe for concurrent read access and
// may be shared freely; no operation mutates a Value after construction.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	b    bool
	list []Value
	obj  map[string]Value
}

// Null returns the null Value. Equivalent to the zero Value.
func Null() Value {
	return Value{}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindStr, str: s}
}

// Int returns an integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a float Value.
//
// Negative zero is normalized to positive zero so that equal canonical
// serializations coincide with equal Values. NaN and infinities are
// representable in memory but have no canonical form; serialization
// rejects them, and the matcher refuses NaN-valued attributes.
func Float(f float64) Value {
	if f == 0 {
		f = 0 // collapse -0.0
	}
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// List returns a list Value holding the given elements in order.
//
// The elements slice is cloned; the caller may retain and mutate it.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(elems)}
}

// Obj returns an object Value holding the given entries.
//
// The entries map is cloned; the caller may retain and mutate it.
// Iteration over an Obj is always in sorted key order.
func Obj(entries map[string]Value) Value {
	m := make(map[string]Value, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Value{kind: KindObj, obj: m}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string and true if the value is a Str.
func (v Value) Str() (string, bool) {
	if v.kind != KindStr {
		return "", false
	}
	return v.str, true
}

// Int returns the integer and true if the value is an Int.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the float and true if the value is a Float.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Bool returns the boolean and true if the value is a Bool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Len returns the element count for List values and the entry count for
// Obj values. Returns 0 for all other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObj:
		return len(v.obj)
	default:
		return 0
	}
}

// At returns the list element at index i. Panics if the value is not a
// List or the index is out of range (programmer error, as with slices).
func (v Value) At(i int) Value {
	if v.kind != KindList {
		panic("value.At: not a List")
	}
	return v.list[i]
}

// Key returns the entry for the given key and true if the value is an Obj
// containing it.
func (v Value) Key(k string) (Value, bool) {
	if v.kind != KindObj {
		return Value{}, false
	}
	got, ok := v.obj[k]
	return got, ok
}

// Keys returns the Obj keys in sorted order. Returns nil for other kinds.
func (v Value) Keys() []string {
	if v.kind != KindObj || len(v.obj) == 0 {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Numeric reports whether the value is an Int or a Float, and returns its
// magnitude as a float64. Int values larger than 2^53 lose precision in
// the returned float; ordering comparisons accept that.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// IsNaN reports whether the value is a Float holding NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindFloat && math.IsNaN(v.f)
}

// Equal reports structural equality.
//
// Kinds never cross-equal: Int(1) is not equal to Float(1). Float
// comparison uses ==, so NaN is not equal to itself; NaN never reaches
// stored graphs because serialization rejects it.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindStr:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindObj:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, ve := range v.obj {
			oe, ok := other.obj[k]
			if !ok || !ve.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
