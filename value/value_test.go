package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/dpograph/value"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     value.Kind
		expected string
	}{
		{value.KindNull, "Null"},
		{value.KindStr, "Str"},
		{value.KindInt, "Int"},
		{value.KindFloat, "Float"},
		{value.KindBool, "Bool"},
		{value.KindList, "List"},
		{value.KindObj, "Obj"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	s, ok := value.Str("hello").Str()
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	i, ok := value.Int(42).Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)

	f, ok := value.Float(2.5).Float()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	b, ok := value.Bool(true).Bool()
	require.True(t, ok)
	assert.True(t, b)

	assert.True(t, value.Null().IsNull())

	// Cross-kind accessors miss.
	_, ok = value.Int(1).Str()
	assert.False(t, ok)
	_, ok = value.Str("x").Int()
	assert.False(t, ok)
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v value.Value
	assert.True(t, v.IsNull())
	assert.Equal(t, value.KindNull, v.Kind())
}

func TestValue_CollectionsCloneInput(t *testing.T) {
	elems := []value.Value{value.Int(1), value.Int(2)}
	list := value.List(elems...)
	elems[0] = value.Int(99)
	assert.True(t, value.Int(1).Equal(list.At(0)), "List must clone its input")

	entries := map[string]value.Value{"a": value.Int(1)}
	obj := value.Obj(entries)
	entries["a"] = value.Int(99)
	got, ok := obj.Key("a")
	require.True(t, ok)
	assert.True(t, value.Int(1).Equal(got), "Obj must clone its input")
}

func TestValue_Keys_Sorted(t *testing.T) {
	obj := value.Obj(map[string]value.Value{
		"zeta":  value.Int(1),
		"alpha": value.Int(2),
		"mid":   value.Int(3),
	})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, obj.Keys())
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  value.Value
		equal bool
	}{
		{"str equal", value.Str("a"), value.Str("a"), true},
		{"str differ", value.Str("a"), value.Str("b"), false},
		{"int equal", value.Int(7), value.Int(7), true},
		{"int float never cross-equal", value.Int(1), value.Float(1), false},
		{"float equal", value.Float(0.5), value.Float(0.5), true},
		{"neg zero normalized", value.Float(0), value.Float(math.Copysign(0, -1)), true},
		{"bool", value.Bool(true), value.Bool(true), true},
		{"null", value.Null(), value.Null(), true},
		{"null vs str", value.Null(), value.Str(""), false},
		{
			"list equal",
			value.List(value.Int(1), value.Str("x")),
			value.List(value.Int(1), value.Str("x")),
			true,
		},
		{
			"list order matters",
			value.List(value.Int(1), value.Int(2)),
			value.List(value.Int(2), value.Int(1)),
			false,
		},
		{
			"obj equal regardless of construction order",
			value.Obj(map[string]value.Value{"a": value.Int(1), "b": value.Int(2)}),
			value.Obj(map[string]value.Value{"b": value.Int(2), "a": value.Int(1)}),
			true,
		},
		{
			"obj extra key",
			value.Obj(map[string]value.Value{"a": value.Int(1)}),
			value.Obj(map[string]value.Value{"a": value.Int(1), "b": value.Int(2)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a), "Equal must be symmetric")
		})
	}
}

func TestValue_Numeric(t *testing.T) {
	f, ok := value.Int(3).Numeric()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	f, ok = value.Float(2.5).Numeric()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = value.Str("3").Numeric()
	assert.False(t, ok)
}
