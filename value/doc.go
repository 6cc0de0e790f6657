// Package value provides the immutable tagged-union value type used for
// node and edge attributes throughout the module.
//
// A Value is one of seven kinds: Str, Int, Float, Bool, Null, List, or
// Obj. Values are immutable after construction; constructors that accept
// collections clone their input, so callers may freely retain and mutate
// the originals. Because Values never change, they may be shared across
// graph clones without copying.
//
// # Canonical JSON
//
// Every Value has exactly one canonical JSON form:
//
//	{"kind": "Str", "value": "hello"}
//	{"kind": "Null"}
//	{"kind": "Obj", "value": {"a": {"kind": "Int", "value": 1}}}
//
// Object keys emit in lexicographic byte order. Floats emit in shortest
// round-trip form with negative zero normalized to zero. NaN and
// infinities have no canonical form and fail to serialize. Two Values are
// equal exactly when their canonical serializations are byte-equal; this
// underpins the determinism guarantees of the rewrite engine.
package value
