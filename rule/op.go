package rule

import (
	"slices"

	"github.com/simon-lentz/dpograph/value"
)

// OpKind identifies an attribute operation.
type OpKind uint8

const (
	OpEq OpKind = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpRegex
	OpIn
)

// String returns the wire tag for the operation.
func (k OpKind) String() string {
	switch k {
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpLt:
		return "lt"
	case OpLte:
		return "lte"
	case OpGt:
		return "gt"
	case OpGte:
		return "gte"
	case OpRegex:
		return "regex"
	case OpIn:
		return "in"
	default:
		return "unknown"
	}
}

func opKindFromTag(s string) (OpKind, bool) {
	switch s {
	case "eq":
		return OpEq, true
	case "neq":
		return OpNeq, true
	case "lt":
		return OpLt, true
	case "lte":
		return OpLte, true
	case "gt":
		return OpGt, true
	case "gte":
		return OpGte, true
	case "regex":
		return OpRegex, true
	case "in":
		return OpIn, true
	default:
		return 0, false
	}
}

// AttrOp is a single attribute operation. All operations listed for an
// attribute must hold (conjunction). Construct via Eq, Neq, Lt, Lte, Gt,
// Gte, Regex, or In; the zero AttrOp is Eq against Null.
type AttrOp struct {
	kind    OpKind
	operand value.Value   // eq..gte
	pattern string        // regex
	values  []value.Value // in
}

// Eq matches attributes structurally equal to v.
func Eq(v value.Value) AttrOp { return AttrOp{kind: OpEq, operand: v} }

// Neq matches attributes not structurally equal to v.
func Neq(v value.Value) AttrOp { return AttrOp{kind: OpNeq, operand: v} }

// Lt matches attributes ordered strictly below v. Ordering applies when
// both sides are numeric or both are strings; otherwise the op fails.
func Lt(v value.Value) AttrOp { return AttrOp{kind: OpLt, operand: v} }

// Lte matches attributes ordered at or below v.
func Lte(v value.Value) AttrOp { return AttrOp{kind: OpLte, operand: v} }

// Gt matches attributes ordered strictly above v.
func Gt(v value.Value) AttrOp { return AttrOp{kind: OpGt, operand: v} }

// Gte matches attributes ordered at or above v.
func Gte(v value.Value) AttrOp { return AttrOp{kind: OpGte, operand: v} }

// Regex matches string attributes containing a match of the pattern.
// Non-string attributes fail the op.
func Regex(pattern string) AttrOp { return AttrOp{kind: OpRegex, pattern: pattern} }

// In matches attributes structurally equal to any of the given values.
func In(vs ...value.Value) AttrOp {
	return AttrOp{kind: OpIn, values: slices.Clone(vs)}
}

// Kind returns the operation kind.
func (o AttrOp) Kind() OpKind { return o.kind }

// Operand returns the comparison operand for eq/neq/lt/lte/gt/gte.
func (o AttrOp) Operand() value.Value { return o.operand }

// Pattern returns the regex pattern for regex ops.
func (o AttrOp) Pattern() string { return o.pattern }

// Values returns a copy of the membership set for in ops.
func (o AttrOp) Values() []value.Value { return slices.Clone(o.values) }
