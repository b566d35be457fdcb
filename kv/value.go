package kv

import "math"

// Kind tags the variant held by a Value, per spec.md's cell type
// {Null, Boolean, Integer, Float, String}.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a single cell: exactly one of Null, Boolean, Integer, Float or
// String. Equality on Float follows IEEE-754 except NaN, which is
// canonicalized to a single bit pattern so it orders deterministically and
// compares equal to itself.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    uint64 // math.Float64bits(f), so NaN has one canonical representation
	s    string
}

func NullValue() Value           { return Value{kind: KindNull} }
func BooleanValue(b bool) Value  { return Value{kind: KindBoolean, b: b} }
func IntegerValue(i int64) Value { return Value{kind: KindInteger, i: i} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// FloatValue canonicalizes NaN to math.NaN()'s bit pattern so all NaNs
// compare and order identically.
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		f = math.NaN()
	}
	return Value{kind: KindFloat, f: math.Float64bits(f)}
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) Boolean() bool { return v.b }
func (v Value) Integer() int64 { return v.i }
func (v Value) Float() float64 { return math.Float64frombits(v.f) }
func (v Value) Text() string   { return v.s }

// Equal implements the spec's three-valued-logic-free structural equality
// used for indexing and deduplication (as opposed to SQL's Null-propagating
// comparison operators, which live in sql/exec).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	default:
		return false
	}
}
