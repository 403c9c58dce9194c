// Package value implements the Value union used throughout working memory:
// integers, floats, booleans, strings, and the literal NIL sentinel.
package value

import (
	"fmt"
	"strconv"
)

// Kind discriminates the variant held by a Value.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String
	NIL
)

// Value is a tagged union over the literal types a Fact attribute can hold.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    bool
	S    string
}

func NewInt(i int64) Value     { return Value{Kind: Int, I: i} }
func NewFloat(f float64) Value { return Value{Kind: Float, F: f} }
func NewBool(b bool) Value     { return Value{Kind: Bool, B: b} }
func NewString(s string) Value { return Value{Kind: String, S: s} }
func NewNIL() Value            { return Value{Kind: NIL} }

// IsNumeric reports whether the value can participate in arithmetic.
func (v Value) IsNumeric() bool { return v.Kind == Int || v.Kind == Float }

// AsFloat returns the value as a float64; only meaningful when IsNumeric.
func (v Value) AsFloat() float64 {
	if v.Kind == Int {
		return float64(v.I)
	}
	return v.F
}

// Equal implements structural equality used by condition predicates and by
// Fact/Condition/Conclusion hashing.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Int:
		return v.I == o.I
	case Float:
		return v.F == o.F
	case Bool:
		return v.B == o.B
	case String:
		return v.S == o.S
	case NIL:
		return true
	}
	return false
}

// Compare returns (-1, 0, 1) for numeric values; ok is false when the
// comparison is not defined (non-numeric operands, or NIL on either side).
// gt/lt/gte/lte predicates treat an undefined comparison as false, not an
// error, consistent with the rest of the predicate library.
func Compare(a, b Value) (cmp int, ok bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, false
	}
	af, bf := a.AsFloat(), b.AsFloat()
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

// HashKey returns a string uniquely identifying the value for use as a map
// key in the structural-hashing containers (§4.A).
func (v Value) HashKey() string {
	switch v.Kind {
	case Int:
		return "I:" + strconv.FormatInt(v.I, 10)
	case Float:
		return "F:" + strconv.FormatFloat(v.F, 'g', -1, 64)
	case Bool:
		return "B:" + strconv.FormatBool(v.B)
	case String:
		return "S:" + v.S
	default:
		return "N:"
	}
}

func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Float:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.B)
	case String:
		return v.S
	case NIL:
		return "NIL"
	}
	return fmt.Sprintf("<invalid value kind %d>", v.Kind)
}
