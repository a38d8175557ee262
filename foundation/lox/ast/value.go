// File: value.go
// Title: Lox Runtime Values
// Description: The dynamic value model: a closed variant over nil, boolean,
//              number and string with rendering, truthiness and equality.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-17
// Modified: 2025-10-17
//
// Change History:
// - 2025-10-17 v0.1.0: Initial value model

package ast

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindString
)

// String returns the lower case name of the kind
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is an immutable runtime value. The zero Value is nil.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
}

// NilValue returns the nil value
func NilValue() Value {
	return Value{}
}

// BoolValue wraps a boolean
func BoolValue(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// NumberValue wraps a number
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// StringValue wraps a string
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind returns the variant of the value
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is nil
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// AsBool returns the boolean payload and whether v is a boolean
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBoolean
}

// AsNumber returns the numeric payload and whether v is a number
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload and whether v is a string
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// Truthy applies the language's truthiness rule: nil and false are falsy,
// everything else, including 0 and "", is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBoolean:
		return v.b
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBoolean:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	default:
		return false
	}
}

// String renders the value the way print shows it. Strings are unquoted
// and integral numbers have no fraction.
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	default:
		return "nil"
	}
}

// FormatNumber renders a number in its shortest decimal form
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
