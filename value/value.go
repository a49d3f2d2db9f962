// Package value defines the values produced by literal evaluation.
//
// The set of kinds is closed: every Value is one of Int, Float, Complex,
// Str, Bytes, Bool, None, Ellipsis, Tuple, List, *Set or *Dict.
package value

import (
	"math"
	"math/big"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindComplex
	KindStr
	KindBytes
	KindBool
	KindNone
	KindEllipsis
	KindTuple
	KindList
	KindSet
	KindDict
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindInt:      "int",
	KindFloat:    "float",
	KindComplex:  "complex",
	KindStr:      "str",
	KindBytes:    "bytes",
	KindBool:     "bool",
	KindNone:     "NoneType",
	KindEllipsis: "ellipsis",
	KindTuple:    "tuple",
	KindList:     "list",
	KindSet:      "set",
	KindDict:     "dict",
}

// String returns the type name used in literal syntax, e.g. "int" or "dict".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// Value is the result of evaluating a literal expression.
type Value interface {
	Kind() Kind
	isValue()
}

// Int is an arbitrary precision integer. The zero Int is 0.
type Int struct {
	v *big.Int
}

// NewInt returns an Int holding i.
func NewInt(i int64) Int {
	return Int{v: big.NewInt(i)}
}

// NewBigInt returns an Int holding a copy of b.
func NewBigInt(b *big.Int) Int {
	return Int{v: new(big.Int).Set(b)}
}

func (i Int) big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Big returns a copy of the underlying integer.
func (i Int) Big() *big.Int {
	return new(big.Int).Set(i.big())
}

// Int64 reports the value as int64 and whether it fits.
func (i Int) Int64() (int64, bool) {
	b := i.big()
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

// Neg returns -i.
func (i Int) Neg() Int {
	return Int{v: new(big.Int).Neg(i.big())}
}

// Float64 converts i to a float64, failing when the magnitude is too large.
func (i Int) Float64() (float64, error) {
	f, _ := new(big.Float).SetInt(i.big()).Float64()
	if math.IsInf(f, 0) {
		return 0, &OverflowError{Msg: "int too large to convert to float"}
	}
	return f, nil
}

func (i Int) String() string { return i.big().String() }

// Float is a double precision float.
type Float float64

// Complex is a pair of double precision floats.
type Complex complex128

// Str is a text string.
type Str string

// Bytes is an immutable byte string.
type Bytes string

// Bool is True or False. It is never treated as Int by the converter.
type Bool bool

// None is the singleton null value.
type None struct{}

// Ellipsis is the "..." constant.
type Ellipsis struct{}

// Tuple is an immutable ordered sequence.
type Tuple []Value

// List is a mutable ordered sequence.
type List []Value

func (Int) Kind() Kind      { return KindInt }
func (Float) Kind() Kind    { return KindFloat }
func (Complex) Kind() Kind  { return KindComplex }
func (Str) Kind() Kind      { return KindStr }
func (Bytes) Kind() Kind    { return KindBytes }
func (Bool) Kind() Kind     { return KindBool }
func (None) Kind() Kind     { return KindNone }
func (Ellipsis) Kind() Kind { return KindEllipsis }
func (Tuple) Kind() Kind    { return KindTuple }
func (List) Kind() Kind     { return KindList }
func (*Set) Kind() Kind     { return KindSet }
func (*Dict) Kind() Kind    { return KindDict }

func (Int) isValue()      {}
func (Float) isValue()    {}
func (Complex) isValue()  {}
func (Str) isValue()      {}
func (Bytes) isValue()    {}
func (Bool) isValue()     {}
func (None) isValue()     {}
func (Ellipsis) isValue() {}
func (Tuple) isValue()    {}
func (List) isValue()     {}
func (*Set) isValue()     {}
func (*Dict) isValue()    {}

// IsRealNumber reports whether v is an Int or a Float (booleans excluded).
func IsRealNumber(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// IsNumber reports whether v is an Int, Float or Complex (booleans excluded).
func IsNumber(v Value) bool {
	switch v.(type) {
	case Int, Float, Complex:
		return true
	}
	return false
}
