package runtime

import (
	"math/big"

	"github.com/you-not-fish/cbr/internal/types"
)

// Value is the result of evaluating an expression: an integer of some
// integer type, a string, or void.
type Value struct {
	typ *types.Basic
	num *big.Int
	str string
}

// Void is the value of a call to a function without a result.
var Void = Value{typ: types.Typ[types.Void]}

// Int returns an integer value of type typ. v is not copied.
func Int(typ *types.Basic, v *big.Int) Value {
	return Value{typ: typ, num: v}
}

// Untyped returns an untyped integer value.
func Untyped(v *big.Int) Value {
	return Value{typ: types.Typ[types.UntypedInt], num: v}
}

// UntypedInt64 returns an untyped integer value holding n.
func UntypedInt64(n int64) Value {
	return Untyped(big.NewInt(n))
}

// Str returns a string value.
func Str(s string) Value {
	return Value{typ: types.Typ[types.String], str: s}
}

// Zero returns the zero value of typ: 0 for integers, "" for strings.
func Zero(typ *types.Basic) Value {
	if typ.IsString() {
		return Str("")
	}
	return Int(typ, new(big.Int))
}

func (v Value) Type() *types.Basic { return v.typ }
func (v Value) IsInteger() bool    { return v.typ.IsInteger() }
func (v Value) IsString() bool     { return v.typ.IsString() }
func (v Value) IsVoid() bool       { return v.typ == nil || v.typ.IsVoid() }

// BigInt returns the integer held by v. The result must not be modified.
func (v Value) BigInt() *big.Int {
	if v.num == nil {
		return new(big.Int)
	}
	return v.num
}

// Text returns the string held by v.
func (v Value) Text() string { return v.str }

// Untyped drops the concrete type of an integer value.
func (v Value) Untyped() Value {
	if !v.IsInteger() {
		return v
	}
	return Untyped(v.num)
}

// String formats v the way print does.
func (v Value) String() string {
	switch {
	case v.IsString():
		return v.str
	case v.IsInteger():
		return v.BigInt().String()
	}
	return "void"
}
