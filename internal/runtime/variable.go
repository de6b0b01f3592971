package runtime

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/you-not-fish/cbr/internal/syntax"
	"github.com/you-not-fish/cbr/internal/types"
)

// Variable is a named storage cell owned by a scope frame: a scalar of any
// value type, or a fixed-length array of integers.
type Variable struct {
	Name string
	Type *types.Basic
	Pos  syntax.Pos

	val   Value      // scalar storage
	elems []*big.Int // array storage; nil for scalars
	array bool
}

// NewScalar returns a zero-initialized scalar.
func NewScalar(name string, typ *types.Basic, pos syntax.Pos) *Variable {
	return &Variable{Name: name, Type: typ, Pos: pos, val: Zero(typ)}
}

// NewArray returns a zero-initialized array of n elements. Arrays hold
// integers only.
func NewArray(name string, typ *types.Basic, n int, pos syntax.Pos) *Variable {
	elems := make([]*big.Int, n)
	for i := range elems {
		elems[i] = new(big.Int)
	}
	return &Variable{Name: name, Type: typ, Pos: pos, elems: elems, array: true}
}

func (v *Variable) IsArray() bool { return v.array }
func (v *Variable) Len() int      { return len(v.elems) }

// Value returns the scalar value of v.
func (v *Variable) Value() Value { return v.val }

// Elem returns element i of an array. The index must be in range.
func (v *Variable) Elem(i int) Value {
	return Int(v.Type, v.elems[i])
}

// Copy returns a deep copy of v under a new name and position, as used to
// pass an array argument.
func (v *Variable) Copy(name string, pos syntax.Pos) *Variable {
	c := &Variable{Name: name, Type: v.Type, Pos: pos, val: v.val, array: v.array}
	if v.array {
		c.elems = make([]*big.Int, len(v.elems))
		for i, e := range v.elems {
			c.elems[i] = new(big.Int).Set(e)
		}
	}
	return c
}

// Index returns a bounded reference to element i, or a bounds error.
func (v *Variable) Index(i *big.Int, pos syntax.Pos) (*Elem, error) {
	if !i.IsInt64() || i.Sign() < 0 || i.Int64() >= int64(len(v.elems)) {
		return nil, Errorf(BoundsError, pos, v.Name,
			"array index %s is out of range [0;%d) for", i, len(v.elems))
	}
	return &Elem{arr: v, index: int(i.Int64())}, nil
}

// Format renders the whole variable the way print shows it: the scalar
// value, or {a, b, c} for arrays.
func (v *Variable) Format() string {
	if !v.array {
		return v.val.String()
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range v.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Describe renders the variable with its type, as dprint shows it.
func (v *Variable) Describe() string {
	if v.array {
		return fmt.Sprintf("%s %s[%d] = %s", v.Type, v.Name, len(v.elems), v.Format())
	}
	return fmt.Sprintf("%s %s = %s", v.Type, v.Name, v.Format())
}

// Target is an assignable location: a scalar variable or an array
// element.
type Target interface {
	Name() string
	Type() *types.Basic
	Load() Value
	set(Value)
}

// scalar adapts a scalar *Variable to Target.
type scalar struct{ v *Variable }

// ScalarTarget returns v as an assignment target.
func ScalarTarget(v *Variable) Target { return scalar{v} }

func (s scalar) Name() string       { return s.v.Name }
func (s scalar) Type() *types.Basic { return s.v.Type }
func (s scalar) Load() Value        { return s.v.val }
func (s scalar) set(x Value)        { s.v.val = x }

// Elem is a bounded reference to one array element. It never owns the
// storage and is only valid while the array's frame is live.
type Elem struct {
	arr   *Variable
	index int
}

func (e *Elem) Name() string       { return fmt.Sprintf("%s[%d]", e.arr.Name, e.index) }
func (e *Elem) Type() *types.Basic { return e.arr.Type }
func (e *Elem) Load() Value        { return e.arr.Elem(e.index) }
func (e *Elem) set(x Value)        { e.arr.elems[e.index] = x.num }
