package runtime

import (
	"fmt"
	"math/big"

	"github.com/you-not-fish/cbr/internal/syntax"
	"github.com/you-not-fish/cbr/internal/types"
)

// Assign stores x into t after checking that the types are compatible and
// that an integer fits the target's range. On failure t is unchanged.
func Assign(t Target, x Value, pos syntax.Pos) error {
	typ := t.Type()
	if err := Check(typ, x, pos, t.Name()); err != nil {
		return err
	}
	if typ.IsString() {
		t.set(x)
		return nil
	}
	t.set(Int(typ, new(big.Int).Set(x.num)))
	return nil
}

// Check reports whether x may be stored in a location of type typ named
// name: a type error for incompatible types, a range error for integers
// outside typ's range.
func Check(typ *types.Basic, x Value, pos syntax.Pos, name string) error {
	if !types.AssignableTo(x.Type(), typ) {
		return Errorf(TypeError, pos, name,
			"type mismatch: cannot assign %s to %s", x.Type(), typ)
	}
	if !typ.IsInteger() {
		return nil
	}
	if fit := types.Representable(typ, x.num); fit != types.Fits {
		e := Errorf(RangeError, pos, name,
			"Error on assignation, %s %s, tried assigning %s to", typ, fit, x.num)
		min, max, _ := types.Range(typ)
		e.Hint = fmt.Sprintf("Type %s value range is [%s;%s]", typ, min, max)
		return e
	}
	return nil
}
