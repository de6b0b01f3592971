package interp

import (
	"math/big"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
	"github.com/you-not-fish/cbr/internal/types"
)

// maxArrayLen bounds the element count of a single array.
const maxArrayLen = 1 << 24

// evaluator runs the body of one function activation.
type evaluator struct {
	in    *Interpreter
	fn    *Function
	store *Store
}

// expr evaluates x in the scope visible at depth.
func (e *evaluator) expr(x syntax.Expr, depth int) (runtime.Value, error) {
	switch x := x.(type) {
	case *syntax.BasicLit:
		if x.Kind == syntax.StringLit {
			return runtime.Str(x.Value), nil
		}
		n, ok := new(big.Int).SetString(x.Value, 10)
		if !ok {
			return runtime.Void, runtime.Errorf(runtime.SyntaxError, x.Pos(), x.Value, "malformed integer literal")
		}
		return runtime.Untyped(n), nil

	case *syntax.Name:
		v := e.store.Lookup(x.Value, depth)
		if v == nil {
			if e.in.funcs.Lookup(x.Value) != nil {
				return runtime.Void, runtime.Errorf(runtime.SyntaxError, x.Pos(), x.Value,
					"expected '(' after function name")
			}
			return runtime.Void, unknownVar(x)
		}
		if v.IsArray() {
			return runtime.Void, runtime.Errorf(runtime.TypeError, x.Pos(), x.Value,
				"expected .length or [index] on array")
		}
		return v.Value(), nil

	case *syntax.ParenExpr:
		return e.expr(x.X, depth)

	case *syntax.Operation:
		a, err := e.expr(x.X, depth)
		if err != nil {
			return runtime.Void, err
		}
		if x.Y == nil {
			return negate(a, x)
		}
		b, err := e.expr(x.Y, depth)
		if err != nil {
			return runtime.Void, err
		}
		return binary(x.Op, a, b, x.Pos(), syntax.String(x))

	case *syntax.CallExpr:
		return e.call(x, depth)

	case *syntax.IndexExpr:
		el, err := e.elem(x, depth)
		if err != nil {
			return runtime.Void, err
		}
		return el.Load(), nil

	case *syntax.SelectorExpr:
		arr, err := e.array(x.X, depth)
		if err != nil {
			return runtime.Void, err
		}
		return runtime.UntypedInt64(int64(arr.Len())), nil
	}
	return runtime.Void, runtime.Errorf(runtime.SyntaxError, x.Pos(), syntax.String(x), "unexpected expression")
}

// binary applies an arithmetic operator. The result is untyped; its range
// is checked when it is assigned.
func binary(op syntax.Token, x, y runtime.Value, pos syntax.Pos, near string) (runtime.Value, error) {
	if types.Unify(x.Type(), y.Type()) == nil {
		bad := x
		if x.IsInteger() {
			bad = y
		}
		return runtime.Void, runtime.Errorf(runtime.TypeError, pos, near,
			"operator %s not defined on %s in", op, bad.Type())
	}

	a, b := x.BigInt(), y.BigInt()
	z := new(big.Int)
	switch op {
	case syntax.Add:
		z.Add(a, b)
	case syntax.Sub:
		z.Sub(a, b)
	case syntax.Mul:
		z.Mul(a, b)
	case syntax.Div, syntax.Rem:
		if b.Sign() == 0 {
			return runtime.Void, runtime.Errorf(runtime.RuntimeError, pos, near, "integer divide by zero in")
		}
		if op == syntax.Div {
			z.Quo(a, b)
		} else {
			z.Rem(a, b)
		}
	default:
		return runtime.Void, runtime.Errorf(runtime.SyntaxError, pos, near, "unknown operator %s in", op)
	}
	return runtime.Untyped(z), nil
}

func negate(x runtime.Value, op *syntax.Operation) (runtime.Value, error) {
	if !x.IsInteger() {
		return runtime.Void, runtime.Errorf(runtime.TypeError, op.Pos(), syntax.String(op),
			"operator - not defined on %s in", x.Type())
	}
	return runtime.Untyped(new(big.Int).Neg(x.BigInt())), nil
}

// array resolves n to an array variable.
func (e *evaluator) array(n *syntax.Name, depth int) (*runtime.Variable, error) {
	v := e.store.Lookup(n.Value, depth)
	if v == nil {
		return nil, unknownVar(n)
	}
	if !v.IsArray() {
		return nil, runtime.Errorf(runtime.TypeError, n.Pos(), n.Value, "cannot index non-array variable")
	}
	return v, nil
}

// elem resolves a[i] to a bounded element reference.
func (e *evaluator) elem(x *syntax.IndexExpr, depth int) (*runtime.Elem, error) {
	arr, err := e.array(x.X, depth)
	if err != nil {
		return nil, err
	}
	i, err := e.expr(x.Index, depth)
	if err != nil {
		return nil, err
	}
	if !i.IsInteger() {
		return nil, runtime.Errorf(runtime.TypeError, x.Index.Pos(), syntax.String(x.Index),
			"array index must be an integer, got %s:", i.Type())
	}
	return arr.Index(i.BigInt(), x.Pos())
}

// target resolves the left side of an assignment.
func (e *evaluator) target(x syntax.Expr, depth int) (runtime.Target, error) {
	switch x := x.(type) {
	case *syntax.Name:
		v := e.store.Lookup(x.Value, depth)
		if v == nil {
			return nil, unknownVar(x)
		}
		if v.IsArray() {
			return nil, runtime.Errorf(runtime.TypeError, x.Pos(), x.Value, "cannot assign to whole array")
		}
		return runtime.ScalarTarget(v), nil
	case *syntax.IndexExpr:
		el, err := e.elem(x, depth)
		if err != nil {
			return nil, err
		}
		return el, nil
	}
	return nil, runtime.Errorf(runtime.SyntaxError, x.Pos(), syntax.String(x), "cannot assign to")
}

func unknownVar(n *syntax.Name) error {
	return runtime.Errorf(runtime.ResolutionError, n.Pos(), n.Value, "unknown variable")
}
