package interp

import (
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
	"github.com/you-not-fish/cbr/internal/types"
)

// call evaluates a call expression. std. calls go to the standard
// library; other names resolve through the function table.
func (e *evaluator) call(x *syntax.CallExpr, depth int) (runtime.Value, error) {
	if x.Std {
		if err := e.in.cancelled(x.Pos()); err != nil {
			return runtime.Void, err
		}
		return e.in.std.Call(env{e: e, depth: depth}, x)
	}

	name := x.Fun.Value
	f := e.in.funcs.Lookup(name)
	if f == nil {
		return runtime.Void, runtime.Errorf(runtime.ResolutionError, x.Fun.Pos(), name, "unknown function")
	}
	if len(x.Args) != len(f.Params) {
		return runtime.Void, runtime.Errorf(runtime.SyntaxError, x.Pos(), name,
			"wrong number of arguments: want %d, got %d, in call to", len(f.Params), len(x.Args))
	}

	callee := NewStore(e.in.maxDepth, e.in.log)
	for i, p := range f.Params {
		v, err := e.bind(p, x.Args[i], depth)
		if err != nil {
			return runtime.Void, err
		}
		if err := callee.Declare(v, 1); err != nil {
			return runtime.Void, err
		}
	}
	return e.in.invoke(f, callee, x.Pos())
}

// bind evaluates one argument into a fresh parameter variable. Arrays are
// passed by deep copy and must match the element type exactly; scalars
// are converted with the assignment checks.
func (e *evaluator) bind(p *syntax.Field, arg syntax.Expr, depth int) (*runtime.Variable, error) {
	if p.Array {
		n, ok := arg.(*syntax.Name)
		var v *runtime.Variable
		if ok {
			v = e.store.Lookup(n.Value, depth)
		}
		if v == nil || !v.IsArray() {
			return nil, runtime.Errorf(runtime.TypeError, arg.Pos(), syntax.String(arg),
				"cannot use non-array as argument %s %s[]:", p.Type, p.Name.Value)
		}
		if !types.Identical(v.Type, p.Type) {
			return nil, runtime.Errorf(runtime.TypeError, arg.Pos(), n.Value,
				"cannot use %s array as argument %s %s[]:", v.Type, p.Type, p.Name.Value)
		}
		return v.Copy(p.Name.Value, p.Name.Pos()), nil
	}

	x, err := e.expr(arg, depth)
	if err != nil {
		return nil, err
	}
	v := runtime.NewScalar(p.Name.Value, p.Type, p.Name.Pos())
	if err := runtime.Assign(runtime.ScalarTarget(v), x, arg.Pos()); err != nil {
		return nil, err
	}
	return v, nil
}
