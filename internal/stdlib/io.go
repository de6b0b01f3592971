package stdlib

import (
	"io"
	"math/big"
	"strings"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// stdPrint writes each argument with no separator. A bare array name prints
// the whole array as {a, b, c}.
func stdPrint(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	var b strings.Builder
	for _, arg := range call.Args {
		if n, ok := arg.(*syntax.Name); ok {
			if v := env.Lookup(n.Value); v != nil && v.IsArray() {
				b.WriteString(v.Format())
				continue
			}
		}
		x, err := env.Eval(arg)
		if err != nil {
			return runtime.Void, err
		}
		if x.IsVoid() {
			return runtime.Void, runtime.Errorf(runtime.TypeError, arg.Pos(), syntax.String(arg),
				"void value used as argument")
		}
		b.WriteString(x.String())
	}
	if _, err := io.WriteString(env.Stdout(), b.String()); err != nil {
		return runtime.Void, writeErr(call, err)
	}
	return runtime.Void, nil
}

// stdDprint writes "<type> <name> = <value>" for each variable argument.
func stdDprint(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	var b strings.Builder
	for _, arg := range call.Args {
		v, err := variable(env, call, arg)
		if err != nil {
			return runtime.Void, err
		}
		b.WriteString(v.Describe())
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(env.Stdout(), b.String()); err != nil {
		return runtime.Void, writeErr(call, err)
	}
	return runtime.Void, nil
}

// stdReadTo reads one line and stores successive integers into scalar
// variables.
func stdReadTo(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	targets := make([]runtime.Target, len(call.Args))
	for i, arg := range call.Args {
		v, err := variable(env, call, arg)
		if err != nil {
			return runtime.Void, err
		}
		if v.IsArray() {
			return runtime.Void, runtime.Errorf(runtime.TypeError, arg.Pos(), v.Name,
				"std.readTo cannot read into array, use std.readlnTo with an element of")
		}
		targets[i] = runtime.ScalarTarget(v)
	}
	return read(env, call, targets)
}

// stdReadlnTo is stdReadTo whose targets may also be array elements.
func stdReadlnTo(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	targets := make([]runtime.Target, len(call.Args))
	for i, arg := range call.Args {
		switch arg.(type) {
		case *syntax.Name, *syntax.IndexExpr:
		default:
			return runtime.Void, runtime.Errorf(runtime.SyntaxError, arg.Pos(), syntax.String(arg),
				"std.readlnTo expects variables or array elements, got")
		}
		t, err := env.Target(arg)
		if err != nil {
			return runtime.Void, err
		}
		targets[i] = t
	}
	return read(env, call, targets)
}

func read(env Env, call *syntax.CallExpr, targets []runtime.Target) (runtime.Value, error) {
	line, err := env.Stdin().ReadString('\n')
	if err != nil && err != io.EOF {
		e := runtime.Errorf(runtime.RuntimeError, call.Pos(), "std."+call.Fun.Value, "read failed: %v, in", err)
		e.Err = err
		return runtime.Void, e
	}
	// Every value is checked before any target is written.
	vals := scanInts(line, len(targets))
	for i, n := range vals {
		if err := runtime.Check(targets[i].Type(), runtime.Untyped(n), call.Args[i].Pos(), targets[i].Name()); err != nil {
			return runtime.Void, err
		}
	}
	for i, n := range vals {
		if err := runtime.Assign(targets[i], runtime.Untyped(n), call.Args[i].Pos()); err != nil {
			return runtime.Void, err
		}
	}
	return runtime.Void, nil
}

// scanInts parses up to n leading base-10 integers from line. Like strtol,
// each parse skips leading white space and accepts an optional sign; when
// no digits follow, the value is 0 and the input is not consumed.
func scanInts(line string, n int) []*big.Int {
	out := make([]*big.Int, n)
	rest := line
	for i := range out {
		rest = strings.TrimLeft(rest, " \t\r\n\v\f")
		j := 0
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}
		k := j
		for k < len(rest) && '0' <= rest[k] && rest[k] <= '9' {
			k++
		}
		v := new(big.Int)
		if k > j {
			v.SetString(rest[:k], 10)
			rest = rest[k:]
		}
		out[i] = v
	}
	return out
}

// variable resolves an argument that must name a variable.
func variable(env Env, call *syntax.CallExpr, arg syntax.Expr) (*runtime.Variable, error) {
	n, ok := arg.(*syntax.Name)
	if !ok {
		return nil, runtime.Errorf(runtime.SyntaxError, arg.Pos(), syntax.String(arg),
			"std.%s expects variable names, got", call.Fun.Value)
	}
	v := env.Lookup(n.Value)
	if v == nil {
		return nil, runtime.Errorf(runtime.ResolutionError, n.Pos(), n.Value, "unknown variable")
	}
	return v, nil
}
