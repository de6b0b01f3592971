package stdlib

import (
	"math"
	"time"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// stdSleep blocks for n time units. It returns early with a runtime error if
// the run is cancelled.
func stdSleep(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	if err := wantArgs(call, 1); err != nil {
		return runtime.Void, err
	}
	arg := call.Args[0]
	x, err := env.Eval(arg)
	if err != nil {
		return runtime.Void, err
	}
	if !x.IsInteger() {
		return runtime.Void, runtime.Errorf(runtime.TypeError, arg.Pos(), syntax.String(arg),
			"std.sleep expects an integer, got %s", x.Type())
	}
	n := x.BigInt()
	if n.Sign() < 0 || !n.IsInt64() || n.Int64() > math.MaxInt64/int64(l.unit) {
		return runtime.Void, runtime.Errorf(runtime.RuntimeError, arg.Pos(), n.String(),
			"invalid sleep duration")
	}

	timer := time.NewTimer(time.Duration(n.Int64()) * l.unit)
	defer timer.Stop()
	ctx := env.Context()
	select {
	case <-timer.C:
		return runtime.Void, nil
	case <-ctx.Done():
		e := runtime.Errorf(runtime.RuntimeError, call.Pos(), "std.sleep", "interrupted: %v, in", ctx.Err())
		e.Err = ctx.Err()
		return runtime.Void, e
	}
}

// stdRandom returns a pseudo-random integer in [0, 2^32).
func stdRandom(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error) {
	if err := wantArgs(call, 0); err != nil {
		return runtime.Void, err
	}
	return runtime.UntypedInt64(int64(l.rng.Uint32())), nil
}
