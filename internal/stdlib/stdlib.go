// Package stdlib implements the std. functions callable from cbr
// programs.
package stdlib

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// Env is the view of the running interpreter a library function gets:
// evaluation and name resolution in the caller's scope, plus the
// program's standard streams.
type Env interface {
	Context() context.Context
	Eval(x syntax.Expr) (runtime.Value, error)
	Lookup(name string) *runtime.Variable
	Target(x syntax.Expr) (runtime.Target, error)
	Stdout() io.Writer
	Stdin() *bufio.Reader
}

// Func implements one std. function. Arguments are passed unevaluated so
// that functions such as dprint and readTo can resolve variables.
type Func func(l *Library, env Env, call *syntax.CallExpr) (runtime.Value, error)

// Config configures a Library.
type Config struct {
	SleepUnit time.Duration // duration of sleep(1); default one second
	Seed      int64         // random seed; 0 seeds from the clock
	Logger    *slog.Logger
}

// Library is a registry of std. functions.
type Library struct {
	funcs map[string]Func
	unit  time.Duration
	rng   *rand.Rand
	log   *slog.Logger
}

// New returns a Library holding the builtin functions.
func New(conf Config) *Library {
	l := &Library{
		funcs: make(map[string]Func),
		unit:  conf.SleepUnit,
		log:   conf.Logger,
	}
	if l.unit <= 0 {
		l.unit = time.Second
	}
	if l.log == nil {
		l.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	l.rng = rand.New(rand.NewSource(seed))

	for name, fn := range builtins {
		l.funcs[name] = fn
	}
	return l
}

var builtins = map[string]Func{
	"print":    stdPrint,
	"dprint":   stdDprint,
	"readTo":   stdReadTo,
	"readlnTo": stdReadlnTo,
	"sleep":    stdSleep,
	"random":   stdRandom,
}

// Register adds a function under name. Names are unique.
func (l *Library) Register(name string, fn Func) error {
	if _, dup := l.funcs[name]; dup {
		return fmt.Errorf("std.%s already registered", name)
	}
	l.funcs[name] = fn
	return nil
}

// Has reports whether name is a registered function.
func (l *Library) Has(name string) bool {
	_, ok := l.funcs[name]
	return ok
}

// Names returns the registered function names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches a std. call.
func (l *Library) Call(env Env, call *syntax.CallExpr) (runtime.Value, error) {
	fn, ok := l.funcs[call.Fun.Value]
	if !ok {
		return runtime.Void, runtime.Errorf(runtime.ResolutionError, call.Fun.Pos(),
			call.Fun.Value, "unknown standard function")
	}
	l.log.Debug("std call", "name", call.Fun.Value, "args", len(call.Args), "pos", call.Pos())
	return fn(l, env, call)
}

func wantArgs(call *syntax.CallExpr, n int) error {
	if len(call.Args) != n {
		return runtime.Errorf(runtime.SyntaxError, call.Pos(), "std."+call.Fun.Value,
			"wrong number of arguments: want %d, got %d, in call to", n, len(call.Args))
	}
	return nil
}

func writeErr(call *syntax.CallExpr, err error) error {
	e := runtime.Errorf(runtime.RuntimeError, call.Pos(), "std."+call.Fun.Value, "write failed: %v, in", err)
	e.Err = err
	return e
}
