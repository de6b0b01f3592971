// Package interp executes cbr programs by walking the lowered function
// bodies.
//
// Each function body is lowered on its first call and cached on the
// declaration. Every activation owns a Store of scope frames; a frame is
// released whenever control leaves its block.
package interp

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/stdlib"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// Default limits.
const (
	DefaultMaxDepth     = 256
	DefaultMaxCallDepth = 4096
)

// EntryName is the name of the function a program starts in.
const EntryName = "main"

// Config configures an Interpreter. The zero value is usable.
type Config struct {
	Stdout io.Writer
	Stdin  io.Reader
	Logger *slog.Logger

	MaxDepth     int // deepest scope frame per function
	MaxCallDepth int // deepest call nesting

	Std *stdlib.Library // std. functions; a default library if nil
}

// Interpreter runs one program.
type Interpreter struct {
	funcs *Table
	entry *Function
	std   *stdlib.Library

	out io.Writer
	in  *bufio.Reader
	log *slog.Logger

	maxDepth     int
	maxCallDepth int

	ctx   context.Context
	calls int
}

// New registers the functions of file and locates the entry point.
func New(file *syntax.File, conf *Config) (*Interpreter, error) {
	if conf == nil {
		conf = new(Config)
	}
	in := &Interpreter{
		std:          conf.Std,
		out:          conf.Stdout,
		log:          conf.Logger,
		maxDepth:     conf.MaxDepth,
		maxCallDepth: conf.MaxCallDepth,
	}
	if in.out == nil {
		in.out = os.Stdout
	}
	stdin := conf.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	in.in = bufio.NewReader(stdin)
	if in.log == nil {
		in.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.std == nil {
		in.std = stdlib.New(stdlib.Config{Logger: in.log})
	}
	if in.maxDepth <= 0 {
		in.maxDepth = DefaultMaxDepth
	}
	if in.maxCallDepth <= 0 {
		in.maxCallDepth = DefaultMaxCallDepth
	}

	funcs, err := NewTable(file)
	if err != nil {
		return nil, err
	}
	for _, f := range funcs.Funcs() {
		in.log.Debug("register function", "name", f.Name, "params", len(f.Params), "result", f.Result, "pos", f.Decl.Pos())
	}
	entry, err := findEntry(funcs)
	if err != nil {
		return nil, err
	}
	in.funcs = funcs
	in.entry = entry
	return in, nil
}

// findEntry returns main, which must exist, take no parameters and
// declare a non-void result.
func findEntry(funcs *Table) (*Function, error) {
	f := funcs.Lookup(EntryName)
	if f == nil {
		return nil, runtime.Errorf(runtime.EntryError, syntax.Pos{}, "fn "+EntryName, "could not find entry point")
	}
	if f.IsVoid() {
		return nil, runtime.Errorf(runtime.EntryError, f.Decl.Name.Pos(), EntryName,
			"entry point must declare a non-void result type:")
	}
	if len(f.Params) != 0 {
		return nil, runtime.Errorf(runtime.EntryError, f.Decl.Name.Pos(), EntryName,
			"entry point must not take parameters:")
	}
	return f, nil
}

// Funcs returns the function table.
func (in *Interpreter) Funcs() *Table { return in.funcs }

// Run executes main and returns its result. Cancelling ctx stops the
// program at the next loop iteration, call or sleep.
func (in *Interpreter) Run(ctx context.Context) (runtime.Value, error) {
	in.ctx = ctx
	in.calls = 0
	defer func() { in.ctx = nil }()

	in.log.Debug("run", "entry", in.entry.Name)
	return in.invoke(in.entry, NewStore(in.maxDepth, in.log), in.entry.Decl.Pos())
}

// invoke runs f with its parameters already bound at depth 1 of store.
func (in *Interpreter) invoke(f *Function, store *Store, pos syntax.Pos) (runtime.Value, error) {
	if err := in.cancelled(pos); err != nil {
		return runtime.Void, err
	}
	if in.calls >= in.maxCallDepth {
		return runtime.Void, runtime.Errorf(runtime.RuntimeError, pos, f.Name,
			"call depth limit %d exceeded in call to", in.maxCallDepth)
	}
	in.calls++
	defer func() { in.calls-- }()

	body, err := f.Body()
	if err != nil {
		return runtime.Void, err
	}
	in.log.Debug("call", "func", f.Name, "depth", in.calls)

	e := &evaluator{in: in, fn: f, store: store}
	fl, v, err := e.block(body, 1)
	if err != nil {
		return runtime.Void, err
	}
	if fl != flowReturn {
		// Falling off the end yields the zero value of the result type.
		if f.IsVoid() {
			return runtime.Void, nil
		}
		return runtime.Zero(f.Result).Untyped(), nil
	}
	return v, nil
}

func (in *Interpreter) cancelled(pos syntax.Pos) error {
	if in.ctx == nil {
		return nil
	}
	if err := in.ctx.Err(); err != nil {
		e := runtime.Errorf(runtime.RuntimeError, pos, "", "execution cancelled: %v", err)
		e.Err = err
		return e
	}
	return nil
}

// env exposes an evaluator at a fixed depth to the standard library.
type env struct {
	e     *evaluator
	depth int
}

func (v env) Context() context.Context {
	if v.e.in.ctx == nil {
		return context.Background()
	}
	return v.e.in.ctx
}

func (v env) Eval(x syntax.Expr) (runtime.Value, error) { return v.e.expr(x, v.depth) }

func (v env) Lookup(name string) *runtime.Variable { return v.e.store.Lookup(name, v.depth) }

func (v env) Target(x syntax.Expr) (runtime.Target, error) { return v.e.target(x, v.depth) }

func (v env) Stdout() io.Writer    { return v.e.in.out }
func (v env) Stdin() *bufio.Reader { return v.e.in.in }
