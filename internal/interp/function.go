package interp

import (
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
	"github.com/you-not-fish/cbr/internal/types"
)

// Function is a registered function declaration.
type Function struct {
	Name   string
	Decl   *syntax.FuncDecl
	Params []*syntax.Field
	Result *types.Basic // void when the declaration has no result
}

// Body returns the lowered function body.
func (f *Function) Body() (*syntax.BlockStmt, error) {
	return f.Decl.Lower()
}

// IsVoid reports whether f returns no value.
func (f *Function) IsVoid() bool { return f.Result.IsVoid() }

// Table is the function table of a program, keyed by name.
type Table struct {
	funcs map[string]*Function
	order []*Function
}

// NewTable registers every function of file. Defining a name twice is a
// resolution error.
func NewTable(file *syntax.File) (*Table, error) {
	t := &Table{funcs: make(map[string]*Function, len(file.Funcs))}
	for _, d := range file.Funcs {
		name := d.Name.Value
		if prev, dup := t.funcs[name]; dup {
			e := runtime.Errorf(runtime.ResolutionError, d.Name.Pos(), name, "duplicate definition of function")
			e.Hint = "previous definition at " + prev.Decl.Pos().String()
			return nil, e
		}
		result := d.Result
		if result == nil {
			result = types.Typ[types.Void]
		}
		f := &Function{Name: name, Decl: d, Params: d.Params, Result: result}
		t.funcs[name] = f
		t.order = append(t.order, f)
	}
	return t, nil
}

// Lookup returns the function called name, or nil.
func (t *Table) Lookup(name string) *Function {
	return t.funcs[name]
}

// Funcs returns the functions in source order.
func (t *Table) Funcs() []*Function {
	return t.order
}

// Len returns the number of registered functions.
func (t *Table) Len() int { return len(t.order) }
