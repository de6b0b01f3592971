package interp

import (
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/stdlib"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// Check verifies a program without running it: the function table and
// entry point are valid, every body lowers, and every called function and
// std. name exists. It returns the first problem found.
func Check(file *syntax.File, std *stdlib.Library) error {
	if std == nil {
		std = stdlib.New(stdlib.Config{})
	}
	funcs, err := NewTable(file)
	if err != nil {
		return err
	}
	if _, err := findEntry(funcs); err != nil {
		return err
	}

	for _, f := range funcs.Funcs() {
		body, err := f.Body()
		if err != nil {
			return err
		}
		syntax.Inspect(body, func(n syntax.Node) bool {
			if err != nil {
				return false
			}
			call, ok := n.(*syntax.CallExpr)
			if !ok {
				return true
			}
			err = checkCall(funcs, std, call)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkCall(funcs *Table, std *stdlib.Library, call *syntax.CallExpr) error {
	name := call.Fun.Value
	if call.Std {
		if !std.Has(name) {
			return runtime.Errorf(runtime.ResolutionError, call.Fun.Pos(), name, "unknown standard function")
		}
		return nil
	}
	f := funcs.Lookup(name)
	if f == nil {
		return runtime.Errorf(runtime.ResolutionError, call.Fun.Pos(), name, "unknown function")
	}
	if len(call.Args) != len(f.Params) {
		return runtime.Errorf(runtime.SyntaxError, call.Pos(), name,
			"wrong number of arguments: want %d, got %d, in call to", len(f.Params), len(call.Args))
	}
	return nil
}
