package interp

import (
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// cond evaluates a loop or if condition. Both sides must be integers; the
// comparison is on values, so operands of different widths compare
// naturally.
func (e *evaluator) cond(c *syntax.Cond, depth int) (bool, error) {
	switch c.Op {
	case syntax.True:
		return true, nil
	case syntax.False, syntax.EOF:
		return false, nil
	}

	x, err := e.expr(c.X, depth)
	if err != nil {
		return false, err
	}
	y, err := e.expr(c.Y, depth)
	if err != nil {
		return false, err
	}
	if !x.IsInteger() || !y.IsInteger() {
		return false, runtime.Errorf(runtime.TypeError, c.Pos(), syntax.String(c.X)+" "+c.Op.String()+" "+syntax.String(c.Y),
			"cannot compare %s and %s in", x.Type(), y.Type())
	}

	r := x.BigInt().Cmp(y.BigInt())
	switch c.Op {
	case syntax.Lss:
		return r < 0, nil
	case syntax.Gtr:
		return r > 0, nil
	case syntax.Leq:
		return r <= 0, nil
	case syntax.Geq:
		return r >= 0, nil
	case syntax.Eql:
		return r == 0, nil
	case syntax.Neq:
		return r != 0, nil
	}
	return false, runtime.Errorf(runtime.SyntaxError, c.Pos(), c.Op.String(), "expected comparison operator, got")
}
