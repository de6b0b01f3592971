package interp

import (
	"github.com/you-not-fish/cbr/internal/runtime"
	"github.com/you-not-fish/cbr/internal/syntax"
)

// flow says how control leaves a statement.
type flow int

const (
	flowNext flow = iota
	flowReturn
	flowBreak
	flowContinue
)

// block runs b with its own frame at depth. The frame, and any deeper
// one, is released on every exit path.
func (e *evaluator) block(b *syntax.BlockStmt, depth int) (flow, runtime.Value, error) {
	if depth > e.in.maxDepth {
		return flowNext, runtime.Void, depthError(b.Pos(), e.in.maxDepth)
	}
	defer e.store.Release(depth)

	for _, s := range b.Stmts {
		fl, v, err := e.stmt(s, depth)
		if err != nil || fl != flowNext {
			return fl, v, err
		}
	}
	return flowNext, runtime.Void, nil
}

func (e *evaluator) stmt(s syntax.Stmt, depth int) (flow, runtime.Value, error) {
	switch s := s.(type) {
	case *syntax.DeclStmt:
		return flowNext, runtime.Void, e.decl(s, depth)

	case *syntax.AssignStmt:
		return flowNext, runtime.Void, e.assign(s, depth)

	case *syntax.ExprStmt:
		_, err := e.call(s.X, depth)
		return flowNext, runtime.Void, err

	case *syntax.BlockStmt:
		return e.block(s, depth+1)

	case *syntax.IfStmt:
		ok, err := e.cond(s.Cond, depth)
		if err != nil {
			return flowNext, runtime.Void, err
		}
		if ok {
			return e.block(s.Then, depth+1)
		}
		if s.Else != nil {
			return e.block(s.Else, depth+1)
		}
		return flowNext, runtime.Void, nil

	case *syntax.WhileStmt:
		return e.whileStmt(s, depth)

	case *syntax.ForStmt:
		return e.forStmt(s, depth)

	case *syntax.ReturnStmt:
		v, err := e.returnStmt(s, depth)
		return flowReturn, v, err

	case *syntax.BranchStmt:
		if s.Tok == syntax.Break {
			return flowBreak, runtime.Void, nil
		}
		return flowContinue, runtime.Void, nil
	}
	return flowNext, runtime.Void, runtime.Errorf(runtime.SyntaxError, s.Pos(), "", "unexpected statement")
}

// decl declares a variable at depth. The initializer is evaluated before
// the name is in scope.
func (e *evaluator) decl(d *syntax.DeclStmt, depth int) error {
	name := d.Name.Value
	if d.Len != nil {
		if !d.Type.IsInteger() {
			return runtime.Errorf(runtime.TypeError, d.Pos(), name, "arrays of %s are not supported:", d.Type)
		}
		n, err := e.expr(d.Len, depth)
		if err != nil {
			return err
		}
		if !n.IsInteger() {
			return runtime.Errorf(runtime.TypeError, d.Len.Pos(), syntax.String(d.Len),
				"array length must be an integer, got %s:", n.Type())
		}
		l := n.BigInt()
		if l.Sign() < 0 || !l.IsInt64() || l.Int64() > maxArrayLen {
			return runtime.Errorf(runtime.RuntimeError, d.Len.Pos(), name, "invalid array length %s for", l)
		}
		return e.store.Declare(runtime.NewArray(name, d.Type, int(l.Int64()), d.Name.Pos()), depth)
	}

	v := runtime.NewScalar(name, d.Type, d.Name.Pos())
	if d.Value != nil {
		x, err := e.expr(d.Value, depth)
		if err != nil {
			return err
		}
		if err := runtime.Assign(runtime.ScalarTarget(v), x, d.Name.Pos()); err != nil {
			return err
		}
	}
	return e.store.Declare(v, depth)
}

// assign runs a plain or compound assignment. A compound operator reads
// the target, applies the operator and stores the result with the usual
// checks.
func (e *evaluator) assign(a *syntax.AssignStmt, depth int) error {
	t, err := e.target(a.LHS, depth)
	if err != nil {
		return err
	}
	x, err := e.expr(a.RHS, depth)
	if err != nil {
		return err
	}
	if a.Op != 0 {
		near := syntax.String(a.LHS) + " " + a.Op.String() + "= " + syntax.String(a.RHS)
		if x, err = binary(a.Op, t.Load(), x, a.Pos(), near); err != nil {
			return err
		}
	}
	return runtime.Assign(t, x, a.LHS.Pos())
}

func (e *evaluator) whileStmt(s *syntax.WhileStmt, depth int) (flow, runtime.Value, error) {
	for {
		if err := e.in.cancelled(s.Pos()); err != nil {
			return flowNext, runtime.Void, err
		}
		ok, err := e.cond(s.Cond, depth)
		if err != nil || !ok {
			return flowNext, runtime.Void, err
		}
		fl, v, err := e.block(s.Body, depth+1)
		if err != nil {
			return flowNext, runtime.Void, err
		}
		switch fl {
		case flowReturn:
			return fl, v, nil
		case flowBreak:
			return flowNext, runtime.Void, nil
		}
	}
}

// forStmt runs the init and post statements at depth+1 and the body at
// depth+2, so the induction variable survives across iterations.
func (e *evaluator) forStmt(s *syntax.ForStmt, depth int) (flow, runtime.Value, error) {
	if depth+1 > e.in.maxDepth {
		return flowNext, runtime.Void, depthError(s.Pos(), e.in.maxDepth)
	}
	defer e.store.Release(depth + 1)

	if err := e.decl(s.Init, depth+1); err != nil {
		return flowNext, runtime.Void, err
	}
	for {
		if err := e.in.cancelled(s.Pos()); err != nil {
			return flowNext, runtime.Void, err
		}
		ok, err := e.cond(s.Cond, depth+1)
		if err != nil || !ok {
			return flowNext, runtime.Void, err
		}
		fl, v, err := e.block(s.Body, depth+2)
		if err != nil {
			return flowNext, runtime.Void, err
		}
		switch fl {
		case flowReturn:
			return fl, v, nil
		case flowBreak:
			return flowNext, runtime.Void, nil
		}
		if err := e.assign(s.Post, depth+1); err != nil {
			return flowNext, runtime.Void, err
		}
	}
}

// returnStmt evaluates the result of a return statement and checks it
// against the declared result type. The value leaves the function untyped.
func (e *evaluator) returnStmt(s *syntax.ReturnStmt, depth int) (runtime.Value, error) {
	f := e.fn
	if s.Result == nil {
		if !f.IsVoid() {
			return runtime.Void, runtime.Errorf(runtime.TypeError, s.Pos(), f.Name,
				"missing return value in function")
		}
		return runtime.Void, nil
	}
	if f.IsVoid() {
		return runtime.Void, runtime.Errorf(runtime.TypeError, s.Result.Pos(), syntax.String(s.Result),
			"too many return values in %s, got", f.Name)
	}
	x, err := e.expr(s.Result, depth)
	if err != nil {
		return runtime.Void, err
	}
	if err := runtime.Check(f.Result, x, s.Result.Pos(), f.Name); err != nil {
		return runtime.Void, err
	}
	return x.Untyped(), nil
}
