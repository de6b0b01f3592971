package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w. Function bodies
// that have not been lowered yet are lowered first; a body that fails to
// lower is printed as its error.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints node one level deeper under a label.
func (p *printer) child(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, d := range n.Funcs {
			p.print(d)
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.pos, n.Name.Value)
		p.indent++
		for _, f := range n.Params {
			p.print(f)
		}
		if n.Result != nil {
			p.printf("Result: %s\n", n.Result)
		}
		if body, err := n.Lower(); err != nil {
			p.printf("Body: %v\n", err)
		} else {
			p.child("Body", body)
		}
		p.indent--

	case *Field:
		if n.Array {
			p.printf("Param %s %s %s[]\n", n.pos, n.Type, n.Name.Value)
		} else {
			p.printf("Param %s %s %s\n", n.pos, n.Type, n.Name.Value)
		}

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s %s %s\n", n.pos, n.Type, n.Name.Value)
		p.indent++
		if n.Len != nil {
			p.child("Len", n.Len)
		}
		if n.Value != nil {
			p.child("Value", n.Value)
		}
		p.indent--

	case *AssignStmt:
		op := "="
		if n.Op != 0 {
			op = n.Op.String() + "="
		}
		p.printf("AssignStmt %s %s\n", n.pos, op)
		p.indent++
		p.child("LHS", n.LHS)
		p.child("RHS", n.RHS)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Then", n.Then)
		if n.Else != nil {
			p.child("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.child("Cond", n.Cond)
		p.child("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.child("Init", n.Init)
		p.child("Cond", n.Cond)
		p.child("Post", n.Post)
		p.child("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *BranchStmt:
		p.printf("BranchStmt %s %s\n", n.pos, n.Tok)

	case *Cond:
		switch n.Op {
		case _EOF:
			p.printf("Cond %s (no comparison)\n", n.pos)
		case _True, _False:
			p.printf("Cond %s %s\n", n.pos, n.Op)
		default:
			p.printf("Cond %s %s\n", n.pos, n.Op)
			p.indent++
			p.child("X", n.X)
			p.child("Y", n.Y)
			p.indent--
		}

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
			break
		}
		p.printf("BinaryOp %s %s\n", n.pos, n.Op)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		if n.Std {
			p.printf("CallExpr %s std.%s\n", n.pos, n.Fun.Value)
		} else {
			p.printf("CallExpr %s %s\n", n.pos, n.Fun.Value)
		}
		if len(n.Args) > 0 {
			p.indent++
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
			p.indent--
		}

	case *IndexExpr:
		p.printf("IndexExpr %s %s\n", n.pos, n.X.Value)
		p.indent++
		p.child("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s %s.%s\n", n.pos, n.X.Value, n.Sel.Value)

	default:
		p.printf("<%T>\n", node)
	}
}

// String renders an expression back to source form. It is used in
// diagnostics to name the offending expression.
func String(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			fmt.Fprintf(b, "%q", x.Value)
		} else {
			b.WriteString(x.Value)
		}
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			writeExpr(b, x.X)
			return
		}
		writeExpr(b, x.X)
		fmt.Fprintf(b, " %s ", x.Op)
		writeExpr(b, x.Y)
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *CallExpr:
		if x.Std {
			b.WriteString("std.")
		}
		b.WriteString(x.Fun.Value)
		b.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *IndexExpr:
		b.WriteString(x.X.Value)
		b.WriteByte('[')
		writeExpr(b, x.Index)
		b.WriteByte(']')
	case *SelectorExpr:
		b.WriteString(x.X.Value)
		b.WriteByte('.')
		b.WriteString(x.Sel.Value)
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
