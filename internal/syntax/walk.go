package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order. Function declarations are
// walked through their lowered bodies; a body that fails to lower is
// skipped.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, d := range n.Funcs {
			Walk(d, v)
		}

	case *FuncDecl:
		Walk(n.Name, v)
		for _, f := range n.Params {
			Walk(f, v)
		}
		if body, err := n.Lower(); err == nil {
			Walk(body, v)
		}

	case *Field:
		Walk(n.Name, v)

	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *DeclStmt:
		Walk(n.Name, v)
		if n.Len != nil {
			Walk(n.Len, v)
		}
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *AssignStmt:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.Init, v)
		Walk(n.Cond, v)
		Walk(n.Post, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *Cond:
		if n.X != nil {
			Walk(n.X, v)
		}
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *SelectorExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

		// Leaf nodes: Name, BasicLit, BranchStmt
	}
}

// Inspect traverses an AST and calls f for each node.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
