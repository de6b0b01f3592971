package syntax

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toTree(node))
}

// FprintYAML writes the same tree as FprintJSON in YAML form.
func FprintYAML(w io.Writer, node Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toTree(node)); err != nil {
		return err
	}
	return enc.Close()
}

type tree = map[string]interface{}

func toTree(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return tree{
			"type":  "File",
			"pos":   n.pos.String(),
			"funcs": mapSlice(n.Funcs, func(d *FuncDecl) interface{} { return toTree(d) }),
		}

	case *FuncDecl:
		m := tree{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"params": mapSlice(n.Params, func(f *Field) interface{} { return toTree(f) }),
		}
		if n.Result != nil {
			m["result"] = n.Result.String()
		}
		if body, err := n.Lower(); err != nil {
			m["error"] = err.Error()
		} else {
			m["body"] = toTree(body)
		}
		return m

	case *Field:
		return tree{
			"type":      "Param",
			"pos":       n.pos.String(),
			"name":      n.Name.Value,
			"paramtype": n.Type.String(),
			"array":     n.Array,
		}

	case *BlockStmt:
		return tree{
			"type":  "BlockStmt",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toTree(s) }),
		}

	case *DeclStmt:
		m := tree{
			"type":    "DeclStmt",
			"pos":     n.pos.String(),
			"vartype": n.Type.String(),
			"name":    n.Name.Value,
		}
		if n.Len != nil {
			m["len"] = toTree(n.Len)
		}
		if n.Value != nil {
			m["value"] = toTree(n.Value)
		}
		return m

	case *AssignStmt:
		op := "="
		if n.Op != 0 {
			op = n.Op.String() + "="
		}
		return tree{
			"type": "AssignStmt",
			"pos":  n.pos.String(),
			"op":   op,
			"lhs":  toTree(n.LHS),
			"rhs":  toTree(n.RHS),
		}

	case *ExprStmt:
		return tree{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toTree(n.X),
		}

	case *IfStmt:
		m := tree{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toTree(n.Cond),
			"then": toTree(n.Then),
		}
		if n.Else != nil {
			m["else"] = toTree(n.Else)
		}
		return m

	case *WhileStmt:
		return tree{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": toTree(n.Cond),
			"body": toTree(n.Body),
		}

	case *ForStmt:
		return tree{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"init": toTree(n.Init),
			"cond": toTree(n.Cond),
			"post": toTree(n.Post),
			"body": toTree(n.Body),
		}

	case *ReturnStmt:
		m := tree{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toTree(n.Result)
		}
		return m

	case *BranchStmt:
		return tree{
			"type":  "BranchStmt",
			"pos":   n.pos.String(),
			"token": n.Tok.String(),
		}

	case *Cond:
		m := tree{
			"type": "Cond",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
		}
		if n.X != nil {
			m["x"] = toTree(n.X)
		}
		if n.Y != nil {
			m["y"] = toTree(n.Y)
		}
		return m

	case *Name:
		return tree{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return tree{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *Operation:
		m := tree{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toTree(n.X),
		}
		if n.Y != nil {
			m["y"] = toTree(n.Y)
		}
		return m

	case *ParenExpr:
		return tree{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toTree(n.X),
		}

	case *CallExpr:
		return tree{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  n.Fun.Value,
			"std":  n.Std,
			"args": mapSlice(n.Args, func(a Expr) interface{} { return toTree(a) }),
		}

	case *IndexExpr:
		return tree{
			"type":  "IndexExpr",
			"pos":   n.pos.String(),
			"x":     n.X.Value,
			"index": toTree(n.Index),
		}

	case *SelectorExpr:
		return tree{
			"type": "SelectorExpr",
			"pos":  n.pos.String(),
			"x":    n.X.Value,
			"sel":  n.Sel.Value,
		}

	default:
		return tree{
			"type": "Unknown",
		}
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
