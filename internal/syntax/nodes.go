package syntax

import "github.com/you-not-fish/cbr/internal/types"

// ----------------------------------------------------------------------------
// Interfaces
//
// Nodes are produced in two passes. Registration yields a File of FuncDecls
// whose bodies are still token spans; lowering a body yields statements and
// expressions.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Files and functions

// File is a registered source file: every function declaration in order.
type File struct {
	node
	Funcs []*FuncDecl
}

// FuncDecl is a registered function. Body is the token span from the
// opening to the closing brace, inclusive; it is lowered into Block by
// Lower on first use.
type FuncDecl struct {
	node
	Name   *Name
	Params []*Field
	Result *types.Basic // nil when the declaration has no ": type"
	Body   []Item

	block *BlockStmt
	err   error
}

// Field is a function parameter: TYPE NAME or TYPE NAME[].
type Field struct {
	node
	Name  *Name
	Type  *types.Basic
	Array bool
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents an integer or string literal.
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // IntLit, StringLit
}

// Operation represents a unary or binary arithmetic operation.
// For unary negation, Y is nil.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// CallExpr represents NAME(ARGS) or, when Std is set, std.NAME(ARGS).
type CallExpr struct {
	expr
	Fun  *Name
	Std  bool
	Args []Expr
}

// IndexExpr represents an array element: X[Index]
type IndexExpr struct {
	expr
	X     *Name
	Index Expr
}

// SelectorExpr represents X.Sel. The only selector is length.
type SelectorExpr struct {
	expr
	X   *Name
	Sel *Name
}

// Cond is a loop or branch condition: X Op Y. Op is a comparison, or
// True/False for a literal condition, or EOF when the condition has no
// comparison operator (which evaluates to false).
type Cond struct {
	node
	Op Token
	X  Expr
	Y  Expr
}

// ----------------------------------------------------------------------------
// Statements

// DeclStmt declares a variable: TYPE NAME ['[' Len ']'] ['=' Value] ';'
type DeclStmt struct {
	stmt
	Type  *types.Basic
	Name  *Name
	Len   Expr // array length; nil for scalars
	Value Expr // initial value; nil for zero initialization
}

// AssignStmt represents LHS = RHS or LHS op= RHS. Op is 0 for plain
// assignment.
type AssignStmt struct {
	stmt
	Op  Token
	LHS Expr // *Name or *IndexExpr
	RHS Expr
}

// ExprStmt is a call evaluated for its side effects.
type ExprStmt struct {
	stmt
	X *CallExpr
}

// BlockStmt represents { Stmts... }
type BlockStmt struct {
	stmt
	Stmts  []Stmt
	Rbrace Pos
}

// IfStmt represents if (Cond) Then [else Else].
type IfStmt struct {
	stmt
	Cond *Cond
	Then *BlockStmt
	Else *BlockStmt // nil when absent
}

// WhileStmt represents while (Cond) Body.
type WhileStmt struct {
	stmt
	Cond *Cond
	Body *BlockStmt
}

// ForStmt represents for (Init; Cond; Post) Body.
type ForStmt struct {
	stmt
	Init *DeclStmt
	Cond *Cond
	Post *AssignStmt
	Body *BlockStmt
}

// ReturnStmt represents return [Result];
type ReturnStmt struct {
	stmt
	Result Expr // nil for bare return
}

// BranchStmt represents break or continue.
type BranchStmt struct {
	stmt
	Tok Token // Break or Continue
}
