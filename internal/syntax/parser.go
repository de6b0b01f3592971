package syntax

import (
	"io"

	"github.com/you-not-fish/cbr/internal/types"
)

// parser reads a slice of scanned items. The first error stops parsing:
// syntaxError records it and unwinds with a bailout panic that the entry
// points recover.
type parser struct {
	items []Item
	i     int

	// Current token info
	tok Token
	lit string
	pos Pos

	first *Error
	loops int // loop nesting depth, for break and continue
}

type bailout struct{}

func newParser(items []Item) *parser {
	p := &parser{items: items}
	p.next()
	return p
}

// ParseFile tokenizes src and registers its function declarations.
// Function bodies are left unparsed until lowered.
func ParseFile(filename string, src io.Reader) (*File, error) {
	items, err := ScanAll(filename, src)
	if err != nil {
		return nil, err
	}
	return Register(items)
}

// Register scans the token stream for function declarations. Each body is
// delimited by brace counting and kept as a token span.
func Register(items []Item) (f *File, err error) {
	p := newParser(items)
	defer p.recover(&err)

	f = &File{}
	f.pos = p.pos
	for p.tok != _EOF {
		if p.tok != _Fn {
			p.syntaxError("expected 'fn', got")
		}
		f.Funcs = append(f.Funcs, p.funcDecl())
	}
	return f, nil
}

// Lower parses the function body into statements. The result is cached,
// so repeated calls re-use the same tree.
func (d *FuncDecl) Lower() (*BlockStmt, error) {
	if d.block == nil && d.err == nil {
		d.block, d.err = parseBlock(d.Body)
	}
	return d.block, d.err
}

func parseBlock(items []Item) (b *BlockStmt, err error) {
	p := newParser(items)
	defer p.recover(&err)

	b = p.blockStmt()
	if p.tok != _EOF {
		p.syntaxError("unexpected token after function body")
	}
	return b, nil
}

func (p *parser) recover(err *error) {
	if r := recover(); r != nil {
		if _, ok := r.(bailout); !ok {
			panic(r)
		}
		*err = p.first
	}
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *parser) next() {
	if p.i < len(p.items) {
		it := p.items[p.i]
		p.i++
		p.tok, p.lit, p.pos = it.Tok, it.Lit, it.Pos
		return
	}
	// Past the end of a body span: EOF at the last position.
	p.tok, p.lit = _EOF, ""
}

// peek returns the token after the current one.
func (p *parser) peek() Token {
	if p.i < len(p.items) {
		return p.items[p.i].Tok
	}
	return _EOF
}

func (p *parser) item() Item {
	return Item{Tok: p.tok, Lit: p.lit, Pos: p.pos}
}

func (p *parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes tok or fails with "expected 'tok', got 'current'".
func (p *parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected '" + tok.String() + "', got")
	}
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError fails at the current token, quoting its text.
func (p *parser) syntaxError(msg string) {
	p.errorAt(p.pos, msg, p.item().Text())
}

func (p *parser) errorAt(pos Pos, msg, near string) {
	p.first = &Error{Kind: SyntaxError, Pos: pos, Msg: msg, Near: near}
	panic(bailout{})
}

// ----------------------------------------------------------------------------
// Registration

func (p *parser) name(msg string) *Name {
	if p.tok != _Name {
		p.syntaxError(msg)
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// funcDecl parses: fn NAME ( params ) [: TYPE] { ... }
func (p *parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Fn)
	d.Name = p.name("expected function name, got")

	p.want(_Lparen)
	if p.tok != _Rparen {
		for {
			d.Params = append(d.Params, p.field())
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.want(_Rparen)

	if p.got(_Colon) {
		switch {
		case p.tok == _Void:
			d.Result = types.Typ[types.Void]
		case p.tok == _Name && types.IsTypeName(p.lit):
			d.Result = types.LookupType(p.lit)
		default:
			p.syntaxError("unknown type")
		}
		p.next()
	}

	if p.tok != _Lbrace {
		p.syntaxError("expected '{', got")
	}
	d.Body = p.span(d.Name)
	return d
}

// field parses one parameter: TYPE NAME ['[' ']']
func (p *parser) field() *Field {
	f := &Field{}
	f.pos = p.pos

	if p.tok != _Name || !types.IsTypeName(p.lit) {
		p.syntaxError("unknown type")
	}
	f.Type = types.LookupType(p.lit)
	p.next()

	f.Name = p.name("expected parameter name, got")
	if p.got(_Lbrack) {
		p.want(_Rbrack)
		f.Array = true
	}
	return f
}

// span consumes a brace-delimited body and returns its items, braces
// included.
func (p *parser) span(fn *Name) []Item {
	start := p.i - 1
	depth := 0
	for {
		switch p.tok {
		case _Lbrace:
			depth++
		case _Rbrace:
			depth--
		case _EOF:
			p.errorAt(fn.pos, "unbalanced braces in body of function", fn.Value)
		}
		p.next()
		if depth == 0 {
			return p.items[start : p.i-1]
		}
	}
}

// ----------------------------------------------------------------------------
// Statements

func (p *parser) blockStmt() *BlockStmt {
	b := &BlockStmt{}
	b.pos = p.pos

	p.want(_Lbrace)
	for p.tok != _Rbrace {
		if p.tok == _EOF {
			p.syntaxError("expected '}', got")
		}
		b.Stmts = append(b.Stmts, p.stmt())
	}
	b.Rbrace = p.pos
	p.next()
	return b
}

func (p *parser) stmt() Stmt {
	switch p.tok {
	case _Name:
		switch {
		case types.IsTypeName(p.lit):
			return p.declStmt()
		case p.lit == "std" && p.peek() == _Dot, p.peek() == _Lparen:
			s := &ExprStmt{}
			s.pos = p.pos
			s.X = p.callExpr()
			p.want(_Semi)
			return s
		}
		s := p.assignStmt()
		p.want(_Semi)
		return s

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _For:
		return p.forStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		return p.branchStmt()
	}

	p.syntaxError("unexpected token")
	return nil
}

// declStmt parses: TYPE NAME ['[' EXPR ']'] ['=' EXPR] ';'
func (p *parser) declStmt() *DeclStmt {
	d := &DeclStmt{Type: types.LookupType(p.lit)}
	d.pos = p.pos
	p.next()

	d.Name = p.name("expected variable name, got")
	if p.got(_Lbrack) {
		d.Len = p.expr()
		p.want(_Rbrack)
	}
	if p.tok == _Assign {
		if d.Len != nil {
			p.syntaxError("array initialization is not supported")
		}
		p.next()
		d.Value = p.expr()
	}
	p.want(_Semi)
	return d
}

// assignStmt parses: NAME ['[' EXPR ']'] ('=' | op '=') EXPR
// The terminator is left to the caller.
func (p *parser) assignStmt() *AssignStmt {
	s := &AssignStmt{}
	s.pos = p.pos

	n := p.name("expected variable name, got")
	s.LHS = n
	if p.tok == _Lbrack {
		s.LHS = p.indexExpr(n)
	}

	switch p.tok {
	case _Assign:
		p.next()
	case _Add, _Sub, _Mul, _Div, _Rem:
		s.Op = p.tok
		p.next()
		if p.tok != _Assign {
			p.syntaxError("expected '=' after '" + s.Op.String() + "', got")
		}
		p.next()
	default:
		p.syntaxError("expected assignment, got")
	}

	s.RHS = p.expr()
	return s
}

// ifStmt parses: if ( COND ) { ... } [else { ... }]
func (p *parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	s.pos = p.pos
	p.next()

	p.want(_Lparen)
	s.Cond = p.cond(_Rparen)
	p.want(_Rparen)
	s.Then = p.blockStmt()

	if p.got(_Else) {
		if p.tok != _Lbrace {
			p.syntaxError("expected '{' after else, got")
		}
		s.Else = p.blockStmt()
	}
	return s
}

// whileStmt parses: while ( COND ) { ... }
func (p *parser) whileStmt() *WhileStmt {
	s := &WhileStmt{}
	s.pos = p.pos
	p.next()

	p.want(_Lparen)
	s.Cond = p.cond(_Rparen)
	p.want(_Rparen)
	s.Body = p.loopBody()
	return s
}

// forStmt parses: for ( DECL ; COND ; ASSIGN ) { ... }
func (p *parser) forStmt() *ForStmt {
	s := &ForStmt{}
	s.pos = p.pos
	p.next()

	p.want(_Lparen)
	if p.tok != _Name || !types.IsTypeName(p.lit) {
		p.syntaxError("for loops must initialize variable, got")
	}
	s.Init = p.declStmt()
	s.Cond = p.cond(_Semi)
	p.want(_Semi)
	s.Post = p.assignStmt()
	p.want(_Rparen)
	s.Body = p.loopBody()
	return s
}

func (p *parser) loopBody() *BlockStmt {
	p.loops++
	b := p.blockStmt()
	p.loops--
	return b
}

func (p *parser) returnStmt() *ReturnStmt {
	s := &ReturnStmt{}
	s.pos = p.pos
	p.next()

	if p.tok != _Semi {
		s.Result = p.expr()
	}
	p.want(_Semi)
	return s
}

func (p *parser) branchStmt() *BranchStmt {
	s := &BranchStmt{Tok: p.tok}
	s.pos = p.pos
	if p.loops == 0 {
		p.syntaxError("no enclosing loop for")
	}
	p.next()
	p.want(_Semi)
	return s
}

// ----------------------------------------------------------------------------
// Conditions

// cond parses a comparison up to (not including) end. The first comparison
// operator splits the two sides; "<=", ">=", "==" and "!=" are assembled
// from two tokens.
func (p *parser) cond(end Token) *Cond {
	c := &Cond{Op: _EOF}
	c.pos = p.pos

	if p.tok == end {
		return c
	}
	if (p.tok == _True || p.tok == _False) && p.peek() == end {
		c.Op = p.tok
		p.next()
		return c
	}

	c.X = p.expr()
	switch p.tok {
	case end:
		return c
	case _Lss, _Gtr:
		c.Op = p.tok
		p.next()
		if p.got(_Assign) {
			if c.Op == _Lss {
				c.Op = _Leq
			} else {
				c.Op = _Geq
			}
		}
	case _Not:
		pos := p.pos
		p.next()
		if p.tok != _Assign {
			p.errorAt(pos, "expected '!=', got", "!"+p.item().Text())
		}
		p.next()
		c.Op = _Neq
	case _Assign:
		pos := p.pos
		p.next()
		if p.tok != _Assign {
			p.errorAt(pos, "assignation on condition, expected '==', got", "="+p.item().Text())
		}
		p.next()
		c.Op = _Eql
	default:
		p.syntaxError("expected comparison operator, got")
	}
	c.Y = p.expr()
	return c
}

// ----------------------------------------------------------------------------
// Expressions

func (p *parser) expr() Expr {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec,
// by precedence climbing. All operators are left associative.
func (p *parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()

		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

func (p *parser) unaryExpr() Expr {
	if p.tok == _Sub {
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op
	}
	return p.operand()
}

func (p *parser) operand() Expr {
	switch p.tok {
	case _Int:
		lit := &BasicLit{Value: p.lit, Kind: IntLit}
		lit.pos = p.pos
		p.next()
		return lit

	case _String:
		lit := &BasicLit{Value: p.lit, Kind: StringLit}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		paren := &ParenExpr{}
		paren.pos = p.pos
		p.next()
		paren.X = p.expr()
		p.want(_Rparen)
		return paren

	case _Name:
		if p.lit == "std" && p.peek() == _Dot || p.peek() == _Lparen {
			return p.callExpr()
		}
		n := p.name("")
		switch p.tok {
		case _Lbrack:
			return p.indexExpr(n)
		case _Dot:
			return p.selectorExpr(n)
		}
		return n
	}

	p.syntaxError("expected expression, got")
	return nil
}

// callExpr parses NAME(ARGS) or std.NAME(ARGS).
func (p *parser) callExpr() *CallExpr {
	call := &CallExpr{}
	call.pos = p.pos

	if p.lit == "std" && p.peek() == _Dot {
		call.Std = true
		p.next()
		p.next()
	}
	call.Fun = p.name("expected function name, got")

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = []Expr{p.expr()}
		for p.got(_Comma) {
			call.Args = append(call.Args, p.expr())
		}
	}
	p.want(_Rparen)
	return call
}

func (p *parser) indexExpr(x *Name) *IndexExpr {
	idx := &IndexExpr{X: x}
	idx.pos = x.Pos()

	p.want(_Lbrack)
	idx.Index = p.expr()
	p.want(_Rbrack)
	return idx
}

func (p *parser) selectorExpr(x *Name) *SelectorExpr {
	sel := &SelectorExpr{X: x}
	sel.pos = x.Pos()

	p.want(_Dot)
	sel.Sel = p.name("expected field name, got")
	if sel.Sel.Value != "length" {
		p.errorAt(sel.Sel.pos, "array has no such field", sel.Sel.Value)
	}
	return sel
}
