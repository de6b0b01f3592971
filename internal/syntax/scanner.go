package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner splits cbr source into tokens. The first lexical error stops the
// scan: the scanner then reports EOF and Err returns the error.
type Scanner struct {
	source

	tok    Token
	lit    string
	tokPos Pos
	err    *Error

	litBuf strings.Builder
}

// NewScanner reads src and returns a Scanner positioned before the first
// token. Call Next to advance.
func NewScanner(filename string, src io.Reader) (*Scanner, error) {
	s, err := newSource(filename, src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return &Scanner{source: *s}, nil
}

// Next advances to the next token.
func (s *Scanner) Next() {
	if s.err != nil {
		s.tok, s.lit = _EOF, ""
		return
	}

redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}
	if s.ch == '#' {
		s.skipLineComment()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok, s.lit = _EOF, ""
	case isLetter(s.ch):
		s.scanIdent()
	case isDigit(s.ch):
		s.scanNumber()
	case s.ch == '"':
		s.scanString()
	default:
		s.scanPunct()
	}
}

func (s *Scanner) Token() Token    { return s.tok }
func (s *Scanner) Literal() string { return s.lit }
func (s *Scanner) Pos() Pos        { return s.tokPos }

// Item returns the current token as a value.
func (s *Scanner) Item() Item {
	return Item{Tok: s.tok, Lit: s.lit, Pos: s.tokPos}
}

// Err returns the lexical error that stopped the scan, if any.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

func (s *Scanner) error(pos Pos, msg, near string) {
	if s.err == nil {
		s.err = &Error{Kind: LexicalError, Pos: pos, Msg: msg, Near: near}
	}
	s.tok, s.lit = _EOF, ""
}

func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a run of decimal digits. There is no sign and no radix
// prefix; a leading '-' is the subtraction token.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = _Int
}

// scanString scans a double-quoted literal; Lit receives the decoded text.
func (s *Scanner) scanString() {
	start := s.tokPos
	s.nextch() // opening "
	s.litBuf.Reset()

	for {
		switch s.ch {
		case '"':
			s.nextch()
			s.lit = s.litBuf.String()
			s.tok = _String
			return
		case -1:
			s.error(start, "unterminated string literal", `"`+s.litBuf.String())
			return
		case '\\':
			escPos := s.pos()
			s.nextch()
			switch s.ch {
			case 'n':
				s.litBuf.WriteByte('\n')
			case 't':
				s.litBuf.WriteByte('\t')
			case '\\':
				s.litBuf.WriteByte('\\')
			case '"':
				s.litBuf.WriteByte('"')
			case -1:
				s.error(start, "unterminated string literal", `"`+s.litBuf.String())
				return
			default:
				s.error(escPos, "unknown escape sequence", `\`+string(s.ch))
				return
			}
			s.nextch()
		default:
			s.litBuf.WriteRune(s.ch)
			s.nextch()
		}
	}
}

var punct = map[rune]Token{
	'{': _Lbrace,
	'}': _Rbrace,
	'(': _Lparen,
	')': _Rparen,
	'[': _Lbrack,
	']': _Rbrack,
	';': _Semi,
	',': _Comma,
	'.': _Dot,
	':': _Colon,
	'=': _Assign,
	'+': _Add,
	'-': _Sub,
	'*': _Mul,
	'/': _Div,
	'%': _Rem,
	'<': _Lss,
	'>': _Gtr,
	'!': _Not,
}

func (s *Scanner) scanPunct() {
	tok, ok := punct[s.ch]
	if !ok {
		s.error(s.tokPos, "unexpected character", string(s.ch))
		return
	}
	s.tok = tok
	s.lit = tok.String()
	s.nextch()
}

// ScanAll tokenizes the whole of src. The returned slice always ends with
// an EOF item unless an error is returned.
func ScanAll(filename string, src io.Reader) ([]Item, error) {
	s, err := NewScanner(filename, src)
	if err != nil {
		return nil, err
	}
	var items []Item
	for {
		s.Next()
		if err := s.Err(); err != nil {
			return nil, err
		}
		items = append(items, s.Item())
		if s.tok == _EOF {
			return items, nil
		}
	}
}
