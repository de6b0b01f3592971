package syntax

import "io"

// source reads cbr source text one byte at a time, tracking line, column
// and byte offset. cbr source is ASCII; other bytes are passed through and
// rejected by the scanner.
type source struct {
	buf []byte

	filename string
	line     uint32 // line of ch (1-based)
	col      uint32 // column of ch (1-based)
	offs     int    // offset of ch in buf

	ch   rune // current character, -1 at EOF
	next int  // offset of the byte after ch
}

// newSource reads src fully into memory and positions the reader on its
// first character.
func newSource(filename string, src io.Reader) (*source, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	s := &source{buf: buf, filename: filename, line: 1, ch: -1}
	s.nextch()
	return s, nil
}

// nextch advances to the next character. After it returns, (line, col,
// offs) describe s.ch.
func (s *source) nextch() {
	switch {
	case s.ch == '\n':
		s.line++
		s.col = 1
	default:
		s.col++
	}
	s.offs = s.next
	if s.next >= len(s.buf) {
		s.ch = -1
		return
	}
	s.ch = rune(s.buf[s.next])
	s.next++
}

// peek returns the character after s.ch without consuming it.
func (s *source) peek() rune {
	if s.next >= len(s.buf) {
		return -1
	}
	return rune(s.buf[s.next])
}

func (s *source) pos() Pos {
	return Pos{filename: s.filename, line: s.line, col: s.col, offset: s.offs}
}

// Character classes. Identifiers are ASCII letters followed by letters or
// digits.

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}
