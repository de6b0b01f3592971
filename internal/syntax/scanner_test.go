package syntax

import (
	"strings"
	"testing"
)

func newTestScanner(t *testing.T, src string) *Scanner {
	t.Helper()
	s, err := NewScanner("test.cbr", strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	return s
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		{"ident", "foo", []Token{_Name}, []string{"foo"}},
		{"ident_mixed", "foo123", []Token{_Name}, []string{"foo123"}},
		{"ident_caps", "FooBar", []Token{_Name}, []string{"FooBar"}},
		{"type_name", "i32", []Token{_Name}, []string{"i32"}},
		{"string_type", "string", []Token{_Name}, []string{"string"}},
		{"std", "std", []Token{_Name}, []string{"std"}},

		{"int", "123", []Token{_Int}, []string{"123"}},
		{"int_zero", "0", []Token{_Int}, []string{"0"}},
		{"int_leading_zero", "007", []Token{_Int}, []string{"007"}},
		{"negative", "-5", []Token{_Sub, _Int}, []string{"-", "5"}},
		{"int_then_ident", "12ab", []Token{_Int, _Name}, []string{"12", "ab"}},

		{"string_simple", `"hello"`, []Token{_String}, []string{"hello"}},
		{"string_empty", `""`, []Token{_String}, []string{""}},
		{"string_escape_n", `"a\nb"`, []Token{_String}, []string{"a\nb"}},
		{"string_escape_t", `"a\tb"`, []Token{_String}, []string{"a\tb"}},
		{"string_escape_backslash", `"a\\b"`, []Token{_String}, []string{`a\b`}},
		{"string_escape_quote", `"a\"b"`, []Token{_String}, []string{`a"b`}},
		{"string_hash", `"#x"`, []Token{_String}, []string{"#x"}},

		{"op_add", "+", []Token{_Add}, []string{"+"}},
		{"op_sub", "-", []Token{_Sub}, []string{"-"}},
		{"op_mul", "*", []Token{_Mul}, []string{"*"}},
		{"op_div", "/", []Token{_Div}, []string{"/"}},
		{"op_rem", "%", []Token{_Rem}, []string{"%"}},
		{"op_not", "!", []Token{_Not}, []string{"!"}},
		{"op_lss", "<", []Token{_Lss}, []string{"<"}},
		{"op_gtr", ">", []Token{_Gtr}, []string{">"}},
		{"op_assign", "=", []Token{_Assign}, []string{"="}},

		// Two-character operators are two tokens.
		{"eq", "==", []Token{_Assign, _Assign}, []string{"=", "="}},
		{"le", "<=", []Token{_Lss, _Assign}, []string{"<", "="}},
		{"plus_assign", "+=", []Token{_Add, _Assign}, []string{"+", "="}},

		{"delims", "{}()[];,.:", []Token{_Lbrace, _Rbrace, _Lparen, _Rparen, _Lbrack, _Rbrack, _Semi, _Comma, _Dot, _Colon}, nil},

		{"kw_fn", "fn", []Token{_Fn}, []string{"fn"}},
		{"kw_return", "return", []Token{_Return}, []string{"return"}},
		{"kw_while", "while", []Token{_While}, []string{"while"}},
		{"kw_for", "for", []Token{_For}, []string{"for"}},
		{"kw_if", "if", []Token{_If}, []string{"if"}},
		{"kw_else", "else", []Token{_Else}, []string{"else"}},
		{"kw_continue", "continue", []Token{_Continue}, []string{"continue"}},
		{"kw_break", "break", []Token{_Break}, []string{"break"}},
		{"kw_true", "true", []Token{_True}, []string{"true"}},
		{"kw_false", "false", []Token{_False}, []string{"false"}},
		{"kw_void", "void", []Token{_Void}, []string{"void"}},

		{"comment", "# all of this\nx", []Token{_Name}, []string{"x"}},
		{"comment_eof", "x # trailing", []Token{_Name}, []string{"x"}},
		{"whitespace", " \t\r\n x \n", []Token{_Name}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(t, tt.src)
			for i, want := range tt.tokens {
				s.Next()
				if s.Token() != want {
					t.Fatalf("token %d: got %v, want %v", i, s.Token(), want)
				}
				if tt.lits != nil && s.Literal() != tt.lits[i] {
					t.Errorf("token %d: lit = %q, want %q", i, s.Literal(), tt.lits[i])
				}
			}
			s.Next()
			if s.Token() != _EOF {
				t.Errorf("expected EOF, got %v", s.Token())
			}
			if err := s.Err(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	src := `fn main(): i32 {
    # comment
    i32 x = 12;
}`

	expected := []struct {
		tok    Token
		line   uint32
		col    uint32
		offset int
	}{
		{_Fn, 1, 1, 0},
		{_Name, 1, 4, 3},     // main
		{_Lparen, 1, 8, 7},   // (
		{_Rparen, 1, 9, 8},   // )
		{_Colon, 1, 10, 9},   // :
		{_Name, 1, 12, 11},   // i32
		{_Lbrace, 1, 16, 15}, // {
		{_Name, 3, 5, 35},    // i32
		{_Name, 3, 9, 39},    // x
		{_Assign, 3, 11, 41}, // =
		{_Int, 3, 13, 43},    // 12
		{_Semi, 3, 15, 45},   // ;
		{_Rbrace, 4, 1, 47},  // }
		{_EOF, 4, 2, 48},
	}

	s := newTestScanner(t, src)
	for i, exp := range expected {
		s.Next()
		pos := s.Pos()
		if s.Token() != exp.tok {
			t.Errorf("token %d: got %v, want %v", i, s.Token(), exp.tok)
		}
		if pos.Line() != exp.line || pos.Col() != exp.col || pos.Offset() != exp.offset {
			t.Errorf("token %d (%v): pos = %d:%d@%d, want %d:%d@%d",
				i, s.Token(), pos.Line(), pos.Col(), pos.Offset(), exp.line, exp.col, exp.offset)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantMsg  string
		wantNear string
		wantPos  string
	}{
		{"unterminated_string", `x = "hello`, "unterminated string literal", `"hello`, "test.cbr:1:5"},
		{"unterminated_escape", `"ab\`, "unterminated string literal", `"ab`, "test.cbr:1:1"},
		{"bad_escape", `"\q"`, "unknown escape sequence", `\q`, "test.cbr:1:2"},
		{"bad_char", "x @", "unexpected character", "@", "test.cbr:1:3"},
		{"underscore", "_x", "unexpected character", "_", "test.cbr:1:1"},
		{"dollar", "\n$", "unexpected character", "$", "test.cbr:2:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanAll("test.cbr", strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("expected error %q, got none", tt.wantMsg)
			}
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if e.Kind != LexicalError {
				t.Errorf("Kind = %v, want lexical error", e.Kind)
			}
			if e.Msg != tt.wantMsg || e.Near != tt.wantNear {
				t.Errorf("error = %q near %q, want %q near %q", e.Msg, e.Near, tt.wantMsg, tt.wantNear)
			}
			if e.Pos.String() != tt.wantPos {
				t.Errorf("pos = %s, want %s", e.Pos, tt.wantPos)
			}
		})
	}
}

func TestScanStopsAfterError(t *testing.T) {
	s := newTestScanner(t, "a @ b")
	s.Next()
	if s.Token() != _Name {
		t.Fatalf("got %v, want NAME", s.Token())
	}
	s.Next()
	s.Next()
	if s.Token() != _EOF {
		t.Errorf("after error got %v, want EOF", s.Token())
	}
	if s.Err() == nil {
		t.Error("Err() = nil after lexical error")
	}
}

func TestScanAll(t *testing.T) {
	src := `fn add(i32 a, i32 b): i32 {
    return a + b;
}

fn main(): i32 {
    i32 arr[3];
    arr[0] = add(1, 2);
    std.print("sum: ", arr[0], "\n");
    return 0;
}
`
	items, err := ScanAll("test.cbr", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}
	if got := items[len(items)-1].Tok; got != _EOF {
		t.Fatalf("last item = %v, want EOF", got)
	}
	if len(items) < 50 {
		t.Errorf("expected at least 50 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if !items[i-1].Pos.Before(items[i].Pos) {
			t.Fatalf("item %d (%v) does not follow item %d", i, items[i].Tok, i-1)
		}
	}
}

func TestItemText(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Tok: _Name, Lit: "foo"}, "foo"},
		{Item{Tok: _Int, Lit: "42"}, "42"},
		{Item{Tok: _String, Lit: "hi"}, `"hi"`},
		{Item{Tok: _Lparen, Lit: "("}, "("},
		{Item{Tok: _While, Lit: "while"}, "while"},
		{Item{Tok: _EOF}, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.item.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"fn main(): i32 { return 0; }",
		`std.print("hello\nworld");`,
		"i32 x = 1 + 2 * 3;",
		"while (i < 10) { i += 1; }",
		"for (i32 i = 0; i < n; i = i + 1) {}",
		"arr[0] = arr.length;",
		"# comment\nfoo",
		`"unterminated`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		items, err := ScanAll("fuzz", strings.NewReader(src))
		if err == nil && (len(items) == 0 || items[len(items)-1].Tok != _EOF) {
			t.Fatalf("stream does not end in EOF")
		}
	})
}
