package lexer_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/source"
	"kangaroo/internal/token"
)

type lexed struct {
	Kind token.Kind
	Text string
}

func makeTestLexer(t *testing.T, input string, opts lexer.Options) *lexer.Lexer {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kg", []byte(input))
	return lexer.New(fs.Get(id), opts)
}

func collect(t *testing.T, input string, opts lexer.Options) []lexed {
	t.Helper()
	lx := makeTestLexer(t, input, opts)
	var out []lexed
	for _, tok := range lx.All() {
		out = append(out, lexed{Kind: tok.Kind, Text: tok.Text})
	}
	return out
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []lexed
	}{
		{"empty", "", []lexed{{token.EOF, ""}}},
		{"whitespace only", " \t\n\r\n ", []lexed{{token.EOF, ""}}},
		{"integer", "0123456789", []lexed{{token.Number, "0123456789"}, {token.EOF, ""}}},
		{"decimal", "12.5", []lexed{{token.Number, "12.5"}, {token.EOF, ""}}},
		{"trailing dot", "12.", []lexed{{token.Number, "12."}, {token.EOF, ""}}},
		{"two dots", "1.2.3", []lexed{{token.Number, "1.2"}, {token.Undefined, "."}, {token.Number, "3"}, {token.EOF, ""}}},
		{"ident", "foo_1", []lexed{{token.Ident, "foo_1"}, {token.EOF, ""}}},
		{"underscore ident", "_x9", []lexed{{token.Ident, "_x9"}, {token.EOF, ""}}},
		{"unicode ident", "вес_2", []lexed{{token.Ident, "вес_2"}, {token.EOF, ""}}},
		{"number then ident", "9lives", []lexed{{token.Number, "9"}, {token.Ident, "lives"}, {token.EOF, ""}}},
		{
			"punctuation", "+-*%#$:,=(){};",
			[]lexed{
				{token.Plus, "+"}, {token.Minus, "-"}, {token.Asterisk, "*"}, {token.Percent, "%"},
				{token.Hash, "#"}, {token.Dollar, "$"}, {token.Colon, ":"}, {token.Comma, ","},
				{token.Assign, "="}, {token.LParen, "("}, {token.RParen, ")"}, {token.LBrace, "{"},
				{token.RBrace, "}"}, {token.Semicolon, ";"}, {token.EOF, ""},
			},
		},
		{"slash", "a / b", []lexed{{token.Ident, "a"}, {token.Slash, "/"}, {token.Ident, "b"}, {token.EOF, ""}}},
		{
			"double slash terminator", "# a = 1 // rest",
			[]lexed{
				{token.Hash, "#"}, {token.Ident, "a"}, {token.Assign, "="}, {token.Number, "1"},
				{token.Semicolon, "//"}, {token.Ident, "rest"}, {token.EOF, ""},
			},
		},
		{"triple slash", "///", []lexed{{token.Semicolon, "//"}, {token.Slash, "/"}, {token.EOF, ""}}},
		{"trailing slash", "a/", []lexed{{token.Ident, "a"}, {token.Slash, "/"}, {token.EOF, ""}}},
		{
			"band", "# f(a,b) = a+b;",
			[]lexed{
				{token.Hash, "#"}, {token.Ident, "f"}, {token.LParen, "("}, {token.Ident, "a"},
				{token.Comma, ","}, {token.Ident, "b"}, {token.RParen, ")"}, {token.Assign, "="},
				{token.Ident, "a"}, {token.Plus, "+"}, {token.Ident, "b"}, {token.Semicolon, ";"},
				{token.EOF, ""},
			},
		},
		{"undefined ascii", "a@b", []lexed{{token.Ident, "a"}, {token.Undefined, "@"}, {token.Ident, "b"}, {token.EOF, ""}}},
		{"undefined rune", "→", []lexed{{token.Undefined, "→"}, {token.EOF, ""}}},
		{"unicode space", "a\u2003b", []lexed{{token.Ident, "a"}, {token.Ident, "b"}, {token.EOF, ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input, lexer.Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexerDigitSequences(t *testing.T) {
	for n := 1; n <= 20; n++ {
		digits := strings.Repeat("0123456789", 3)[:n]
		got := collect(t, digits, lexer.Options{})
		want := []lexed{{token.Number, digits}, {token.EOF, ""}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("digits %q (-want +got):\n%s", digits, diff)
		}
	}
}

func TestLexerEOFIdempotent(t *testing.T) {
	lx := makeTestLexer(t, "x", lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected IDENT, got %s", tok)
	}
	for i := range 5 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end: expected EOF, got %s", i, tok)
		}
	}
}

func TestLexerPeek(t *testing.T) {
	lx := makeTestLexer(t, "# a", lexer.Options{})
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1 != p2 || p1.Kind != token.Hash {
		t.Fatalf("Peek must be stable: %s vs %s", p1, p2)
	}
	if tok := lx.Next(); tok != p1 {
		t.Fatalf("Next after Peek returned %s, want %s", tok, p1)
	}
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected IDENT, got %s", tok)
	}
}

func TestLexerSpans(t *testing.T) {
	lx := makeTestLexer(t, "  ab 12.5", lexer.Options{})
	ident := lx.Next()
	num := lx.Next()
	eof := lx.Next()
	if ident.Span.Start != 2 || ident.Span.End != 4 {
		t.Errorf("ident span = %s", ident.Span)
	}
	if num.Span.Start != 5 || num.Span.End != 9 {
		t.Errorf("number span = %s", num.Span)
	}
	if !eof.Span.Empty() || eof.Span.Start != 9 {
		t.Errorf("eof span = %s", eof.Span)
	}
}

func TestLexerReportsUndefined(t *testing.T) {
	bag := diag.NewBag(0)
	got := collect(t, "# a = 1 ? 2 ~;", lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	undefined := 0
	for _, tok := range got {
		if tok.Kind == token.Undefined {
			undefined++
		}
	}
	if undefined != 2 {
		t.Fatalf("expected 2 UNDEFINED tokens, got %d", undefined)
	}

	var msgs []string
	for _, d := range bag.Items() {
		if d.Code != diag.LexUndefinedChar || d.Severity != diag.SevError {
			t.Fatalf("unexpected diagnostic %s %s", d.Code.ID(), d.Severity)
		}
		msgs = append(msgs, d.Message)
	}
	want := []string{"undefined character '?'", "undefined character '~'"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if last := got[len(got)-2]; last.Kind != token.Semicolon {
		t.Fatalf("lexing must continue after undefined characters, got %v", last)
	}
}

func TestLexerTerminator(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		policy lexer.Terminator
		want   []token.Kind
	}{
		{"none", "# a = 1", lexer.TerminatorNone, []token.Kind{token.Hash, token.Ident, token.Assign, token.Number, token.EOF}},
		{"auto adds", "# a = 1", lexer.TerminatorAuto, []token.Kind{token.Hash, token.Ident, token.Assign, token.Number, token.Semicolon, token.EOF}},
		{"auto keeps", "# a = 1;", lexer.TerminatorAuto, []token.Kind{token.Hash, token.Ident, token.Assign, token.Number, token.Semicolon, token.EOF}},
		{"auto after double slash", "# a = 1 //", lexer.TerminatorAuto, []token.Kind{token.Hash, token.Ident, token.Assign, token.Number, token.Semicolon, token.EOF}},
		{"auto empty", "   ", lexer.TerminatorAuto, []token.Kind{token.EOF}},
		{"always", "# a = 1;", lexer.TerminatorAlways, []token.Kind{token.Hash, token.Ident, token.Assign, token.Number, token.Semicolon, token.Semicolon, token.EOF}},
		{"always empty", "", lexer.TerminatorAlways, []token.Kind{token.Semicolon, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []token.Kind
			for _, tok := range collect(t, tt.input, lexer.Options{Terminator: tt.policy}) {
				kinds = append(kinds, tok.Kind)
			}
			if diff := cmp.Diff(tt.want, kinds); diff != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexerSyntheticTerminatorText(t *testing.T) {
	lx := makeTestLexer(t, "x", lexer.Options{Terminator: lexer.TerminatorAuto})
	lx.Next()
	semi := lx.Next()
	if semi.Kind != token.Semicolon || semi.Text != ";" || !semi.Span.Empty() {
		t.Fatalf("unexpected synthetic terminator %+v", semi)
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("terminator must be synthesized once")
	}
}

func TestLexerRange(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lines.kg", []byte("# a = 1;\n# b = 2\n"))
	file := fs.Get(id)

	start, end, ok := file.LineRange(2)
	if !ok {
		t.Fatalf("line 2 not found")
	}
	lx := lexer.NewRange(file, start, end, lexer.Options{Terminator: lexer.TerminatorAuto})
	toks := lx.All()

	var got []lexed
	for _, tok := range toks {
		got = append(got, lexed{tok.Kind, tok.Text})
	}
	want := []lexed{{token.Hash, "#"}, {token.Ident, "b"}, {token.Assign, "="}, {token.Number, "2"}, {token.Semicolon, ";"}, {token.EOF, ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("range tokens (-want +got):\n%s", diff)
	}

	lc, _ := fs.Resolve(toks[1].Span)
	if lc != (source.LineCol{Line: 2, Col: 3}) {
		t.Fatalf("range spans must stay absolute, got %+v", lc)
	}
}

func TestParseTerminator(t *testing.T) {
	for _, s := range []string{"none", "auto", "always"} {
		term, err := lexer.ParseTerminator(s)
		if err != nil || term.String() != s {
			t.Fatalf("ParseTerminator(%q) = %v, %v", s, term, err)
		}
	}
	if _, err := lexer.ParseTerminator("sometimes"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
