package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
	"kangaroo/internal/source"
	"kangaroo/internal/token"
)

func TestDiagnosticsJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.kg", []byte("x = 1;\n# y 2;"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynMissingHash, source.Span{File: id, Start: 0, End: 1}, "missing '#'!"))
	bag.Add(diag.NewError(diag.SynMissingAssign, source.Span{File: id, Start: 11, End: 12}, "missing '='!").
		WithNote(source.Span{File: id, Start: 7, End: 8}, "band starts here"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("unexpected count %d", out.Count)
	}
	second := out.Diagnostics[1]
	if second.Code != "SYN2003" || second.Severity != "ERROR" || second.Location.StartLine != 2 || second.Location.StartCol != 5 {
		t.Fatalf("unexpected diagnostic %+v", second)
	}
	if len(second.Notes) != 1 || second.Notes[0].Location.File != "j.kg" {
		t.Fatalf("unexpected notes %+v", second.Notes)
	}

	limited := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if limited.Count != 1 || limited.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("Max/positions not honoured: %+v", limited)
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.kg", []byte("# foo"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	want := "  1: HASH            \"#\" at 1:1-1:2\n" +
		"  2: IDENT           \"foo\" at 1:3-1:6\n" +
		"  3: EOF             at 1:6-1:6\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestTokensJSON(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Number, Text: "12.", Span: source.Span{Start: 0, End: 3}},
		{Kind: token.EOF, Span: source.Span{Start: 3, End: 3}},
	}
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 2 || out[0].Kind != "NUMBER" || out[0].Text != "12." || out[1].Kind != "EOF" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}

func parseForFormat(t *testing.T, src string) (*ast.Builder, ast.BlockID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.kg", []byte(src))
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(fs, lexer.New(fs.Get(id), lexer.Options{}), builder, parser.Options{})
	if res.Err != nil {
		t.Fatalf("parse: %v", res.Err)
	}
	return builder, res.Block, fs
}

func TestASTPretty(t *testing.T) {
	builder, block, fs := parseForFormat(t, "# f(a) = -a * 2;")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, builder, block, fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	want := strings.Join([]string{
		"Block (span: 1:1-1:17)",
		"└─ Stmt[0]: Band (span: 1:1-1:17)",
		"   ├─ Name: f",
		"   ├─ Args",
		"   │  └─ [0] a",
		"   └─ Value: Binary (*) (span: 1:10-1:16)",
		"      ├─ Unary (-) (span: 1:10-1:12)",
		"      │  └─ Ident a (span: 1:11-1:12)",
		"      └─ Number 2 (span: 1:15-1:16)",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestASTDisplayAndJSON(t *testing.T) {
	builder, block, _ := parseForFormat(t, "# x = (1);")

	var display bytes.Buffer
	if err := FormatASTDisplay(&display, builder, block); err != nil {
		t.Fatalf("FormatASTDisplay: %v", err)
	}
	if display.String() != "start>( ( # x () = 1 ), ) \n" {
		t.Fatalf("display = %q", display.String())
	}

	out, err := BuildASTOutput(builder, block)
	if err != nil {
		t.Fatalf("BuildASTOutput: %v", err)
	}
	if len(out.Children) != 1 {
		t.Fatalf("expected one statement")
	}
	stmt := out.Children[0]
	if stmt.Kind != "Band" || stmt.Fields["name"] != "x" {
		t.Fatalf("unexpected stmt %+v", stmt)
	}
	value := stmt.Children[0]
	if value.Kind != "Group" || value.Children[0].Text != "1" {
		t.Fatalf("unexpected value %+v", value)
	}

	if _, err := BuildASTOutput(builder, ast.NoBlockID); err == nil {
		t.Fatalf("expected error for missing block")
	}
}
