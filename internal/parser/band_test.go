package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/source"
)

func TestParseFullBandWithArgs(t *testing.T) {
	p := parseInput(t, "# f(a,b) = a+b;", Options{}, lexer.TerminatorNone)
	if p.res.Err != nil {
		t.Fatalf("unexpected errors: %s", diagnosticsSummary(p.bag))
	}
	bands := p.tree.Bands()
	if len(bands) != 1 {
		t.Fatalf("expected 1 band, got %d", len(bands))
	}
	var args []string
	for _, a := range bands[0].Args {
		args = append(args, a.Value)
	}
	if diff := cmp.Diff([]string{"a", "b"}, args); diff != "" {
		t.Fatalf("args (-want +got):\n%s", diff)
	}
	if got := p.tree.Builder.RenderExpr(bands[0].Value); got != "(a + b)" {
		t.Fatalf("value = %q", got)
	}
	if got := p.tree.String(); got != "start>( ( # f ( a  b ) = (a + b) ), ) " {
		t.Fatalf("rendering = %q", got)
	}
}

func TestParseFullForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no args", "# x = 1;", "start>( ( # x () = 1 ), ) "},
		{"empty args", "# x() = y;", "start>( ( # x () = y ), ) "},
		{"number with dot", "# x = 12.;", "start>( ( # x () = 12. ), ) "},
		{"double slash terminator", "# a = 1 // # b = 2 //", "start>( ( # a () = 1 ), ( # b () = 2 ), ) "},
		{"empty", "", "start>( ) "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseInput(t, tt.input, Options{}, lexer.TerminatorNone)
			if p.bag.HasErrors() {
				t.Fatalf("unexpected errors: %s", diagnosticsSummary(p.bag))
			}
			if got := p.tree.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFullErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		codes []string
		bands int
	}{
		{"missing hash", "name = 1;", []string{"SYN2001"}, 0},
		{"missing identifier", "# = 1;", []string{"SYN2002"}, 0},
		{"missing assign", "# name 1;", []string{"SYN2003"}, 0},
		{"missing semicolon", "# name = 1", []string{"SYN2004"}, 0},
		{"stray token before semicolon", "# x = 1 2;", []string{"SYN2004"}, 0},
		{"missing expression", "# x = ;", []string{"SYN2005"}, 0},
		{"dangling operator", "# x = 1 +;", []string{"SYN2005"}, 0},
		{"bad argument", "# f(a,) = 1;", []string{"SYN2006"}, 0},
		{"unclosed args", "# f(a b) = 1;", []string{"SYN2007"}, 0},
		{"unclosed group", "# x = (a + b;", []string{"SYN2007"}, 0},
		{"undefined char", "# x = 1 @;", []string{"LEX1001", "SYN2004"}, 0},
		{
			"recovers and continues",
			"name = 1; # = 2; # ok = 3; # x 4; # y = 5;",
			[]string{"SYN2001", "SYN2002", "SYN2003"}, 2,
		},
		{"resync stops at next hash", "# a = 1 # b = 2;", []string{"SYN2004"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseInput(t, tt.input, Options{}, lexer.TerminatorNone)
			if diff := cmp.Diff(tt.codes, codes(p.bag)); diff != "" {
				t.Fatalf("codes (-want +got):\n%s\n%s", diff, diagnosticsSummary(p.bag))
			}
			if got := len(p.tree.Bands()); got != tt.bands {
				t.Fatalf("expected %d bands, got %d", tt.bands, got)
			}
			if p.res.Block == 0 {
				t.Fatalf("full grammar always returns a block")
			}
		})
	}
}

func TestParseFullFirstErrorMatchesSentinel(t *testing.T) {
	p := parseInput(t, "# x 1; y;", Options{}, lexer.TerminatorNone)
	if !errors.Is(p.res.Err, ErrMissingAssign) {
		t.Fatalf("first error = %v", p.res.Err)
	}
	if errors.Is(p.res.Err, ErrMissingHash) {
		t.Fatalf("errors.Is must compare codes")
	}
}

func TestParseFullMaxErrors(t *testing.T) {
	p := parseInput(t, "a; b; c; d;", Options{MaxErrors: 2}, lexer.TerminatorNone)
	if p.bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %s", diagnosticsSummary(p.bag))
	}
	if !errors.Is(p.res.Err, ErrMissingHash) {
		t.Fatalf("unexpected first error %v", p.res.Err)
	}
}

func TestParseFullTerminatorPolicy(t *testing.T) {
	p := parseInput(t, "# a = 1", Options{}, lexer.TerminatorAuto)
	if p.bag.HasErrors() {
		t.Fatalf("auto terminator must close the band: %s", diagnosticsSummary(p.bag))
	}
	if len(p.tree.Bands()) != 1 {
		t.Fatalf("expected one band")
	}
}

func TestParseErrorPositions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  source.LineCol
	}{
		{"semicolon after last token", "# name = 1   ", source.LineCol{Line: 1, Col: 11}},
		{"hash at second line", "# a = 1;\nb = 2;", source.LineCol{Line: 2, Col: 1}},
		{"identifier", "#  = 1;", source.LineCol{Line: 1, Col: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseInput(t, tt.input, Options{}, lexer.TerminatorNone)
			d, ok := p.bag.First()
			if !ok {
				t.Fatalf("expected a diagnostic")
			}
			got, _ := p.fs.Resolve(d.Primary)
			if got != tt.want {
				t.Fatalf("position = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnclosedParenNote(t *testing.T) {
	p := parseInput(t, "# f(a b) = 1;", Options{}, lexer.TerminatorNone)
	d, ok := p.bag.First()
	if !ok || d.Code != diag.SynUnclosedParen {
		t.Fatalf("unexpected diagnostics %s", diagnosticsSummary(p.bag))
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 3 {
		t.Fatalf("expected note at '(', got %+v", d.Notes)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"full", "compat"} {
		m, err := ParseMode(s)
		if err != nil || m.String() != s {
			t.Fatalf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode("strict"); err == nil {
		t.Fatalf("expected error")
	}
}
