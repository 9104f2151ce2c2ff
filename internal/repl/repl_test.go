package repl

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"kangaroo/internal/driver"
	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
)

func TestRunSession(t *testing.T) {
	in := strings.NewReader("# a = 1;\n\nname\n# f(x) = x\n")
	var out strings.Builder
	cfg := Config{Options: driver.Options{Terminator: lexer.TerminatorAuto}}
	if err := Run(context.Background(), in, &out, cfg); err != nil {
		t.Fatal(err)
	}
	want := "Kangaroo v0.0.1\n" +
		"Welcome!\n" +
		">>> start>( ( # a () = 1 ), ) \n" +
		">>> " +
		">>> SYN2001 missing '#'!\n" +
		">>> start>( ( # f ( x ) = x ), ) \n" +
		">>> \n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLongLine(t *testing.T) {
	name := strings.Repeat("x", 100*1024)
	in := strings.NewReader("# a = " + name + ";\n# b = 2;\n")
	var out strings.Builder
	if err := Run(context.Background(), in, &out, Config{}); err != nil {
		t.Fatalf("line above the default scanner limit: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "= "+name+" )") {
		t.Fatalf("long band was not rendered")
	}
	if !strings.HasSuffix(got, ">>> start>( ( # b () = 2 ), ) \n>>> \n") {
		t.Fatalf("session did not continue after the long line, tail %q", got[len(got)-64:])
	}
}

func TestRunLineTooLong(t *testing.T) {
	in := strings.NewReader("# a = " + strings.Repeat("x", maxLineBytes) + ";\n")
	var out strings.Builder
	err := Run(context.Background(), in, &out, Config{})
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("expected bufio.ErrTooLong, got %v", err)
	}
}

func TestRunCustomPrompt(t *testing.T) {
	var out strings.Builder
	if err := Run(context.Background(), strings.NewReader(""), &out, Config{Prompt: "kg> "}); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "Kangaroo v0.0.1\nWelcome!\nkg> \n" {
		t.Fatalf("got %q", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out strings.Builder
	err := Run(ctx, strings.NewReader("# a = 1;\n"), &out, Config{})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		opts   driver.Options
		render string
		errs   []string
	}{
		{"full band", "# b(x, y) = x * (y + 1);", driver.Options{}, "start>( ( # b ( x  y ) = (x * (y + 1)) ), ) ", nil},
		{"compat placeholder", "# b(x) = anything goes;", driver.Options{Mode: parser.ModeCompat}, "start>( ( # b () =  ), ) ", nil},
		{"compat missing hash", "b = 1;", driver.Options{Mode: parser.ModeCompat}, "", []string{"SYN2001 missing '#'!"}},
		{"missing semicolon", "# b = 1", driver.Options{}, "", []string{"SYN2004 missing ';'!"}},
		{"trailing newline", "# b = 1;\n", driver.Options{}, "start>( ( # b () = 1 ), ) ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := Eval(context.Background(), tt.line, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if reply.Rendering != tt.render {
				t.Errorf("rendering = %q, want %q", reply.Rendering, tt.render)
			}
			if diff := cmp.Diff(tt.errs, reply.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
