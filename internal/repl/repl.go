package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"kangaroo/internal/driver"
	"kangaroo/internal/version"
)

// DefaultPrompt is printed before every line.
const DefaultPrompt = ">>> "

// maxLineBytes caps one input line; longer lines end the session with an error.
const maxLineBytes = 1 << 20

// Config configures an interactive session.
type Config struct {
	Prompt  string
	Options driver.Options
	Color   bool
}

// Run reads lines from in until EOF and answers each one on out.
// A failing line prints its diagnostics and the session goes on.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	errColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)
	if cfg.Color {
		errColor.EnableColor()
		okColor.EnableColor()
	} else {
		errColor.DisableColor()
		okColor.DisableColor()
	}

	banner := version.Banner()
	if cfg.Color {
		banner = version.Colored()
	}
	if _, err := fmt.Fprintf(out, "%s\nWelcome!\n", banner); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		if _, err := io.WriteString(out, prompt); err != nil {
			return err
		}
		if !sc.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		reply, err := Eval(ctx, line, cfg.Options)
		if err != nil {
			return err
		}
		if reply.OK() {
			if _, err := okColor.Fprintln(out, reply.Rendering); err != nil {
				return err
			}
			continue
		}
		for _, msg := range reply.Errors {
			if _, err := errColor.Fprintln(out, msg); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err := io.WriteString(out, "\n")
	return err
}
