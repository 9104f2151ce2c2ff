package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"kangaroo/internal/version"
)

// errTooManyArgs is printed when the root command gets more than one file.
var errTooManyArgs = errors.New("Problem passing arguments: Too many arguments") //nolint:staticcheck // текст сообщения фиксирован

// exitError carries an exit code after diagnostics were already printed.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kangaroo [file.kg]",
		Short: "Kangaroo band language front end",
		Long: `Kangaroo parses band declarations: # name(args) = expr;

Without arguments it starts the interactive shell. With one file it parses
the file line by line and prints each line's tree or its diagnostics.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE:          runRoot,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per line (0 = unlimited)")
	pf.String("mode", "full", "grammar (full|compat)")
	pf.String("terminator", "auto", "append ';' to every line (none|auto|always)")
	pf.String("ui", "auto", "interactive UI (auto|on|off)")
	pf.String("config", "", "path to kangaroo.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "write trace events to file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newREPLCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return runREPL(cmd)
	case 1:
		return runBatch(cmd, args[0])
	default:
		return errTooManyArgs
	}
}

// execute runs the CLI with the given arguments and streams and returns the exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	var cleanups []func()
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProf)
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTrace)
		return nil
	}

	err := root.ExecuteContext(context.Background())
	// PersistentPostRun не вызывается при ошибке, поэтому закрываем здесь, в обратном порядке
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(errOut, err)
	return 1
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a terminal file.
func isTerminalWriter(w any) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
