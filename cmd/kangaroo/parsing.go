package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kangaroo/internal/diag"
	"kangaroo/internal/diagfmt"
	"kangaroo/internal/driver"
	"kangaroo/internal/observ"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.kg|directory>",
		Short: "Parse a kangaroo source file or directory line by line",
		Long: `Parse treats every line as its own unit and prints its tree. With a
directory it parses all *.kg files in parallel.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "display", "output format (display|tree|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse results from the on-disk cache (display format only)")
	cmd.Flags().Bool("cache-clear", false, "drop every cached unit before parsing")
	return cmd
}

type parseOutput struct {
	format string
	quiet  bool
	pretty diagfmt.PrettyOpts
	out    io.Writer
	errOut io.Writer
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "display", "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache && format != "display" {
		return fmt.Errorf("--cache requires --format display")
	}
	clearCache, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return fmt.Errorf("failed to get cache-clear flag: %w", err)
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	opts := s.driverOptions()
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("kangaroo")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	po := newParseOutput(cmd, s, format)
	timer := observ.NewTimer()
	defer printTimings(cmd.ErrOrStderr(), s, timer)

	// Проверяем, файл это или директория
	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []driver.FileResult
	if st.IsDir() {
		done := timer.Track("parse-dir")
		if shouldUseTUI(s.ui, cmd.InOrStdin(), cmd.OutOrStdout()) {
			_, results, err = runParseDirWithUI(cmd.Context(), args[0], opts, jobs, cmd.OutOrStdout())
		} else {
			_, results, err = driver.ParseDir(cmd.Context(), args[0], opts, jobs)
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		done(fmt.Sprintf("%d files", len(results)))
	} else {
		done := timer.Track("parse")
		res, err := driver.ParseLines(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = []driver.FileResult{*res}
		note := fmt.Sprintf("%d lines", len(res.Units))
		if res.Cached {
			note += ", cached"
		}
		done(note)
	}

	failed, err := po.writeResults(results, st.IsDir())
	if err != nil {
		return err
	}
	if failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

func newParseOutput(cmd *cobra.Command, s settings, format string) *parseOutput {
	return &parseOutput{
		format: format,
		quiet:  s.quiet,
		pretty: diagfmt.PrettyOpts{
			Color:     s.color.enabledFor(cmd.ErrOrStderr()),
			Context:   0,
			ShowNotes: true,
		},
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
}

// writeResults prints every file and returns the number of failed units.
func (po *parseOutput) writeResults(results []driver.FileResult, withHeaders bool) (int, error) {
	failed := 0
	if po.format == "json" {
		output := make([]fileJSON, 0, len(results))
		for i := range results {
			output = append(output, po.fileJSON(&results[i]))
			failed += results[i].Failed()
		}
		encoder := json.NewEncoder(po.out)
		encoder.SetIndent("", "  ")
		return failed, encoder.Encode(output)
	}

	for i := range results {
		r := &results[i]
		if withHeaders && !po.quiet {
			if _, err := fmt.Fprintf(po.out, "== %s ==\n", r.Path); err != nil {
				return failed, err
			}
		}
		if r.Err != nil {
			fmt.Fprintln(po.errOut, r.Err)
			failed++
			continue
		}
		n, err := po.writeFile(r)
		failed += n
		if err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// writeFile prints each unit of one file: the tree on stdout, diagnostics on stderr.
func (po *parseOutput) writeFile(r *driver.FileResult) (int, error) {
	failed := 0
	for i := range r.Units {
		u := &r.Units[i]
		if u.Blank {
			continue
		}
		if u.Failed() {
			failed++
			switch {
			case u.Bag.Len() > 0 && po.quiet:
				fmt.Fprintln(po.errOut, diag.FormatShortDiagnostics(u.Bag.Items(), r.FileSet, false))
			case u.Bag.Len() > 0:
				diagfmt.Pretty(po.errOut, u.Bag, r.FileSet, po.pretty)
			case u.Err != nil:
				fmt.Fprintf(po.errOut, "%s:%d: %v\n", r.Path, u.Line, u.Err)
			}
		}
		if err := po.writeUnit(r, u); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func (po *parseOutput) writeUnit(r *driver.FileResult, u *driver.UnitResult) error {
	switch po.format {
	case "tree":
		tree, ok := u.Tree()
		if !ok {
			return nil
		}
		if !po.quiet {
			if _, err := fmt.Fprintf(po.out, "line %d:\n", u.Line); err != nil {
				return err
			}
		}
		return diagfmt.FormatASTPretty(po.out, tree.Builder, tree.Block, r.FileSet)
	default:
		if u.Failed() {
			return nil
		}
		_, err := fmt.Fprintln(po.out, u.Rendering)
		return err
	}
}

type lineJSON struct {
	Line        int                      `json:"line"`
	AST         *diagfmt.ASTNodeOutput   `json:"ast,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
}

type fileJSON struct {
	Path  string     `json:"path"`
	Error string     `json:"error,omitempty"`
	Lines []lineJSON `json:"lines"`
}

func (po *parseOutput) fileJSON(r *driver.FileResult) fileJSON {
	out := fileJSON{Path: r.Path, Lines: []lineJSON{}}
	if r.Err != nil {
		out.Error = r.Err.Error()
		return out
	}
	for i := range r.Units {
		u := &r.Units[i]
		if u.Blank {
			continue
		}
		line := lineJSON{Line: u.Line}
		if tree, ok := u.Tree(); ok {
			if node, err := diagfmt.BuildASTOutput(tree.Builder, tree.Block); err == nil {
				line.AST = &node
			}
		}
		if u.Bag.Len() > 0 {
			line.Diagnostics = diagfmt.BuildDiagnosticsOutput(u.Bag, r.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}).Diagnostics
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}
