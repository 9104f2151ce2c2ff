package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kangaroo/internal/driver"
	"kangaroo/internal/observ"
)

// runBatch parses one file line by line and prints each rendering,
// or the line's diagnostics on stderr.
func runBatch(cmd *cobra.Command, path string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	timer := observ.NewTimer()
	defer printTimings(cmd.ErrOrStderr(), s, timer)

	done := timer.Track("parse")
	res, err := driver.ParseLines(cmd.Context(), path, s.driverOptions())
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	done(fmt.Sprintf("%d lines", len(res.Units)))

	po := newParseOutput(cmd, s, "display")
	failed, err := po.writeFile(res)
	if err != nil {
		return err
	}
	if failed > 0 {
		return exitError{code: 1}
	}
	return nil
}
