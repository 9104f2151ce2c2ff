package main

import (
	"fmt"
	"io"

	"kangaroo/internal/observ"
)

// printTimings writes the phase summary when --timings is set.
func printTimings(out io.Writer, s settings, timer *observ.Timer) {
	if !s.timings || out == nil {
		return
	}
	if err := timer.WriteSummary(out); err != nil {
		fmt.Fprintf(out, "timings: %v\n", err)
	}
}
