package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version information for the kangaroo CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.0.1"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgYellow, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

// Banner is the first line printed by the interactive shell.
func Banner() string {
	return "Kangaroo v" + Version
}

// Colored returns Banner with terminal colors. color.NoColor decides
// whether escapes are actually emitted.
func Colored() string {
	return nameColor.Sprint("Kangaroo") + " " + versionColor.Sprint("v"+Version)
}

// Long returns the version line with optional build metadata.
func Long() string {
	out := Banner()
	if GitCommit != "" {
		out += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildDate != "" {
		out += " built " + BuildDate
	}
	return out
}
