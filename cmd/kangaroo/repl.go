package main

import (
	"github.com/spf13/cobra"

	"kangaroo/internal/repl"
)

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Long:  `Read band declarations one line at a time and print their trees. Ctrl+D ends the session.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	cfg := s.replConfig(s.color.enabledFor(out))
	if shouldUseTUI(s.ui, in, out) {
		return runREPLWithUI(cmd.Context(), cfg, in, out)
	}
	return repl.Run(cmd.Context(), in, out, cfg)
}
