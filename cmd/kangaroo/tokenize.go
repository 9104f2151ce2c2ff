package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kangaroo/internal/diagfmt"
	"kangaroo/internal/driver"
	"kangaroo/internal/observ"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.kg",
		Short: "Tokenize a kangaroo source file",
		Long:  `Tokenize breaks down a kangaroo source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	done := timer.Track("tokenize")
	result, err := driver.Tokenize(cmd.Context(), args[0], s.driverOptions())
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d tokens", len(result.Tokens)))

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   s.color.enabledFor(cmd.ErrOrStderr()),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	printTimings(cmd.ErrOrStderr(), s, timer)
	return err
}
