package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kangaroo/internal/driver"
	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
	"kangaroo/internal/repl"
)

// settings are the effective options: flags override kangaroo.toml,
// which overrides the defaults.
type settings struct {
	mode           parser.Mode
	terminator     lexer.Terminator
	maxDiagnostics int
	prompt         string
	ui             uiMode
	color          colorMode
	quiet          bool
	timings        bool
	manifest       *projectManifest
}

func (s settings) driverOptions() driver.Options {
	return driver.Options{
		Mode:           s.mode,
		Terminator:     s.terminator,
		MaxDiagnostics: s.maxDiagnostics,
	}
}

func (s settings) replConfig(color bool) repl.Config {
	return repl.Config{
		Prompt:  s.prompt,
		Options: s.driverOptions(),
		Color:   color,
	}
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()

	manifest, err := manifestFor(cmd)
	if err != nil {
		return settings{}, err
	}

	// флаг, если задан явно, иначе манифест, иначе дефолт флага
	pick := func(flag, fromManifest string, key ...string) (string, error) {
		value, err := flags.GetString(flag)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		if !flags.Changed(flag) && manifest.isDefined(key...) {
			value = fromManifest
		}
		return value, nil
	}
	var cfg projectConfig
	if manifest != nil {
		cfg = manifest.Config
	}

	var s settings
	s.manifest = manifest

	modeStr, err := pick("mode", cfg.Parse.Mode, "parse", "mode")
	if err != nil {
		return s, err
	}
	if s.mode, err = parser.ParseMode(modeStr); err != nil {
		return s, err
	}

	termStr, err := pick("terminator", cfg.Parse.Terminator, "parse", "terminator")
	if err != nil {
		return s, err
	}
	if s.terminator, err = lexer.ParseTerminator(termStr); err != nil {
		return s, err
	}

	uiStr, err := pick("ui", cfg.REPL.UI, "repl", "ui")
	if err != nil {
		return s, err
	}
	if s.ui, err = readUIMode(uiStr); err != nil {
		return s, err
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && manifest.isDefined("parse", "max_errors") {
		s.maxDiagnostics = cfg.Parse.MaxErrors
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must not be negative")
	}

	s.prompt = repl.DefaultPrompt
	if manifest.isDefined("repl", "prompt") {
		s.prompt = cfg.REPL.Prompt
	}

	colorStr, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.color, err = readColorMode(colorStr); err != nil {
		return s, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

func manifestFor(cmd *cobra.Command) (*projectManifest, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return loadManifestFile(path)
	}
	manifest, _, err := loadProjectManifest(".")
	return manifest, err
}
