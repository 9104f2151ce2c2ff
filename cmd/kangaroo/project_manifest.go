package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
)

const manifestName = "kangaroo.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Parse parseConfig `toml:"parse"`
	REPL  replConfig  `toml:"repl"`
}

type parseConfig struct {
	Mode       string `toml:"mode"`
	Terminator string `toml:"terminator"`
	MaxErrors  int    `toml:"max_errors"`
}

type replConfig struct {
	Prompt string `toml:"prompt"`
	UI     string `toml:"ui"`
}

// isDefined reports whether the manifest sets key explicitly.
func (m *projectManifest) isDefined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest finds kangaroo.toml above startDir. A missing manifest is not an error.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := loadManifestFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func loadManifestFile(path string) (*projectManifest, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("parse", "mode") {
		if _, err := parser.ParseMode(cfg.Parse.Mode); err != nil {
			return nil, fmt.Errorf("%s: [parse].mode: %w", path, err)
		}
	}
	if meta.IsDefined("parse", "terminator") {
		if _, err := lexer.ParseTerminator(cfg.Parse.Terminator); err != nil {
			return nil, fmt.Errorf("%s: [parse].terminator: %w", path, err)
		}
	}
	if meta.IsDefined("parse", "max_errors") && cfg.Parse.MaxErrors < 0 {
		return nil, fmt.Errorf("%s: [parse].max_errors must not be negative", path)
	}
	if meta.IsDefined("repl", "ui") {
		if _, err := readUIMode(cfg.REPL.UI); err != nil {
			return nil, fmt.Errorf("%s: [repl].ui: %w", path, err)
		}
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}
