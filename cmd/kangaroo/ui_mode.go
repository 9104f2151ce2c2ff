package main

import (
	"fmt"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides on the full-screen UI; auto needs both ends to be terminals.
func shouldUseTUI(mode uiMode, in, out any) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminalWriter(in) && isTerminalWriter(out)
	}
}

type colorMode string

func readColorMode(value string) (colorMode, error) {
	switch v := strings.TrimSpace(strings.ToLower(value)); v {
	case "", "auto":
		return "auto", nil
	case "on", "off":
		return colorMode(v), nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// enabledFor resolves auto against the concrete output.
func (m colorMode) enabledFor(w any) bool {
	switch m {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminalWriter(w)
	}
}
