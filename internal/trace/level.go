package trace

import (
	"fmt"
	"strings"
)

// Level controls how much of the pipeline is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // зарезервирован: событий уровня ошибок в разборе нет
	LevelPhase        // команда и проходы драйвера (load, parse-lines, parse-dir)
	LevelDetail       // плюс каждая единица разбора
	LevelDebug        // плюс каждая полоса
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a --trace-level value. Matching ignores case.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeModule
	case LevelDebug:
		return true
	default:
		return false
	}
}
