package lexer

import (
	"fmt"

	"kangaroo/internal/diag"
	"kangaroo/internal/source"
)

// Terminator controls whether the lexer synthesizes a trailing SEMICOLON
// before EOF. Drivers use it to let a line end a band without an explicit ';'.
type Terminator uint8

const (
	// TerminatorNone never synthesizes a terminator.
	TerminatorNone Terminator = iota
	// TerminatorAuto synthesizes one only when the unit has tokens and the
	// last of them is not already a SEMICOLON.
	TerminatorAuto
	// TerminatorAlways synthesizes exactly one terminator per unit.
	TerminatorAlways
)

func (t Terminator) String() string {
	switch t {
	case TerminatorNone:
		return "none"
	case TerminatorAuto:
		return "auto"
	case TerminatorAlways:
		return "always"
	}
	return "unknown"
}

// ParseTerminator parses the textual form used by flags and kangaroo.toml.
func ParseTerminator(s string) (Terminator, error) {
	switch s {
	case "", "none":
		return TerminatorNone, nil
	case "auto":
		return TerminatorAuto, nil
	case "always":
		return TerminatorAlways, nil
	}
	return TerminatorNone, fmt.Errorf("unknown terminator policy %q (want none|auto|always)", s)
}

type Options struct {
	Reporter   diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	Terminator Terminator
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
