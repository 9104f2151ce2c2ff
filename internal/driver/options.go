package driver

import (
	"fmt"

	"fortio.org/safecast"

	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
)

// Options configures every parse unit produced by the driver.
type Options struct {
	Mode           parser.Mode
	Terminator     lexer.Terminator
	MaxDiagnostics int        // на одну единицу разбора, 0 - без ограничения
	Cache          *DiskCache // nil отключает кэш
	// Progress receives per-file events from ParseDir.
	Progress ProgressSink
}

// fingerprint identifies the options that change parse output.
// It is mixed into cache keys.
func (o Options) fingerprint() string {
	return fmt.Sprintf("mode=%s;terminator=%s;max=%d", o.Mode, o.Terminator, o.MaxDiagnostics)
}

func (o Options) lexerOptions(r diag.Reporter) lexer.Options {
	lo := lexer.Options{Terminator: o.Terminator}
	// compat-разбор не знает про LEX-диагностики: неизвестный символ
	// просто не совпадёт с ожидаемым токеном
	if o.Mode == parser.ModeFull {
		lo.Reporter = r
	}
	return lo
}

func (o Options) parserOptions(r diag.Reporter) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxDiagnostics, 0))
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		Mode:      o.Mode,
		MaxErrors: maxErrors,
		Reporter:  r,
	}, nil
}
