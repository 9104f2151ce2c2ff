package diagfmt

import (
	"fmt"

	"kangaroo/internal/source"
)

// PathMode selects how a diagnostic names its .kg file.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // короткий путь как есть, длинный абсолютный → basename
	PathModeAbsolute
	PathModeRelative // относительно FileSet.BaseDir, т.е. каталога parse <dir>
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

// PrettyOpts configures the human-readable output on stderr.
type PrettyOpts struct {
	Color     bool
	Context   int // строк исходника перед строкой с ошибкой
	PathMode  PathMode
	ShowNotes bool // печатать "note:" строки, например где открыта скобка
}

// JSONOpts configures the diagnostics embedded into parse --format json.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // режет только вывод, Bag не трогает
	IncludeNotes     bool
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	if int(mode) >= len(pathModeNames) {
		mode = PathModeAuto
	}
	return f.FormatPath(pathModeNames[mode], base)
}

// formatSpan renders "line:col-line:col", or "span(start-end)" when the file is unknown.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
