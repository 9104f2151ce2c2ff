package driver

import (
	"context"

	"kangaroo/internal/diag"
	"kangaroo/internal/source"
	"kangaroo/internal/trace"
)

// FileResult holds the per-line units of one file.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Units   []UnitResult
	Cached  bool  // результат взят из DiskCache
	Err     error // ошибка загрузки (только ParseDir)
}

// Diagnostics merges the diagnostics of all units in source order.
func (r *FileResult) Diagnostics() *diag.Bag {
	out := diag.NewBag(0)
	for i := range r.Units {
		out.Merge(r.Units[i].Bag)
	}
	out.Sort()
	return out
}

// Failed counts units that ended with an error.
func (r *FileResult) Failed() int {
	n := 0
	for i := range r.Units {
		if r.Units[i].Failed() {
			n++
		}
	}
	return n
}

// ParseLines loads path and parses every line as an independent unit.
// Errors on one line do not stop the following lines.
func ParseLines(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	return parseLinesIn(ctx, fs, file, opts)
}

func parseLinesIn(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*FileResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse-lines")
	defer span.End(file.Path)

	res := &FileResult{Path: file.Path, FileSet: fs, File: file}

	var key CacheKey
	if opts.Cache != nil {
		key = opts.Cache.Key(file.Hash, opts)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Units = payloadToUnits(&payload, file, opts.MaxDiagnostics)
			res.Cached = true
			span.WithExtra("cache", "hit")
			return res, nil
		}
		span.WithExtra("cache", "miss")
	}

	n := file.LineCount()
	res.Units = make([]UnitResult, 0, n)
	for line := 1; line <= n; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start, end, _ := file.LineRange(line)
		if isBlank(file.Content[start:end]) {
			res.Units = append(res.Units, UnitResult{
				Line:  line,
				Span:  source.Span{File: file.ID, Start: start, End: end},
				Blank: true,
			})
			continue
		}
		unit, err := parseUnit(ctx, fs, file, start, end, opts)
		if err != nil {
			return nil, err
		}
		unit.Line = line
		res.Units = append(res.Units, unit)
	}
	span.WithExtra("lines", itoa(n)).WithExtra("failed", itoa(res.Failed()))

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, unitsToPayload(file.Path, res.Units)); err != nil {
			// кэш необязателен, разбор уже готов
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache-write-failed", err.Error(), span.ID())
		}
	}
	return res, nil
}
