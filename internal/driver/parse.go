package driver

import (
	"bytes"
	"context"
	"fmt"

	"fortio.org/safecast"

	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/parser"
	"kangaroo/internal/source"
	"kangaroo/internal/trace"
)

// UnitResult is the outcome of parsing one input unit: a line of a file,
// a REPL line, or an in-memory source.
type UnitResult struct {
	Line  int         // 1-based номер строки; 0 для цельного источника
	Span  source.Span // диапазон единицы в файле
	Blank bool        // пустая строка, разбор не запускался

	// Builder is nil for units restored from the disk cache.
	Builder *ast.Builder
	Block   ast.BlockID
	// Rendering is the display form of Block, empty when the parse failed.
	Rendering string
	Bag       *diag.Bag
	Err       error
}

// Failed reports whether the unit produced an error.
func (u *UnitResult) Failed() bool {
	return u.Err != nil || u.Bag.HasErrors()
}

// Tree returns the parsed tree when the unit still owns its nodes.
func (u *UnitResult) Tree() (parser.Tree, bool) {
	if u.Builder == nil || !u.Block.IsValid() {
		return parser.Tree{}, false
	}
	return parser.Tree{Builder: u.Builder, Block: u.Block}, true
}

// ParseSource parses text held in memory as a single unit.
func ParseSource(ctx context.Context, name, text string, opts Options) (*source.FileSet, UnitResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	file := fs.Get(id)
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, UnitResult{}, err
	}
	res, err := parseUnit(ctx, fs, file, 0, end, opts)
	return fs, res, err
}

// parseUnit runs the lexer and parser over file[start:end) with a fresh builder.
func parseUnit(ctx context.Context, fs *source.FileSet, file *source.File, start, end uint32, opts Options) (UnitResult, error) {
	res := UnitResult{
		Span: source.Span{File: file.ID, Start: start, End: end},
		Bag:  diag.NewBag(opts.MaxDiagnostics),
	}
	// в full-режиме восстановление может повторно сообщить об ошибке на том же месте
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})
	popts, err := opts.parserOptions(reporter)
	if err != nil {
		return res, err
	}

	_, span := trace.StartSpan(ctx, trace.ScopeModule, fmt.Sprintf("unit:%s:%d", file.Path, start))
	defer func() {
		span.WithExtra("errors", itoa(res.Bag.Len())).End(res.Rendering)
	}()

	lx := lexer.NewRange(file, start, end, opts.lexerOptions(reporter))
	res.Builder = ast.NewBuilder(ast.Hints{})
	out := parser.ParseFile(fs, lx, res.Builder, popts)
	res.Block = out.Block
	res.Err = out.Err
	if !res.Failed() && res.Block.IsValid() {
		res.Rendering = res.Builder.RenderBlock(res.Block)
	}

	if t := trace.FromContext(ctx); t.Level().ShouldEmit(trace.ScopeNode) {
		if tree, ok := res.Tree(); ok {
			for _, band := range tree.Bands() {
				trace.Point(t, trace.ScopeNode, "band", band.Name.Value, span.ID())
			}
		}
	}
	return res, nil
}

// isBlank reports whether b holds only whitespace.
func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
