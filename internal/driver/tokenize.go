package driver

import (
	"context"

	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/source"
	"kangaroo/internal/token"
	"kangaroo/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the whole file as one unit and collects tokens up to EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "tokenize")
	defer span.End("")

	fs := source.NewFileSet()
	file, err := loadFile(ctx, fs, path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter:   &diag.BagReporter{Bag: bag},
		Terminator: opts.Terminator,
	})
	tokens := lx.All()
	span.WithExtra("tokens", itoa(len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
