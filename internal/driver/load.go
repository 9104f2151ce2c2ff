package driver

import (
	"context"
	"fmt"
	"strconv"

	"kangaroo/internal/diag"
	"kangaroo/internal/source"
	"kangaroo/internal/trace"
)

// LoadError reports a source file that could not be read.
// It unwraps to the underlying os error.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s failed to load file %s: %v", e.Code().ID(), e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Code is always diag.IOLoadFileError.
func (e *LoadError) Code() diag.Code { return diag.IOLoadFileError }

func loadFile(ctx context.Context, fs *source.FileSet, path string) (*source.File, error) {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "load")
	defer span.End(path)

	id, err := fs.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return fs.Get(id), nil
}

func itoa(n int) string { return strconv.Itoa(n) }
