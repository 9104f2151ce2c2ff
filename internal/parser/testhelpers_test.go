package parser

import (
	"fmt"
	"strings"
	"testing"

	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/source"
)

type parsed struct {
	fs   *source.FileSet
	tree Tree
	bag  *diag.Bag
	res  Result
}

func parseInput(t *testing.T, src string, opts Options, term lexer.Terminator) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kg", []byte(src))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}, Terminator: term})
	builder := ast.NewBuilder(ast.Hints{})
	opts.Reporter = &diag.BagReporter{Bag: bag}
	res := ParseFile(fs, lx, builder, opts)
	return parsed{fs: fs, tree: Tree{Builder: builder, Block: res.Block}, bag: bag, res: res}
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}
