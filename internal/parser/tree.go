package parser

import (
	"kangaroo/internal/ast"
)

// Tree is a parsed block together with the builder that owns its nodes.
type Tree struct {
	Builder *ast.Builder
	Block   ast.BlockID
}

// String renders the block in display form.
func (t Tree) String() string {
	if t.Builder == nil {
		return ""
	}
	return t.Builder.RenderBlock(t.Block)
}

// Bands returns the band payloads of the block in source order.
func (t Tree) Bands() []*ast.BandStmt {
	if t.Builder == nil {
		return nil
	}
	blk := t.Builder.Blocks.Get(t.Block)
	if blk == nil {
		return nil
	}
	out := make([]*ast.BandStmt, 0, len(blk.Stmts))
	for _, id := range blk.Stmts {
		if band, ok := t.Builder.Stmts.Band(id); ok {
			out = append(out, band)
		}
	}
	return out
}
