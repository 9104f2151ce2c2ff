package ast

import (
	"kangaroo/internal/source"
)

type Hints struct{ Blocks, Stmts, Exprs uint }

// Builder owns every arena of one parse. Nodes are never shared between builders.
type Builder struct {
	Blocks *Blocks
	Stmts  *Stmts
	Exprs  *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Blocks == 0 {
		hints.Blocks = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 4
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 5
	}
	return &Builder{
		Blocks: NewBlocks(hints.Blocks),
		Stmts:  NewStmts(hints.Stmts),
		Exprs:  NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewBlock(sp source.Span) BlockID {
	return b.Blocks.New(sp)
}

func (b *Builder) PushStmt(block BlockID, stmt StmtID) {
	blk := b.Blocks.Get(block)
	if blk == nil {
		return
	}
	blk.Stmts = append(blk.Stmts, stmt)
	if s := b.Stmts.Get(stmt); s != nil {
		if len(blk.Stmts) == 1 {
			blk.Span = s.Span
		} else {
			blk.Span = blk.Span.Cover(s.Span)
		}
	}
}
