package ast

import (
	"kangaroo/internal/source"
)

// Block is the ordered list of statements produced by one parse call.
type Block struct {
	Span  source.Span
	Stmts []StmtID
}

type Blocks struct {
	Arena *Arena[Block]
}

func NewBlocks(capHint uint) *Blocks {
	return &Blocks{
		Arena: NewArena[Block](capHint),
	}
}

func (b *Blocks) New(sp source.Span) BlockID {
	return BlockID(b.Arena.Allocate(Block{
		Span:  sp,
		Stmts: make([]StmtID, 0),
	}))
}

func (b *Blocks) Get(id BlockID) *Block {
	return b.Arena.Get(uint32(id))
}
