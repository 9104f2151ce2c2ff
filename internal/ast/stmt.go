package ast

import (
	"kangaroo/internal/source"
	"kangaroo/internal/token"
)

type StmtKind uint8

const (
	StmtBand StmtKind = iota
)

func (k StmtKind) String() string {
	switch k {
	case StmtBand:
		return "Band"
	}
	return "StmtKind(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// BandStmt - `# name (args) = value ;`.
// Marker is always a HASH token, Name always comes from an IDENT token.
type BandStmt struct {
	Marker token.Token
	Name   Identifier
	Args   []Identifier
	Value  ExprID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Bands *Arena[BandStmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Bands: NewArena[BandStmt](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBand allocates a band statement. Args are copied.
func (s *Stmts) NewBand(span source.Span, marker token.Token, name Identifier, args []Identifier, value ExprID) StmtID {
	payload := s.Bands.Allocate(BandStmt{
		Marker: marker,
		Name:   name,
		Args:   append([]Identifier(nil), args...),
		Value:  value,
	})
	return s.new(StmtBand, span, PayloadID(payload))
}

// Band returns the band payload for the given statement ID.
func (s *Stmts) Band(id StmtID) (*BandStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBand {
		return nil, false
	}
	return s.Bands.Get(uint32(stmt.Payload)), true
}
