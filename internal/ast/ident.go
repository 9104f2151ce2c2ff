package ast

import "kangaroo/internal/token"

// Identifier is a leaf node; Value always equals Literal.Text.
type Identifier struct {
	Literal token.Token
	Value   string
}

// NewIdentifier wraps an IDENT token.
func NewIdentifier(tok token.Token) Identifier {
	return Identifier{Literal: tok, Value: tok.Text}
}

func (id Identifier) String() string {
	return id.Value
}
