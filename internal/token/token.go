package token

import (
	"kangaroo/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Asterisk, Slash, Percent:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is a punctuation token.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Plus, Minus, Asterisk, Slash, Percent, Hash, Dollar, Colon, Comma, Assign,
		LParen, RParen, LBrace, RBrace, Semicolon:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Text + ")"
}
