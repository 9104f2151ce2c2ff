package lexer

import (
	"kangaroo/internal/source"
	"kangaroo/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена

	// состояние для синтетического терминатора
	emitted    bool       // был ли выдан хотя бы один значимый токен
	lastKind   token.Kind // вид последнего выданного значимого токена
	terminated bool       // синтетический ';' уже выдан
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange creates a lexer bounded to the byte range [start, end) of file.
// Spans still refer to absolute offsets in the file.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewRangeCursor(file, start, end),
		opts:   opts,
	}
}

// Next возвращает следующий токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		if lx.needTerminator() {
			lx.terminated = true
			lx.lastKind = token.Semicolon
			return token.Token{Kind: token.Semicolon, Span: lx.emptySpan(), Text: ";"}
		}
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Text: ""}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdent()

	case ch >= utf8RuneSelf:
		// Unicode: буква → идентификатор, иначе Undefined
		tok = lx.scanIdent()

	case isDec(ch):
		tok = lx.scanNumber()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	lx.emitted = true
	lx.lastKind = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer and returns every token including the final EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 16)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) needTerminator() bool {
	if lx.terminated {
		return false
	}
	switch lx.opts.Terminator {
	case TerminatorAlways:
		return true
	case TerminatorAuto:
		return lx.emitted && lx.lastKind != token.Semicolon
	default:
		return false
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
