package lexer

import (
	"fmt"

	"kangaroo/internal/diag"
	"kangaroo/internal/token"
)

// scanOperatorOrPunct: односимвольная пунктуация и "//".
// "//" не комментарий, а неявный терминатор: SEMICOLON с текстом "//".
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return emit(token.Semicolon)
	}

	ch := lx.cursor.Peek()
	if ch == '/' {
		lx.cursor.Bump()
		return emit(token.Slash)
	}
	if k, ok := token.LookupPunct(ch); ok {
		lx.cursor.Bump()
		return emit(k)
	}
	return lx.scanUndefined()
}

// scanUndefined поглощает одну руну целиком и репортит LEX1001.
// Лексинг продолжается.
func (lx *Lexer) scanUndefined() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.report(diag.LexUndefinedChar, sp, fmt.Sprintf("undefined character '%s'", text))
	return token.Token{Kind: token.Undefined, Span: sp, Text: text}
}
