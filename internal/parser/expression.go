package parser

import (
	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precAdditive)
}

// parseBinaryExpr - precedence climbing; minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := binaryPrec(p.cur.Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOp(opTok.Kind), left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает префиксные + и -
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	op, isUnary := unaryOp(p.cur.Kind)
	if !isUnary {
		return p.parsePrimaryExpr()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parsePrimaryExpr: IDENT | NUMBER | "(" expr ")"
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch p.cur.Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, ast.NewIdentifier(tok)), true

	case token.Number:
		tok := p.advance()
		return p.arenas.Exprs.NewNumber(tok.Span, tok), true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.RParen) {
			p.unclosed(open)
			return ast.NoExprID, false
		}
		closing := p.advance()
		return p.arenas.Exprs.NewGroup(open.Span.Cover(closing.Span), inner), true

	default:
		p.fail(diag.SynExpectExpression, p.errSpan(), msgExpectExpression)
		return ast.NoExprID, false
	}
}
