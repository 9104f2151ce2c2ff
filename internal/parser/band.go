package parser

import (
	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/token"
)

// parseBlock - основной цикл полного режима: пока не EOF - parseStmt,
// после ошибки resync. Разбор всегда доходит до конца.
func (p *Parser) parseBlock(block ast.BlockID) {
	for !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resync()
			continue
		}
		p.arenas.PushStmt(block, stmt)
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.cur.Kind {
	case token.Hash:
		return p.parseBand()
	default:
		p.fail(diag.SynMissingHash, p.errSpan(), msgMissingHash)
		return ast.NoStmtID, false
	}
}

// parseBand: # IDENT [ "(" [ IDENT { "," IDENT } ] ")" ] "=" expr ";"
func (p *Parser) parseBand() (ast.StmtID, bool) {
	marker := p.advance()

	if !p.at(token.Ident) {
		p.fail(diag.SynMissingIdentifier, p.errSpan(), msgMissingIdentifier)
		return ast.NoStmtID, false
	}
	name := p.parseIdent()
	p.advance()

	var args []ast.Identifier
	if p.at(token.LParen) {
		var ok bool
		if args, ok = p.parseArgs(); !ok {
			return ast.NoStmtID, false
		}
	}

	if !p.at(token.Assign) {
		p.fail(diag.SynMissingAssign, p.errSpan(), msgMissingAssign)
		return ast.NoStmtID, false
	}
	p.advance()

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	if !p.at(token.Semicolon) {
		p.fail(diag.SynMissingSemicolon, p.errSpan(), msgMissingSemicolon)
		return ast.NoStmtID, false
	}
	semi := p.advance()

	return p.arenas.Stmts.NewBand(marker.Span.Cover(semi.Span), marker, name, args, value), true
}

// parseArgs: "(" [ IDENT { "," IDENT } ] ")"
func (p *Parser) parseArgs() ([]ast.Identifier, bool) {
	open := p.advance()
	args := make([]ast.Identifier, 0, 2)

	if p.at(token.RParen) {
		p.advance()
		return args, true
	}

	for {
		if !p.at(token.Ident) {
			p.fail(diag.SynExpectArgument, p.errSpan(), msgExpectArgument)
			return nil, false
		}
		args = append(args, p.parseIdent())
		p.advance()

		switch {
		case p.at(token.Comma):
			p.advance()
		case p.at(token.RParen):
			p.advance()
			return args, true
		default:
			p.unclosed(open)
			return nil, false
		}
	}
}

func (p *Parser) unclosed(open token.Token) {
	p.fail(diag.SynUnclosedParen, p.errSpan(), msgUnclosedParen,
		diag.Note{Span: open.Span, Msg: "'(' opened here"})
}

// resync - восстановление после ошибки: прокручиваем до ';' (и съедаем его),
// до начала следующего band ('#') или до EOF.
func (p *Parser) resync() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.at(token.Hash) {
			return
		}
		p.advance()
	}
}
