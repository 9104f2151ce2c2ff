package parser

import (
	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/token"
)

// parseCompat: Start → AwaitIdent → ScanToAssign → ScanToSemicolon → Done.
// Любая ошибка терминальна для всего блока.
func (p *Parser) parseCompat(block ast.BlockID) error {
	for !p.at(token.EOF) {
		stmt, err := p.parseStmtCompat()
		if err != nil {
			return err
		}
		p.arenas.PushStmt(block, stmt)
		p.advance() // ';'
	}
	return nil
}

func (p *Parser) parseStmtCompat() (ast.StmtID, *Error) {
	switch p.cur.Kind {
	case token.Hash:
		return p.parseBandCompat()
	default:
		return ast.NoStmtID, p.fail(diag.SynMissingHash, p.errSpan(), msgMissingHash)
	}
}

// parseBandCompat проходит args и value без разбора; Band получает пустые args
// и Placeholder в качестве значения.
func (p *Parser) parseBandCompat() (ast.StmtID, *Error) {
	marker := p.cur

	if p.peek.Kind != token.Ident {
		sp := p.peek.Span
		if sp.Empty() {
			sp = marker.Span.ZeroideToEnd()
		}
		return ast.NoStmtID, p.fail(diag.SynMissingIdentifier, sp, msgMissingIdentifier)
	}
	p.advance()
	name := p.parseIdent()

	for !p.at(token.Assign) {
		if p.at(token.Semicolon) || p.at(token.EOF) {
			return ast.NoStmtID, p.fail(diag.SynMissingAssign, p.errSpan(), msgMissingAssign)
		}
		p.advance()
	}
	assign := p.cur

	for !p.at(token.Semicolon) {
		if p.at(token.EOF) {
			return ast.NoStmtID, p.fail(diag.SynMissingSemicolon, p.errSpan(), msgMissingSemicolon)
		}
		p.advance()
	}

	valueSpan := assign.Span.ZeroideToEnd()
	valueSpan.End = p.cur.Span.Start
	value := p.arenas.Exprs.NewPlaceholder(valueSpan)
	return p.arenas.Stmts.NewBand(marker.Span.Cover(p.cur.Span), marker, name, nil, value), nil
}

// parseIdent wraps cur into an Identifier.
func (p *Parser) parseIdent() ast.Identifier {
	return ast.NewIdentifier(p.cur)
}
