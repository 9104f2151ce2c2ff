package ast

import (
	"strings"
)

// RenderBlock produces the display form of a block:
//
//	start>( <stmt>, <stmt>, )
//
// The rendering is lossy and is not meant to be parsed back.
func (b *Builder) RenderBlock(id BlockID) string {
	var sb strings.Builder
	sb.WriteString("start>( ")
	if blk := b.Blocks.Get(id); blk != nil {
		for _, stmt := range blk.Stmts {
			sb.WriteString(b.RenderStmt(stmt))
			sb.WriteString(", ")
		}
	}
	sb.WriteString(") ")
	return sb.String()
}

// RenderStmt renders a single statement.
func (b *Builder) RenderStmt(id StmtID) string {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return ""
	}
	switch stmt.Kind {
	case StmtBand:
		band, _ := b.Stmts.Band(id)
		return b.renderBand(band)
	}
	return ""
}

func (b *Builder) renderBand(band *BandStmt) string {
	var sb strings.Builder
	sb.WriteString("( ")
	sb.WriteString(band.Marker.Text)
	sb.WriteByte(' ')
	sb.WriteString(band.Name.Value)
	sb.WriteString(" (")
	for _, arg := range band.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.Value)
		sb.WriteByte(' ')
	}
	sb.WriteString(") = ")
	sb.WriteString(b.RenderExpr(band.Value))
	sb.WriteString(" )")
	return sb.String()
}

// RenderExpr renders an expression; Placeholder renders as "".
func (b *Builder) RenderExpr(id ExprID) string {
	var sb strings.Builder
	b.renderExpr(&sb, id)
	return sb.String()
}

func (b *Builder) renderExpr(sb *strings.Builder, id ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ExprPlaceholder:
	case ExprIdent:
		data, _ := b.Exprs.Ident(id)
		sb.WriteString(data.Name.Value)
	case ExprNumber:
		data, _ := b.Exprs.Number(id)
		sb.WriteString(data.Literal.Text)
	case ExprBinary:
		data, _ := b.Exprs.Binary(id)
		sb.WriteByte('(')
		b.renderExpr(sb, data.Left)
		sb.WriteByte(' ')
		sb.WriteString(data.Op.String())
		sb.WriteByte(' ')
		b.renderExpr(sb, data.Right)
		sb.WriteByte(')')
	case ExprUnary:
		data, _ := b.Exprs.Unary(id)
		sb.WriteByte('(')
		sb.WriteString(data.Op.String())
		b.renderExpr(sb, data.Operand)
		sb.WriteByte(')')
	case ExprGroup:
		data, _ := b.Exprs.Group(id)
		b.renderExpr(sb, data.Inner)
	}
}
