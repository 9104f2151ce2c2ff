package diagfmt

import (
	"fmt"
	"io"

	"kangaroo/internal/ast"
	"kangaroo/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// FormatASTPretty печатает блок деревом.
func FormatASTPretty(w io.Writer, builder *ast.Builder, blockID ast.BlockID, fs *source.FileSet) error {
	if builder.Blocks.Get(blockID) == nil {
		return fmt.Errorf("block %d not found", blockID)
	}
	root := buildBlockTreeNode(builder, blockID, fs)
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	writeTree(w, root, "")
	return nil
}

// FormatASTDisplay печатает отображение блока (start>( ... ) ).
func FormatASTDisplay(w io.Writer, builder *ast.Builder, blockID ast.BlockID) error {
	_, err := fmt.Fprintln(w, builder.RenderBlock(blockID))
	return err
}

// BuildASTOutput converts a block into its JSON tree without serializing it.
func BuildASTOutput(builder *ast.Builder, blockID ast.BlockID) (ASTNodeOutput, error) {
	blk := builder.Blocks.Get(blockID)
	if blk == nil {
		return ASTNodeOutput{}, fmt.Errorf("block %d not found", blockID)
	}
	children := make([]ASTNodeOutput, 0, len(blk.Stmts))
	for _, stmtID := range blk.Stmts {
		children = append(children, stmtJSON(builder, stmtID))
	}
	return ASTNodeOutput{
		Type:     "Block",
		Span:     blk.Span,
		Children: children,
	}, nil
}

func stmtJSON(builder *ast.Builder, stmtID ast.StmtID) ASTNodeOutput {
	stmt := builder.Stmts.Get(stmtID)
	out := ASTNodeOutput{Type: "Stmt", Kind: stmt.Kind.String(), Span: stmt.Span}
	switch stmt.Kind {
	case ast.StmtBand:
		band, _ := builder.Stmts.Band(stmtID)
		args := make([]string, 0, len(band.Args))
		for _, a := range band.Args {
			args = append(args, a.Value)
		}
		out.Fields = map[string]any{
			"name": band.Name.Value,
			"args": args,
		}
		out.Children = []ASTNodeOutput{exprJSON(builder, band.Value)}
	}
	return out
}

func exprJSON(builder *ast.Builder, exprID ast.ExprID) ASTNodeOutput {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "None"}
	}
	out := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := builder.Exprs.Ident(exprID)
		out.Text = data.Name.Value
	case ast.ExprNumber:
		data, _ := builder.Exprs.Number(exprID)
		out.Text = data.Literal.Text
	case ast.ExprBinary:
		data, _ := builder.Exprs.Binary(exprID)
		out.Fields = map[string]any{"op": data.Op.String()}
		out.Children = []ASTNodeOutput{exprJSON(builder, data.Left), exprJSON(builder, data.Right)}
	case ast.ExprUnary:
		data, _ := builder.Exprs.Unary(exprID)
		out.Fields = map[string]any{"op": data.Op.String()}
		out.Children = []ASTNodeOutput{exprJSON(builder, data.Operand)}
	case ast.ExprGroup:
		data, _ := builder.Exprs.Group(exprID)
		out.Children = []ASTNodeOutput{exprJSON(builder, data.Inner)}
	}
	return out
}
