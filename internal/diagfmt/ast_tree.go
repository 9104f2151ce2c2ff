package diagfmt

import (
	"fmt"
	"io"

	"kangaroo/internal/ast"
	"kangaroo/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string) *treeNode {
	child := &treeNode{label: label}
	n.children = append(n.children, child)
	return child
}

func buildBlockTreeNode(builder *ast.Builder, blockID ast.BlockID, fs *source.FileSet) *treeNode {
	blk := builder.Blocks.Get(blockID)
	if blk == nil {
		return &treeNode{label: fmt.Sprintf("Block[%d]: <nil>", blockID)}
	}
	root := &treeNode{label: fmt.Sprintf("Block (span: %s)", formatSpan(blk.Span, fs))}
	for idx, stmtID := range blk.Stmts {
		root.children = append(root.children, buildStmtTreeNode(builder, stmtID, fs, idx))
	}
	return root
}

func buildStmtTreeNode(builder *ast.Builder, stmtID ast.StmtID, fs *source.FileSet, idx int) *treeNode {
	stmt := builder.Stmts.Get(stmtID)
	if stmt == nil {
		return &treeNode{label: fmt.Sprintf("Stmt[%d]: <nil>", idx)}
	}
	node := &treeNode{label: fmt.Sprintf("Stmt[%d]: %s (span: %s)", idx, stmt.Kind, formatSpan(stmt.Span, fs))}

	switch stmt.Kind {
	case ast.StmtBand:
		band, ok := builder.Stmts.Band(stmtID)
		if !ok {
			break
		}
		node.add(fmt.Sprintf("Name: %s", band.Name.Value))
		if len(band.Args) == 0 {
			node.add("Args: <none>")
		} else {
			args := node.add("Args")
			for i, arg := range band.Args {
				args.add(fmt.Sprintf("[%d] %s", i, arg.Value))
			}
		}
		value := buildExprTreeNode(builder, band.Value, fs)
		value.label = "Value: " + value.label
		node.children = append(node.children, value)
	}
	return node
}

func buildExprTreeNode(builder *ast.Builder, exprID ast.ExprID, fs *source.FileSet) *treeNode {
	expr := builder.Exprs.Get(exprID)
	if expr == nil {
		return &treeNode{label: "<none>"}
	}
	span := formatSpan(expr.Span, fs)

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := builder.Exprs.Ident(exprID)
		return &treeNode{label: fmt.Sprintf("Ident %s (span: %s)", data.Name.Value, span)}
	case ast.ExprNumber:
		data, _ := builder.Exprs.Number(exprID)
		return &treeNode{label: fmt.Sprintf("Number %s (span: %s)", data.Literal.Text, span)}
	case ast.ExprBinary:
		data, _ := builder.Exprs.Binary(exprID)
		node := &treeNode{label: fmt.Sprintf("Binary (%s) (span: %s)", data.Op, span)}
		node.children = append(node.children,
			buildExprTreeNode(builder, data.Left, fs),
			buildExprTreeNode(builder, data.Right, fs))
		return node
	case ast.ExprUnary:
		data, _ := builder.Exprs.Unary(exprID)
		node := &treeNode{label: fmt.Sprintf("Unary (%s) (span: %s)", data.Op, span)}
		node.children = append(node.children, buildExprTreeNode(builder, data.Operand, fs))
		return node
	case ast.ExprGroup:
		data, _ := builder.Exprs.Group(exprID)
		node := &treeNode{label: fmt.Sprintf("Group (span: %s)", span)}
		node.children = append(node.children, buildExprTreeNode(builder, data.Inner, fs))
		return node
	default:
		return &treeNode{label: fmt.Sprintf("%s (span: %s)", expr.Kind, span)}
	}
}

// writeTree печатает дерево с ветками ├─ / └─.
func writeTree(w io.Writer, node *treeNode, prefix string) {
	for i, child := range node.children {
		branch, next := "├─ ", "│  "
		if i == len(node.children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, child.label)
		writeTree(w, child, prefix+next)
	}
}
