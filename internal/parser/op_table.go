package parser

import (
	"kangaroo/internal/ast"
	"kangaroo/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * / %
)

// binaryPrec возвращает приоритет оператора или -1, если токен не бинарный оператор.
// Все операторы левоассоциативны.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus:
		return precAdditive
	case token.Asterisk, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

// binaryOp преобразует токен в тип бинарного оператора
func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Asterisk:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	default:
		return ast.ExprBinaryMod
	}
}

// unaryOp преобразует токен в унарный оператор
func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.ExprUnaryPlus, true
	case token.Minus:
		return ast.ExprUnaryMinus, true
	default:
		return 0, false
	}
}
