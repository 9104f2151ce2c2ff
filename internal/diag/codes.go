package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo          Code = 1000
	LexUndefinedChar Code = 1001

	// Парсерные
	SynInfo              Code = 2000
	SynMissingHash       Code = 2001
	SynMissingIdentifier Code = 2002
	SynMissingAssign     Code = 2003
	SynMissingSemicolon  Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectArgument    Code = 2006
	SynUnclosedParen     Code = 2007

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUndefinedChar:     "Undefined character",
	SynInfo:              "Syntax information",
	SynMissingHash:       "Missing '#'",
	SynMissingIdentifier: "Missing identifier",
	SynMissingAssign:     "Missing '='",
	SynMissingSemicolon:  "Missing ';'",
	SynExpectExpression:  "Expected expression",
	SynExpectArgument:    "Expected argument name",
	SynUnclosedParen:     "Unclosed parenthesis",
	IOLoadFileError:      "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
