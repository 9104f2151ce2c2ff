package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Undefined marks a character the lexer does not recognize.
	Undefined Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal: digits, optional '.', digits.
	Number
	Plus      // +
	Minus     // -
	Asterisk  // *
	Slash     // /
	Percent   // %
	Hash      // #
	Dollar    // $
	Colon     // :
	Comma     // ,
	Assign    // =
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Semicolon // ; или //
)

var kindNames = [...]string{
	Undefined: "UNDEFINED",
	EOF:       "EOF",
	Ident:     "IDENT",
	Number:    "NUMBER",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Asterisk:  "ASTERISK",
	Slash:     "SLASH",
	Percent:   "PERCENT",
	Hash:      "HASH",
	Dollar:    "DOLLAR",
	Colon:     "COLON",
	Comma:     "COMMA",
	Assign:    "ASSIGN",
	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	Semicolon: "SEMICOLON",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// LookupPunct maps a single punctuation byte to its kind.
// '/' is not included: the lexer decides between Slash and the "//" terminator.
func LookupPunct(b byte) (Kind, bool) {
	switch b {
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Asterisk, true
	case '%':
		return Percent, true
	case '#':
		return Hash, true
	case '$':
		return Dollar, true
	case ':':
		return Colon, true
	case ',':
		return Comma, true
	case '=':
		return Assign, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	case '{':
		return LBrace, true
	case '}':
		return RBrace, true
	case ';':
		return Semicolon, true
	default:
		return Undefined, false
	}
}
