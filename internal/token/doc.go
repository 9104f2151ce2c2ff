// Package token defines lexical token kinds for the Kangaroo language.
// Invariants:
//   - Token.Text is the exact source lexeme (for a synthesized terminator it is ";").
//   - Token.Span covers Text exactly (Start..End) except for synthesized tokens,
//     whose span is empty.
//   - The kind set is closed; Kind.String() yields the canonical upper-case names.
package token
