// Package token defines lexical token kinds and trivia for the BSV subset emitted by msc.
// Invariants:
//   - Token.Span covers the original source bytes of the token.
//   - Token.Text is the token text, except for escaped identifiers where the leading
//     backslash is dropped (`\Foo#(8) ` lexes as EscIdent "Foo#(8)").
//   - Comments and whitespace are Leading trivia and never appear in the main stream.
//   - Type names (Bit, Bool, Vector, Maybe, ...) are identifiers; the layout
//     resolver recognizes them, not the lexer.
package token
