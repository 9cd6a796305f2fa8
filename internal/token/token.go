package token

import (
	"mslayout/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, SizedLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Hash && t.Kind <= Tilde
}

// IsKeyword reports whether the token is a BSV keyword this toolchain knows about.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwModule && t.Kind <= KwNumeric
}

// IsIdent reports whether the token names something (plain or escaped identifier).
func (t Token) IsIdent() bool { return t.Kind == Ident || t.Kind == EscIdent }

// HasSpaceBefore reports whether any trivia (space, newline or comment) precedes the token.
func (t Token) HasSpaceBefore() bool { return len(t.Leading) > 0 }
