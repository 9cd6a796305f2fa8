package token_test

import (
	"testing"

	"mslayout/internal/source"
	"mslayout/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.SizedLit, token.StringLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwModule, token.Hash, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Hash, token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.Comma, token.Semicolon, token.Dot, token.Colon, token.Question,
		token.Assign, token.Quote, token.LArrow, token.LtEq, token.AttrOpen,
		token.AttrClose, token.Tilde,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwRule, token.IntLit, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeywordAndIdent(t *testing.T) {
	for _, k := range []token.Kind{token.KwModule, token.KwEndInterface, token.KwTypedef, token.KwNumeric} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() || tok(token.StringLit).IsKeyword() {
		t.Fatalf("ident/string must not be keywords")
	}
	if !tok(token.Ident).IsIdent() || !tok(token.EscIdent).IsIdent() {
		t.Fatalf("Ident and EscIdent should be idents")
	}
	if tok(token.KwMethod).IsIdent() {
		t.Fatalf("KwMethod must not be ident")
	}
}

func TestKindString(t *testing.T) {
	if got := token.LArrow.String(); got != "LArrow" {
		t.Fatalf("LArrow.String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Fatalf("unknown kind String() = %q", got)
	}
}
