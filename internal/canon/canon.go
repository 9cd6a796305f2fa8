// Package canon renders BSV text in a canonical spelling: no comments, single
// spaces, and no spacing around structural punctuation. Two inputs that differ
// only in formatting canonicalize to the same string, which is what the driver
// uses as the content key of its layout cache.
package canon

import (
	"strings"

	"mslayout/internal/lexer"
	"mslayout/internal/source"
	"mslayout/internal/token"
)

// Canonicalize returns the canonical spelling of text.
func Canonicalize(text string) string {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<canon>", []byte(text))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	return Tokens(lx.All())
}

// Tokens renders an already lexed token stream canonically. A trailing EOF token is ignored.
func Tokens(toks []token.Token) string {
	var b strings.Builder
	var prev *token.Token
	for i := range toks {
		tok := &toks[i]
		if tok.Kind == token.EOF {
			break
		}
		if prev != nil && needSpace(prev, tok) {
			b.WriteByte(' ')
		}
		writeToken(&b, tok)
		prev = tok
	}
	return b.String()
}

func writeToken(b *strings.Builder, tok *token.Token) {
	if tok.Kind == token.EscIdent {
		b.WriteByte('\\')
	}
	b.WriteString(tok.Text)
}

// needSpace: комментарии считаются пробелом; экранированный идентификатор
// обязан заканчиваться пробелом, иначе он поглотит следующий токен.
func needSpace(prev, cur *token.Token) bool {
	if prev.Kind == token.EscIdent {
		return true
	}
	if len(cur.Leading) == 0 {
		return false
	}
	// у "(*" плотная только левая скобка, у "*)" только правая
	if cur.Kind == token.AttrOpen || prev.Kind == token.AttrClose {
		return false
	}
	return !tight(prev.Kind) && !tight(cur.Kind)
}

// tight reports whether spacing around k is incidental.
func tight(k token.Kind) bool {
	switch k {
	case token.Comma, token.Dot, token.LBrace, token.RBrace, token.Hash,
		token.LParen, token.RParen, token.Question, token.Colon,
		token.Assign, token.Semicolon, token.Quote:
		return true
	}
	return false
}
