package lexer

import (
	"mslayout/internal/diag"
	"mslayout/internal/token"
)

// scanIdentOrKeyword сканирует [$]?[A-Za-z_][A-Za-z0-9_$]* и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('$')
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanEscapedIdent читает `\` и всё до первого пробельного символа.
// Span покрывает обратный слеш, Text — нет: `\mkFoo#(8) ` → "mkFoo#(8)".
func (lx *Lexer) scanEscapedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	for !lx.cursor.EOF() && !isSpaceByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() == 1 {
		lx.errLex(diag.LexEmptyEscapedIdent, sp, "escaped identifier must not be empty")
		return token.Token{Kind: token.Invalid, Span: sp, Text: "\\"}
	}
	return token.Token{Kind: token.EscIdent, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End])}
}
