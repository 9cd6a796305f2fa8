package lexer

import (
	"mslayout/internal/diag"
	"mslayout/internal/token"
)

// Поддержка: 0, 123, 1_000, 8'hFF, 'b101, 4'sd3, '0, '1.
// Ширину и значение не вычисляем — Token.Text остаётся исходным срезом,
// числовую интерпретацию делает тот, кому она нужна (см. parser.literalValue).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump() // '\''
		b := lx.cursor.Peek()
		switch {
		case (b == '0' || b == '1') && lx.cursor.Off == uint32(start)+1:
			// '0 / '1 — заполнение всех бит
			lx.cursor.Bump()
			kind = token.SizedLit
			goto emit
		case b == 's' || b == 'S':
			lx.cursor.Bump()
		}
		if !isBaseChar(lx.cursor.Peek()) {
			// 8'(x) — это приведение типа, а не литерал: откатываемся к кавычке
			lx.cursor.Off--
			if b == 's' || b == 'S' {
				lx.cursor.Off--
			}
			goto emit
		}
		lx.cursor.Bump() // база
		if !isBasedDigit(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digits after base specifier")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isBasedDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.SizedLit
	}

emit:
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
