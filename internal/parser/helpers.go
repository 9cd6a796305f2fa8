package parser

import (
	"mslayout/internal/diag"
	"mslayout/internal/source"
	"mslayout/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом — EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На EOF указываем позицию сразу после последнего съеденного токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	var fixes []diag.Fix
	if k == token.Semicolon && p.lastSpan.End > 0 {
		// msc всегда ставит ';' вплотную к предыдущему токену
		at := source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		fixes = append(fixes, diag.Fix{Title: "insert ';'", Edits: []diag.FixEdit{{Span: at, NewText: ";"}}})
	}
	p.report(code, diag.SevError, diagSpan, msg, fixes...)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, fixes ...diag.Fix) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, fixes)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

// ===== пропуск токенов =====

func closerOf(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.LParen:
		return token.RParen, true
	case token.LBrace:
		return token.RBrace, true
	case token.LBracket:
		return token.RBracket, true
	case token.AttrOpen:
		return token.AttrClose, true
	}
	return token.Invalid, false
}

// skipBalanced съедает открывающую скобку и всё до парной закрывающей.
func (p *Parser) skipBalanced() {
	open := p.advance()
	closeKind, ok := closerOf(open.Kind)
	if !ok {
		return
	}
	for !p.at(token.EOF) {
		if p.at(closeKind) {
			p.advance()
			return
		}
		p.skipOne()
	}
	p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '"+open.Text+"'")
}

// skipOne съедает один токен или целую сбалансированную группу.
func (p *Parser) skipOne() {
	if _, ok := closerOf(p.peek().Kind); ok {
		p.skipBalanced()
		return
	}
	p.advance()
}

// skipPast прокручивает до токена k на нулевой глубине скобок и съедает его.
func (p *Parser) skipPast(k token.Kind) bool {
	for !p.at(token.EOF) {
		if p.at(k) {
			p.advance()
			return true
		}
		p.skipOne()
	}
	return false
}

// skipBlock прокручивает до закрывающего ключевого слова блока.
func (p *Parser) skipBlock(end token.Kind, endText string) bool {
	for !p.at(token.EOF) {
		if p.at(end) {
			p.advance()
			return true
		}
		p.advance()
	}
	p.err(diag.SynMissingEnd, "missing '"+endText+"'")
	return false
}

// stmtEnd возвращает индекс ';' (на нулевой глубине), завершающего оператор,
// начатый в from, либо индекс стоп-токена, если ';' не встретился раньше.
func (p *Parser) stmtEnd(from int, stop token.Kind) int {
	depth := 0
	for i := from; i < len(p.toks); i++ {
		switch k := p.toks[i].Kind; k {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				return i
			}
		case token.EOF, stop:
			return i
		}
	}
	return len(p.toks) - 1
}
