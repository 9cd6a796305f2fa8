package parser

import (
	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/token"
	"mslayout/internal/types"
)

// parseModule разбирает
//
//	module [ [ModType] ] <mk>[#(args)] ( <IfcType> ) [provisos(...)] ; body endmodule
//
// Интерфейс — последняя группа скобок прототипа. Для BVI тело не разбирается.
func (p *Parser) parseModule(bvi bool) {
	start := p.advance() // module
	if p.at(token.LBracket) {
		p.skipBalanced()
	}
	nameTok := p.peek()
	if !nameTok.IsIdent() {
		p.err(diag.SynExpectIdentifier, "expected module name, got \""+nameTok.Text+"\"")
		p.skipBlock(token.KwEndModule, "endmodule")
		return
	}
	p.advance()

	groupStart, groupEnd := -1, -1
	depth, open := 0, 0
	inProvisos := false
	for !p.at(token.Semicolon) || depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			p.err(diag.SynExpectSemicolon, "unterminated module prototype")
			return
		case token.LParen:
			if depth == 0 {
				open = p.pos + 1
			}
			depth++
		case token.RParen:
			depth--
			if depth == 0 && !inProvisos {
				groupStart, groupEnd = open, p.pos
			}
		case token.KwProvisos:
			inProvisos = true
		}
		p.advance()
	}
	p.advance() // ;

	m := ast.Module{MkName: nameTok.Text, BVI: bvi, Span: start.Span.Cover(nameTok.Span)}
	if groupStart < 0 {
		p.report(diag.SynExpectType, diag.SevError, nameTok.Span, "module prototype has no interface type")
		p.skipBlock(token.KwEndModule, "endmodule")
		return
	}
	ifc, next, ok := p.typeAt(groupStart)
	if !ok || next > groupEnd {
		p.report(diag.SynExpectType, diag.SevError, p.toks[groupStart].Span, "expected interface type")
		p.skipBlock(token.KwEndModule, "endmodule")
		return
	}
	m.Ifc = ifc

	if bvi {
		p.skipBlock(token.KwEndModule, "endmodule")
	} else {
		m.Instances = p.parseModuleBody()
	}
	m.Span = m.Span.Cover(p.lastSpan)

	if _, dup := p.mkNames[m.MkName]; dup {
		p.report(diag.SynDuplicateDecl, diag.SevWarning, nameTok.Span, "module "+m.MkName+" declared again; the last declaration wins")
	}
	p.mkNames[m.MkName] = nameTok.Span
	p.design.AddModule(m)
}

// parseModuleBody собирает инстанцирования подмодулей до первого `rule`/`method`
// (в правилах и методах `<-` означает действие, а не подмодуль) и доходит до endmodule.
func (p *Parser) parseModuleBody() []ast.Instance {
	var out []ast.Instance
	collecting := true
	for {
		switch p.peek().Kind {
		case token.EOF:
			p.err(diag.SynMissingEnd, "missing 'endmodule'")
			return out
		case token.KwEndModule:
			p.advance()
			return out
		case token.KwRule, token.KwMethod:
			collecting = false
			p.advance()
		case token.AttrOpen:
			p.skipBalanced()
		default:
			if !collecting {
				p.advance()
				continue
			}
			if inst, ok := p.parseInstanceStmt(); ok {
				out = append(out, inst)
			}
		}
	}
}

// parseInstanceStmt распознаёт `<Type> <name> <- <ctor...>;` и всегда съедает оператор целиком.
// Инстанцирования Wire отбрасываются.
func (p *Parser) parseInstanceStmt() (ast.Instance, bool) {
	from := p.pos
	end := p.stmtEnd(from, token.KwEndModule)
	defer func() {
		for p.pos < end {
			p.advance()
		}
		if p.at(token.Semicolon) {
			p.advance()
		}
	}()

	arrow := -1
	depth := 0
	for i := from; i < end && arrow < 0; i++ {
		switch p.toks[i].Kind {
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
		case token.LArrow:
			if depth == 0 {
				arrow = i
			}
		}
	}
	if arrow < 0 {
		return ast.Instance{}, false
	}
	typ, next, ok := p.typeAt(from)
	if !ok || next+1 != arrow || p.toks[next].Kind != token.Ident {
		// let x <- ..., x <- ... и прочее — не объявление подмодуля
		return ast.Instance{}, false
	}
	if types.IsWire(typ) {
		return ast.Instance{}, false
	}
	inst := ast.Instance{
		Type: typ,
		Name: p.toks[next].Text,
		Span: p.toks[from].Span.Cover(p.toks[end-1].Span),
	}
	if arrow+1 < end && p.toks[arrow+1].IsIdent() {
		inst.Ctor = p.toks[arrow+1].Text
	}
	return inst, true
}

// parseImport: `import "BVI" [name =] module ...` — чёрный ящик; остальные import пропускаются.
func (p *Parser) parseImport() {
	p.advance() // import
	if !p.at(token.StringLit) {
		p.skipPast(token.Semicolon) // import Vector::*;
		return
	}
	lit := p.advance()
	if lit.Text != `"BVI"` {
		p.skipPast(token.Semicolon) // import "BDPI" function ...
		return
	}
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		p.advance()
		p.advance()
	}
	if !p.at(token.KwModule) {
		p.err(diag.SynUnexpectedToken, "expected 'module' after import \"BVI\"")
		p.skipBlock(token.KwEndModule, "endmodule")
		return
	}
	p.parseModule(true)
}
