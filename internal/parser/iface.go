package parser

import (
	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/token"
)

// parseInterface разбирает `interface <Name>; { method ...; } endinterface`.
// Обобщённые интерфейсы (`Foo#(type t)`) пропускаются целиком.
func (p *Parser) parseInterface() {
	start := p.advance() // interface
	if p.isGenericName(p.pos) {
		p.skipBlock(token.KwEndInterface, "endinterface")
		return
	}
	name, ok := p.parseType()
	if !ok {
		p.skipBlock(token.KwEndInterface, "endinterface")
		return
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after interface name"); !ok {
		p.skipBlock(token.KwEndInterface, "endinterface")
		return
	}

	ifc := ast.Interface{Name: name}
	for !p.at(token.KwEndInterface) {
		switch p.peek().Kind {
		case token.EOF:
			p.err(diag.SynMissingEnd, "missing 'endinterface'")
			return
		case token.AttrOpen:
			p.skipBalanced()
		case token.KwMethod:
			if m, ok := p.parseMethod(); ok {
				ifc.Methods = append(ifc.Methods, m)
			}
		default:
			// подинтерфейсы и прочее — не порты верхнего уровня
			p.skipPast(token.Semicolon)
		}
	}
	p.advance() // endinterface
	ifc.Span = start.Span.Cover(p.lastSpan)
	p.design.AddInterface(ifc)
}

// parseMethod: `method <Ret> <name> [ ( <Type> <arg>, ... ) ] ;`
// Типы аргументов разбираются по одному: запятая внутри `Vector#(4,Bool)` — не разделитель.
func (p *Parser) parseMethod() (ast.Method, bool) {
	start := p.advance() // method
	fail := func() (ast.Method, bool) {
		p.skipPast(token.Semicolon)
		return ast.Method{}, false
	}

	ret, ok := p.parseType()
	if !ok {
		return fail()
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected method name")
	if !ok {
		return fail()
	}
	m := ast.Method{Ret: ret, Name: nameTok.Text}

	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			argType, ok := p.parseType()
			if !ok {
				return fail()
			}
			argName, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected argument name")
			if !ok {
				return fail()
			}
			m.Args = append(m.Args, ast.Arg{Type: argType, Name: argName.Text})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			if !p.at(token.RParen) {
				p.err(diag.SynUnexpectedToken, "expected ',' or ')' in method arguments")
				return fail()
			}
		}
		p.advance() // )
	}
	p.skipPast(token.Semicolon)
	m.Span = start.Span.Cover(p.lastSpan)
	return m, true
}
