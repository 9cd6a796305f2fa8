package parser

import (
	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/token"
	"mslayout/internal/types"
)

// parseTypedef распознаёт три формы:
//
//	typedef struct { <Type> <m>; ... } <Name> [deriving(...)];
//	typedef enum { <Label>[=<lit>], ... } <Name> [deriving(...)];
//	typedef <OldType> <NewName>;
//
// Tagged union и обобщённые объявления (`Name#(type t)`) пропускаются.
func (p *Parser) parseTypedef() {
	start := p.advance() // typedef
	var td ast.Typedef
	var ok bool
	switch p.peek().Kind {
	case token.KwStruct:
		td, ok = p.parseStruct()
	case token.KwEnum:
		td, ok = p.parseEnum()
	case token.KwUnion:
		p.report(diag.SynSkippedTypedef, diag.SevInfo, p.peek().Span, "tagged unions have no flat layout; typedef skipped")
		p.skipPast(token.Semicolon)
		return
	default:
		td, ok = p.parseSynonym()
	}
	if !ok {
		return
	}
	// хвост: deriving(...) ;
	p.skipPast(token.Semicolon)
	td.Span = start.Span.Cover(p.lastSpan)

	key := td.Name.String()
	if _, dup := p.typedefNames[key]; dup {
		p.report(diag.SynDuplicateDecl, diag.SevWarning, td.Span, "type "+key+" declared again; the last declaration wins")
	}
	p.typedefNames[key] = td.Span
	p.design.AddTypedef(td)
}

// typedefName разбирает новое имя после тела. Обобщённые имена пропускаются молча.
func (p *Parser) typedefName() (types.Ref, bool) {
	if p.isGenericName(p.pos) {
		p.skipPast(token.Semicolon)
		return types.Ref{}, false
	}
	name, ok := p.parseType()
	if !ok {
		p.skipPast(token.Semicolon)
	}
	return name, ok
}

func (p *Parser) parseStruct() (ast.Typedef, bool) {
	p.advance() // struct
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'struct'"); !ok {
		p.skipPast(token.Semicolon)
		return ast.Typedef{}, false
	}
	td := ast.Typedef{Kind: ast.TypedefStruct}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed struct body")
			return ast.Typedef{}, false
		}
		ft, ok := p.parseType()
		if !ok {
			p.skipPast(token.Semicolon)
			continue
		}
		fname, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
		if !ok {
			p.skipPast(token.Semicolon)
			continue
		}
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after struct member")
		td.Fields = append(td.Fields, ast.Field{Type: ft, Name: fname.Text})
	}
	p.advance() // }
	name, ok := p.typedefName()
	if !ok {
		return ast.Typedef{}, false
	}
	td.Name = name
	return td, true
}

func (p *Parser) parseEnum() (ast.Typedef, bool) {
	p.advance() // enum
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'enum'"); !ok {
		p.skipPast(token.Semicolon)
		return ast.Typedef{}, false
	}
	td := ast.Typedef{Kind: ast.TypedefEnum}
	var next uint64
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed enum body")
			return ast.Typedef{}, false
		}
		lbl, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum label")
		if !ok {
			p.advance()
			continue
		}
		l := ast.EnumLabel{Name: lbl.Text, Value: next}
		if p.at(token.Assign) {
			p.advance()
			lit := p.advance()
			if v, ok := literalValue(lit); ok {
				l.Value, l.Explicit = v, true
			} else {
				p.report(diag.SynExpectNumber, diag.SevError, lit.Span, "expected numeric label id, got \""+lit.Text+"\"")
			}
		}
		next = l.Value + 1
		td.Labels = append(td.Labels, l)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.advance() // }
	name, ok := p.typedefName()
	if !ok {
		return ast.Typedef{}, false
	}
	td.Name = name
	return td, true
}

func (p *Parser) parseSynonym() (ast.Typedef, bool) {
	target, ok := p.parseType()
	if !ok {
		p.skipPast(token.Semicolon)
		return ast.Typedef{}, false
	}
	name, ok := p.typedefName()
	if !ok {
		return ast.Typedef{}, false
	}
	return ast.Typedef{Kind: ast.TypedefSynonym, Name: name, Target: target}, true
}
