package parser

import (
	"strconv"
	"strings"

	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/source"
	"mslayout/internal/token"
	"mslayout/internal/types"
)

// typeAt разбирает ссылку на тип, начиная с токена i, не двигая курсор.
// Тип — идентификатор, за которым может сразу идти `#(` p1, p2, ... `)`;
// параметр — десятичное число или вложенный тип. Экранированный идентификатор
// (`\Foo#(8) `) разбирается заново по его тексту, чтобы получить то же каноническое имя.
func (p *Parser) typeAt(i int) (types.Ref, int, bool) {
	tok := p.toks[i]
	switch tok.Kind {
	case token.EscIdent:
		if r, ok := types.Parse(tok.Text); ok {
			return r, i + 1, true
		}
		return types.Named(tok.Text), i + 1, true
	case token.Ident:
	default:
		return types.Ref{}, i, false
	}

	r := types.Named(tok.Text)
	if p.toks[i+1].Kind != token.Hash || p.toks[i+2].Kind != token.LParen {
		return r, i + 1, true
	}
	j := i + 3
	for {
		switch p.toks[j].Kind {
		case token.IntLit:
			n, err := strconv.Atoi(strings.ReplaceAll(p.toks[j].Text, "_", ""))
			if err != nil {
				return types.Ref{}, i, false
			}
			r.Params = append(r.Params, types.NumParam(n))
			j++
		default:
			sub, next, ok := p.typeAt(j)
			if !ok {
				return types.Ref{}, i, false
			}
			r.Params = append(r.Params, types.TypeParam(sub))
			j = next
		}
		switch p.toks[j].Kind {
		case token.Comma:
			j++
		case token.RParen:
			return r, j + 1, true
		default:
			return types.Ref{}, i, false
		}
	}
}

// parseType разбирает тип в текущей позиции; на ошибке — SynExpectType.
func (p *Parser) parseType() (types.Ref, bool) {
	r, next, ok := p.typeAt(p.pos)
	if !ok {
		p.err(diag.SynExpectType, "expected type, got \""+p.peek().Text+"\"")
		return types.Ref{}, false
	}
	for p.pos < next {
		p.advance()
	}
	return r, true
}

// isGenericName reports whether the name at i carries `type`/`numeric type`
// parameters (`Maybe#(type t)`): such declarations belong to the prelude and
// never describe an elaborated layout.
func (p *Parser) isGenericName(i int) bool {
	if !p.toks[i].IsIdent() {
		return false
	}
	if p.toks[i+1].Kind != token.Hash || p.toks[i+2].Kind != token.LParen {
		return false
	}
	depth := 0
	for j := i + 2; j < len(p.toks); j++ {
		switch p.toks[j].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return false
			}
		case token.KwType, token.KwNumeric:
			return true
		case token.EOF:
			return false
		}
	}
	return false
}

// ParseTypeString parses a standalone type spelling such as "Vector#( 4, Bit#(8) )"
// or an escaped "\Foo#(8) " and returns its canonical reference.
func ParseTypeString(s string) (types.Ref, bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<type>", []byte(s))
	p := newParser(lexer.New(fs.Get(id), lexer.Options{}).All(), Options{})
	r, next, ok := p.typeAt(0)
	if !ok || p.toks[next].Kind != token.EOF {
		return types.Ref{}, false
	}
	return r, true
}
