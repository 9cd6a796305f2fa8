package parser

import (
	"slices"

	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/source"
	"mslayout/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Design *ast.Design
	Bag    *diag.Bag
}

// Parser — состояние парсера на один файл.
// Парсер работает по заранее нарезанному срезу токенов: распознавание
// инстанцирований (`Type name <- ctor;`) требует неограниченного просмотра вперёд.
type Parser struct {
	toks     []token.Token // значимые токены, последний всегда EOF
	pos      int
	design   *ast.Design
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	typedefNames map[string]source.Span
	mkNames      map[string]source.Span
}

// ParseFile — входная точка для разбора одного файла BSV, выданного msc.
// Parsing never aborts: unrecognized items are skipped, oddities go to opts.Reporter.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := newParser(lx.All(), opts)
	p.design = ast.NewDesign(lx.File().ID, ast.Hints{})
	p.parseItems()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		Design: p.design,
		Bag:    bag,
	}
}

func newParser(all []token.Token, opts Options) *Parser {
	// Invalid-токены уже отрапортованы лексером; парсеру они только мешают.
	toks := slices.DeleteFunc(all, func(t token.Token) bool { return t.Kind == token.Invalid })
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}
	return &Parser{
		toks:         toks,
		opts:         opts,
		typedefNames: make(map[string]source.Span),
		mkNames:      make(map[string]source.Span),
	}
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		p.parseItem()
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
// Всё, что не влияет на раскладку типов (функции, instance, package/export), пропускается.
func (p *Parser) parseItem() {
	switch p.peek().Kind {
	case token.KwModule:
		p.parseModule(false)
	case token.KwImport:
		p.parseImport()
	case token.KwInterface:
		p.parseInterface()
	case token.KwTypedef:
		p.parseTypedef()
	case token.AttrOpen:
		p.skipBalanced()
	case token.KwFunction:
		p.skipFunction()
	case token.KwInstance:
		p.skipBlock(token.KwEndInstance, "endinstance")
	case token.KwPackage, token.KwExport:
		p.skipPast(token.Semicolon)
	default:
		p.advance()
		p.resyncTop()
	}
}

// resyncTop — восстановление на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) && !isTopLevelStarter(p.peek().Kind) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.skipOne()
	}
}

// isTopLevelStarter reports whether k begins a top-level item.
func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwModule, token.KwInterface, token.KwTypedef, token.KwImport,
		token.KwFunction, token.KwInstance, token.KwPackage, token.KwEndPackage,
		token.KwExport, token.AttrOpen:
		return true
	default:
		return false
	}
}

// skipFunction пропускает `function ... endfunction` или однострочную форму
// `function T f(args) = expr;`.
func (p *Parser) skipFunction() {
	p.advance() // function
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Assign:
			p.skipPast(token.Semicolon)
			return
		case token.Semicolon:
			p.advance()
			p.skipBlock(token.KwEndFunction, "endfunction")
			return
		}
		p.skipOne()
	}
}
