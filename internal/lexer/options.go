package lexer

import (
	"mslayout/internal/diag"
	"mslayout/internal/source"
)

// maxTokenLength ограничивает длину одного токена; msc не генерирует
// идентификаторов такой длины, так что это почти всегда мусор на входе.
const maxTokenLength = 4096

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
