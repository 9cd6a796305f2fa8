package fuzztests

import (
	"testing"

	"mslayout/internal/canon"
	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/source"
	"mslayout/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.bsv", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		toks := lx.All()
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		for _, tok := range toks {
			if tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %q has span %d..%d outside %d bytes", tok.Text, tok.Span.Start, tok.Span.End, len(input))
			}
		}
	})
}

func FuzzCanonicalize(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		_ = canon.Canonicalize(string(clamp(input)))
	})
}
