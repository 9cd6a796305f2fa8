package fuzztests

import (
	"testing"
	"time"

	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/parser"
	"mslayout/internal/source"
)

// parseTimeout: a parse that takes longer is looping in error recovery.
const parseTimeout = 5 * time.Second

func parse(input []byte) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.bsv", input))
	rep := diag.BagReporter{Bag: diag.NewBag(128)}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	_ = parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: 128})
}

func FuzzParserBuildsDesign(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		parse(clamp(input))
	})
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			parse(input)
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not finish within %v on %d bytes", parseTimeout, len(input))
		}
	})
}
