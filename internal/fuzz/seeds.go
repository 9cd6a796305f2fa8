package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"mslayout/internal/testkit"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var fixtureSeeds = []string{
	testkit.CoreDesign,
	testkit.FunctionDesign,
	testkit.WrapperDesign,
	testkit.ParametricFunctionDesign,
	testkit.UnresolvedDesign,
}

// обрывки, на которых уже ломались ручные правки сгенерированного BSV
var snippetSeeds = []string{
	"",
	"typedef struct { Bit#(4) a; } S deriving (Bits);",
	"typedef enum { A = 3, B } E deriving (Bits, Eq);",
	"interface Foo\nendinterface\n",
	"module \\mkFoo#(8) (Foo);\nendmodule",
	"import \"BVI\" ext =\nmodule mkExt(Ext);",
	"typedef Vector#(4, Maybe#(Bit#(8))) V;",
	"/* unterminated",
	"typedef struct { Bit#( } X",
	"method Action foo___input(Bit#(8) value);",
	"module mkTopLevel___(Top);\n    Top res <- mkTop;\nendmodule",
	"'1 '0 'h1F 8'b1010",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range fixtureSeeds {
		f.Add([]byte(s))
	}
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds picks up *.bsv files dropped into testdata/ next to the
// harness, e.g. crashers saved from an earlier fuzzing run.
func addTestdataSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.bsv"))
	if err != nil {
		return
	}
	for _, p := range paths {
		data, err := os.ReadFile(p) // #nosec G304 -- fixed glob under testdata
		if err != nil {
			continue
		}
		f.Add(clamp(data))
	}
}

func clamp(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
