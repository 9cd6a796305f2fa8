package fuzztests

import (
	"testing"

	"mslayout/internal/ast"
	"mslayout/internal/resolver"
	"mslayout/internal/testkit"
)

// FuzzResolve builds a resolver from arbitrary text. Only a missing top
// level may fail, and then without a resolver.
func FuzzResolve(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := string(clamp(input))
		for _, top := range []string{ast.TopLevelWrapper, "mkTop", "mksplit"} {
			r, err := resolver.New(text, top, resolver.Options{MaxErrors: 64})
			if err != nil {
				if r != nil {
					t.Fatalf("error %v came with a resolver", err)
				}
				continue
			}
			for _, typ := range r.Types() {
				_ = r.Width(typ)
			}
			for _, p := range r.Inputs() {
				_ = r.Translate(p.Name + "[0]")
			}
		}
	})
}

// FuzzTranslate feeds arbitrary wire names to a fixed design. The result is
// either a translation or the wire itself, never a panic.
func FuzzTranslate(f *testing.F) {
	r, err := resolver.New(testkit.CoreDesign, "mkTop", resolver.Options{})
	if err != nil {
		f.Fatal(err)
	}
	for _, w := range []string{
		"head[19]", "head[31]$D_IN", "head[32]", "head[-1]", "head[", "head[]",
		"st[1]", "v_0[3]", "ctrs_1_count[15]", "c_count", "push___input_value[12]",
		"[3]", "]", "head[1e3]", "head[99999999999999999999]", "",
	} {
		f.Add(w)
	}
	f.Fuzz(func(t *testing.T, wire string) {
		got := r.Translate(wire)
		if got == "" && wire != "" {
			t.Fatalf("Translate(%q) returned empty", wire)
		}
		_ = r.Width(wire)
		_ = r.IsBVI(wire)
	})
}
