package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mslayout/internal/resolver"
	"mslayout/internal/testkit"
)

func coreResolver(t *testing.T) *resolver.Resolver {
	t.Helper()
	r, err := resolver.New(testkit.CoreDesign, "mkTop", resolver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLayoutOutputRanges(t *testing.T) {
	out := BuildLayoutOutput(coreResolver(t))
	if out.Top != "mkTop" || out.Wrapper {
		t.Fatalf("top = %s wrapper = %v", out.Top, out.Wrapper)
	}
	var entry *TypeJSON
	for i := range out.Types {
		if out.Types[i].Name == "Entry" {
			entry = &out.Types[i]
		}
	}
	if entry == nil {
		t.Fatalf("Entry missing from %v", out.Types)
	}
	if entry.Width != 32 {
		t.Fatalf("Entry width = %d", entry.Width)
	}
	want := []LeafJSON{
		{"st", 2, 0, 1},
		{"resp.value", 16, 2, 17},
		{"resp.valid", 1, 18, 18},
		{"req.data", 8, 19, 26},
		{"req.valid", 1, 27, 27},
		{"req.op", 4, 28, 31},
	}
	if len(entry.Leaves) != len(want) {
		t.Fatalf("leaves = %+v", entry.Leaves)
	}
	for i := range want {
		if entry.Leaves[i] != want[i] {
			t.Errorf("leaf %d = %+v, want %+v", i, entry.Leaves[i], want[i])
		}
	}
	if len(out.Registers) == 0 || out.Registers[0] != (WireJSON{"head", "Entry", 32}) {
		t.Errorf("registers = %+v", out.Registers)
	}
}

func TestFormatLayoutJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatLayoutJSON(&buf, coreResolver(t)); err != nil {
		t.Fatal(err)
	}
	var out LayoutOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Top != "mkTop" || len(out.BVIs) != 1 || out.BVIs[0] != "mkExt" {
		t.Fatalf("out = %+v", out)
	}
}

func TestFormatLayoutPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatLayoutPretty(&buf, coreResolver(t), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"top: mkTop",
		"wrapper: no",
		"registers",
		"  head          Entry    32",
		"    [31:28]  req.op      4",
		"    [18]     resp.valid  1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
