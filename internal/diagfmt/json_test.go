package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"mslayout/internal/diag"
	"mslayout/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/work/build/Top.bsv", []byte("interface Foo\nendinterface\n"))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 14, End: 26}, "expected ';' after interface name")
	d = d.WithNote(source.Span{File: fileID, Start: 10, End: 13}, "interface declared here")
	d = d.WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: fileID, Start: 13, End: 13}, NewText: ";"})
	bag.Add(d)
	bag.Add(diag.New(diag.SevInfo, diag.LayUnresolvedType, source.Span{File: fileID}, "type Foo could not be resolved"))
	return bag, fs
}

func decode(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	return out
}

func TestJSONFull(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, &buf)
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2003" {
		t.Errorf("severity/code = %s/%s", d.Severity, d.Code)
	}
	if d.Location.File != "Top.bsv" || d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 11 {
		t.Errorf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	e := d.Fixes[0].Edits[0]
	if e.NewText != ";" || len(e.AfterLines) != 1 || e.AfterLines[0] != "interface Foo;" {
		t.Errorf("edit = %+v", e)
	}
}

func TestJSONWithoutExtras(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeAbsolute})
	d := out.Diagnostics[0]
	if d.Location.StartLine != 0 || d.Location.StartCol != 0 {
		t.Errorf("positions must be omitted: %+v", d.Location)
	}
	if d.Location.StartByte != 14 || d.Location.EndByte != 26 {
		t.Errorf("bytes = %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.File != "/work/build/Top.bsv" {
		t.Errorf("file = %q", d.Location.File)
	}
	if d.Notes != nil || d.Fixes != nil {
		t.Errorf("notes/fixes must be omitted")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	if bag.Len() != 2 {
		t.Fatalf("Max must not touch the bag")
	}
}

func TestJSONTimingNotesAlwaysIncluded(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("t.bsv", nil)
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "timings", Notes: []diag.Note{{Msg: "{}"}}})
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("timing notes dropped")
	}
}
