package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"mslayout/internal/diag"
	"mslayout/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("typedef Bit#(8) Byte;\nmodule mkTop(Top$);\n")
	fileID := fs.AddVirtual("/home/user/project/build/Top.bsv", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 38, End: 39}, "unknown character '$'"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/build/Top.bsv:2:17"},
		{"relative", PathModeRelative, "build/Top.bsv:2:17"},
		{"basename", PathModeBasename, "Top.bsv:2:17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode, BaseDir: "/home/user/project"})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, out)
			}
			for _, want := range []string{"ERROR", "LEX1001", "unknown character"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in:\n%s", want, out)
				}
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"top.bsv", "top.bsv:1:1"},
		{"/very/long/absolute/path/to/some/nested/build/dir/Top.bsv", " Top.bsv:1:1"},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual(tt.path, []byte("x\n"))
		bag := diag.NewBag(1)
		bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 1}, "odd"))
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
		if out := " " + buf.String(); !strings.Contains(out, tt.expected) {
			t.Errorf("expected %q in:\n%s", tt.expected, out)
		}
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.bsv", []byte("\tReg#(Foo) r <- mkReg(0);\n"))
	bag := diag.NewBag(1)
	// "Foo" на байтах 6..9; табуляция раскрывается в четыре пробела
	bag.Add(diag.New(diag.SevInfo, diag.LayUnresolvedType, source.Span{File: fileID, Start: 6, End: 9}, "type Foo could not be resolved"))
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "t.bsv:1:7: INFO LAY3002: ") {
		t.Errorf("header = %q", lines[0])
	}
	if want := " 1 |     Reg#(Foo) r <- mkReg(0);"; lines[1] != want {
		t.Errorf("source line = %q, want %q", lines[1], want)
	}
	if want := "   |          ^~~"; lines[2] != want {
		t.Errorf("underline = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("interface Foo\nendinterface\n")
	fileID := fs.AddVirtual("test.bsv", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 14, End: 26}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, primary, "expected ';' after interface name")
	d = d.WithNote(source.Span{File: fileID, Start: 10, End: 13}, "interface declared here")
	d = d.WithFix("insert ';'", diag.FixEdit{Span: source.Span{File: fileID, Start: 13, End: 13}, NewText: ";"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true, ShowPreview: true})
	out := buf.String()

	for _, want := range []string{
		"note: test.bsv:1:11: interface declared here",
		"fix #1: insert ';'",
		`edit test.bsv:1:14: apply=";"`,
		"preview:",
		"- interface Foo",
		"+ interface Foo;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestPrettyTimingNotesAlwaysShown(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("t.bsv", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Message: "timings", Notes: []diag.Note{{Msg: `{"total_ms":1}`}}})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), `{"total_ms":1}`) {
		t.Fatalf("timings payload missing:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.bsv", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.LayTopNotFound, source.Span{File: fileID}, "top-level module mkX not found"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}
