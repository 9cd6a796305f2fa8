package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mslayout/internal/resolver"
	"mslayout/internal/testkit"
)

// resetFlags returns every flag of the tree to its default; cobra keeps
// parsed values between Execute calls on the same command.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// inDesignDir switches to a fresh temp directory holding core.bsv and its
// own XDG cache.
func inDesignDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "xdg"))
	if err := os.WriteFile("core.bsv", []byte(testkit.CoreDesign), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.ExecuteContext(context.Background())
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	inDesignDir(t)
	return execute(t, stdin, args...)
}

func TestSplitDesignArg(t *testing.T) {
	tests := []struct {
		in, path, top string
	}{
		{"core.bsv", "core.bsv", ""},
		{"core.bsv:mkTop", "core.bsv", "mkTop"},
		{"build/a.bsv:mkTopLevel___", "build/a.bsv", "mkTopLevel___"},
		{`C:\designs\Top.bsv`, `C:\designs\Top.bsv`, ""},
		{":mkTop", ":mkTop", ""},
	}
	for _, tt := range tests {
		path, top := splitDesignArg(tt.in)
		if path != tt.path || top != tt.top {
			t.Errorf("splitDesignArg(%q) = %q, %q", tt.in, path, top)
		}
	}
}

func TestReadLines(t *testing.T) {
	got, err := readLines(strings.NewReader("head[19]\n\n  st[1]  \r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, "|") != "head[19]|st[1]" {
		t.Fatalf("readLines = %q", got)
	}
}

func TestAnswerLines(t *testing.T) {
	r, err := resolver.New(testkit.CoreDesign, "mkTop", resolver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := answerLines(strings.NewReader("head[19]\nnowhere\n\n"), &out, r); err != nil {
		t.Fatal(err)
	}
	want := "head[19] -> head.req.data[0] : Entry (32)\nnowhere -> nowhere : unknown\n"
	if out.String() != want {
		t.Fatalf("answers:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestTranslateCommand(t *testing.T) {
	out, _, err := run(t, "", "translate", "--bsv", "core.bsv", "--top", "mkTop", "head[19]", "nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if out != "head.req.data[0]\nnowhere\n" {
		t.Fatalf("translate output %q", out)
	}

	out, _, err = run(t, "head[19]\n", "translate", "--bsv", "core.bsv", "--top", "mkTop", "--pairs")
	if err != nil {
		t.Fatal(err)
	}
	if out != "head[19]\thead.req.data[0]\n" {
		t.Fatalf("stdin translate output %q", out)
	}
}

func TestWidthAndIsBVI(t *testing.T) {
	out, _, err := run(t, "", "width", "--bsv", "core.bsv", "--top", "mkTop", "Entry")
	if err != nil || out != "32\n" {
		t.Fatalf("width = %q, %v", out, err)
	}

	out, _, err = run(t, "", "isbvi", "--bsv", "core.bsv", "--top", "mkTop", "mkExt")
	if err != nil || out != "yes\n" {
		t.Fatalf("isbvi mkExt = %q, %v", out, err)
	}
	out, _, err = run(t, "", "isbvi", "--bsv", "core.bsv", "--top", "mkTop", "mkExt", "mkCounter")
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("isbvi with a non-BVI should exit 1, got %v", err)
	}
	if out != "mkExt\tyes\nmkCounter\tno\n" {
		t.Fatalf("isbvi output %q", out)
	}
}

func TestMissingTopExitsWithDiagnostic(t *testing.T) {
	_, stderr, err := run(t, "", "translate", "--bsv", "core.bsv", "--top", "mkNope", "--color", "off", "x")
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "LAY3001") {
		t.Fatalf("stderr lacks LAY3001:\n%s", stderr)
	}
}

func TestManifestSuppliesDesign(t *testing.T) {
	inDesignDir(t)
	out, _, err := execute(t, "", "init", "--bsv", "core.bsv", "--top", "mkTop")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "created ") || !strings.HasSuffix(strings.TrimSpace(out), "mslayout.toml") {
		t.Fatalf("init output %q", out)
	}

	out, _, err = execute(t, "", "width", "Entry", "Vector#(2,Bool)")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Entry\t32\nVector#(2,Bool)\t-1\n" {
		t.Fatalf("width via manifest = %q", out)
	}

	if _, _, err := execute(t, "", "init"); err == nil {
		t.Fatalf("second init should refuse to overwrite")
	}
}

func TestNoDesignIsAnError(t *testing.T) {
	_, _, err := run(t, "", "width", "Entry")
	if err == nil || !strings.Contains(err.Error(), "no design") {
		t.Fatalf("err = %v", err)
	}
}

func TestDumpJSONAndCheck(t *testing.T) {
	out, _, err := run(t, "", "dump", "--bsv", "core.bsv", "--top", "mkTop", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"top"`, `"Entry"`, `"head"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump json lacks %s", want)
		}
	}

	out, _, err = run(t, "", "check", "--ui", "off", "core.bsv:mkTop", "core.bsv:mkCounter")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Count(out, "ok   ") != 2 {
		t.Fatalf("check output:\n%s", out)
	}

	_, _, err = run(t, "", "check", "--ui", "off", "core.bsv:mkTop", "core.bsv:mkNope")
	var code exitCode
	if !errors.As(err, &code) {
		t.Fatalf("failing check should exit 1, got %v", err)
	}
}

func TestCheckExpandsPatterns(t *testing.T) {
	dir := inDesignDir(t)
	for _, sub := range []string{"alu", "old"} {
		if err := os.MkdirAll(filepath.Join(dir, "build", sub), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "build", sub, "Translated.bsv"), []byte(testkit.CoreDesign), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := execute(t, "", "check", "--ui", "off", "--exclude", "old", "build/**.bsv:mkTop")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Count(out, "ok   ") != 1 || !strings.Contains(out, "alu") {
		t.Fatalf("check output:\n%s", out)
	}

	if _, _, err := execute(t, "", "check", "--ui", "off", "nowhere/*.bsv"); err == nil {
		t.Fatalf("unmatched pattern accepted")
	}
}

func TestCanonKeyIgnoresComments(t *testing.T) {
	a, _, err := run(t, "", "canon", "--key", "--top", "mkTop", "core.bsv")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := run(t, "// regenerated\n"+testkit.CoreDesign, "canon", "--key", "--top", "mkTop", "-")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || len(strings.TrimSpace(a)) != 64 {
		t.Fatalf("keys %q vs %q", a, b)
	}
}

func TestOutlineAndVersion(t *testing.T) {
	out, _, err := run(t, "", "outline", "--format", "json", "core.bsv")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"mk": "mkTop"`, `"mk": "mkExt"`, `"bvi": true`, `"kind": "enum"`} {
		if !strings.Contains(out, want) {
			t.Errorf("outline lacks %s:\n%s", want, out)
		}
	}

	out, _, err = run(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "mslayout"`) || !strings.Contains(out, `"snapshot_schema": 1`) {
		t.Fatalf("version json:\n%s", out)
	}
}

func TestDiskCacheAndClear(t *testing.T) {
	dir := inDesignDir(t)
	if _, _, err := execute(t, "", "width", "--bsv", "core.bsv", "--top", "mkTop", "Entry"); err != nil {
		t.Fatal(err)
	}
	layouts := filepath.Join(dir, "xdg", "mslayout", "layouts")
	entries, err := os.ReadDir(layouts)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cache entry in %s: %v", layouts, err)
	}

	out, _, err := execute(t, "", "cache", "path")
	if err != nil || strings.TrimSpace(out) != filepath.Join(dir, "xdg", "mslayout") {
		t.Fatalf("cache path = %q, %v", out, err)
	}
	if _, _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(layouts); !os.IsNotExist(err) {
		t.Fatalf("layouts survived cache clear: %v", err)
	}

	// --cache=false не пишет ничего
	if _, _, err := execute(t, "", "--cache=false", "width", "--bsv", "core.bsv", "--top", "mkTop", "Entry"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(layouts); !os.IsNotExist(err) {
		t.Fatalf("--cache=false wrote a cache entry")
	}
}

func TestTraceAndProfileFlags(t *testing.T) {
	dir := inDesignDir(t)
	tracePath := filepath.Join(dir, "run.ndjson")
	cpuPath := filepath.Join(dir, "cpu.pprof")
	_, _, err := execute(t, "", "--trace", tracePath, "--cpu-profile", cpuPath,
		"width", "--bsv", "core.bsv", "--top", "mkTop", "Entry")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"name":"resolve"`, `"name":"parse"`, `"name":"flatten"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("trace lacks %s:\n%s", want, data)
		}
	}
	if st, err := os.Stat(cpuPath); err != nil || st.Size() == 0 {
		t.Fatalf("cpu profile missing: %v", err)
	}

	_, _, err = execute(t, "", "--trace-level", "loud", "width", "--bsv", "core.bsv", "Entry")
	if err == nil {
		t.Fatalf("bad trace level accepted")
	}
}

func TestWatchPrintsInitialSummary(t *testing.T) {
	inDesignDir(t)
	resetFlags(rootCmd)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // первый прогон выполняется, затем Run сразу выходит

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs([]string{"watch", "--bsv", "core.bsv", "--top", "mkTop", "--debounce", "10ms"})
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.ExecuteContext(ctx)
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if err != nil {
		t.Fatalf("watch: %v (stderr %s)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "ok   core.bsv:mkTop:") || !strings.Contains(stdout.String(), "registers") {
		t.Fatalf("summary:\n%s", stdout.String())
	}
}

func TestPrintWatchSummaryFailures(t *testing.T) {
	var buf bytes.Buffer
	printWatchSummary(&buf, "a.bsv", "mkX", nil, &resolver.Error{Kind: resolver.ErrTopLevelNotFound, Top: "mkX"})
	printWatchSummary(&buf, "a.bsv", "mkX", nil, os.ErrNotExist)
	got := buf.String()
	if !strings.Contains(got, "FAIL a.bsv:mkX: top-level not found") || strings.Count(got, "FAIL") != 2 {
		t.Fatalf("summary:\n%s", got)
	}
}

func TestSeverityFlagFiltersDiagnostics(t *testing.T) {
	inDesignDir(t)
	odd := testkit.CoreDesign + "\ntypedef struct { Foo a; Bar b; } Odd deriving (Bits);\n"
	if err := os.WriteFile("odd.bsv", []byte(odd), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, "", "width", "--bsv", "odd.bsv", "--top", "mkTop", "--cache=false", "Bool")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "type Foo") || !strings.Contains(stderr, "type Bar") {
		t.Fatalf("info diagnostics missing:\n%s", stderr)
	}

	_, stderr, err = execute(t, "", "width", "--bsv", "odd.bsv", "--top", "mkTop", "--cache=false", "--severity", "warning", "Bool")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stderr, "type Foo") {
		t.Fatalf("info diagnostics printed at --severity warning:\n%s", stderr)
	}

	if _, _, err := execute(t, "", "width", "--bsv", "odd.bsv", "--severity", "loud", "Bool"); err == nil {
		t.Fatal("unknown severity accepted")
	}
}
