package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), Template("build/Top.bsv", "mkTop"))
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindProjectRoot(deep)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestLoadManifestTemplate(t *testing.T) {
	root := t.TempDir()
	if _, err := WriteTemplate(root, "build/Top.bsv", "mkTop"); err != nil {
		t.Fatal(err)
	}
	m, ok, err := LoadManifest(root)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Design.Top != "mkTop" {
		t.Errorf("top = %q", m.Config.Design.Top)
	}
	if got, want := m.DesignPath(), filepath.Join(m.Root, "build", "Top.bsv"); got != want {
		t.Errorf("DesignPath = %q, want %q", got, want)
	}
	if !m.CacheEnabled() || m.CacheDir() != "" {
		t.Errorf("cache defaults: enabled=%v dir=%q", m.CacheEnabled(), m.CacheDir())
	}
	if m.Config.Output.Format != "pretty" || m.Config.Output.Color != "auto" {
		t.Errorf("output = %+v", m.Config.Output)
	}

	if _, err := WriteTemplate(root, "x.bsv", ""); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init err = %v", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		substr  string
	}{
		{"no design", "[output]\nformat = \"json\"\n", ErrDesignSectionMissing, ""},
		{"no bsv", "[design]\ntop = \"mkTop\"\n", ErrDesignBSVMissing, ""},
		{"blank bsv", "[design]\nbsv = \"  \"\n", ErrDesignBSVMissing, ""},
		{"bad format", "[design]\nbsv = \"a.bsv\"\n[output]\nformat = \"xml\"\n", nil, "[output].format"},
		{"bad color", "[design]\nbsv = \"a.bsv\"\n[output]\ncolor = \"maybe\"\n", nil, "[output].color"},
		{"unknown key", "[design]\nbsv = \"a.bsv\"\nextra = 1\n", nil, "unknown key design.extra"},
		{"broken toml", "[design\n", nil, "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Fatalf("err = %v, want substring %q", err, tt.substr)
			}
		})
	}
}

func TestCacheSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[design]\nbsv = \"/abs/Top.bsv\"\n[cache]\nenabled = false\ndir = \".cache\"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	if m.CacheEnabled() {
		t.Errorf("cache should be disabled")
	}
	if got := m.CacheDir(); got != filepath.Join(m.Root, ".cache") {
		t.Errorf("CacheDir = %q", got)
	}
	if got := m.DesignPath(); got != filepath.FromSlash("/abs/Top.bsv") {
		t.Errorf("DesignPath = %q", got)
	}
}

func TestCombineOrderMatters(t *testing.T) {
	var a, b Digest
	a[0], b[0] = 1, 2
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("Combine must be deterministic")
	}
}
