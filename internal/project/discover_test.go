package project

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestExpandDesigns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	for _, p := range []string{
		"build/Translated.bsv",
		"build/alu/Translated.bsv",
		"build/alu/old/Translated.bsv",
		"build/fpu/Translated.bsv",
		"build/fpu/notes.txt",
		"Top.bsv",
	} {
		writeFile(t, filepath.Join(dir, p), "")
	}

	tests := []struct {
		name     string
		args     []string
		excludes []string
		want     []string
	}{
		{"plain", []string{"missing.bsv", "Top.bsv"}, nil, []string{"missing.bsv", "Top.bsv"}},
		{"star", []string{"*.bsv"}, nil, []string{"Top.bsv"}},
		{"one level", []string{"build/*/Translated.bsv"}, nil, []string{
			filepath.FromSlash("build/alu/Translated.bsv"),
			filepath.FromSlash("build/fpu/Translated.bsv"),
		}},
		{"deep", []string{"build/**.bsv"}, nil, []string{
			filepath.FromSlash("build/Translated.bsv"),
			filepath.FromSlash("build/alu/Translated.bsv"),
			filepath.FromSlash("build/alu/old/Translated.bsv"),
			filepath.FromSlash("build/fpu/Translated.bsv"),
		}},
		{"exclude dir", []string{"build/**.bsv"}, []string{"old"}, []string{
			filepath.FromSlash("build/Translated.bsv"),
			filepath.FromSlash("build/alu/Translated.bsv"),
			filepath.FromSlash("build/fpu/Translated.bsv"),
		}},
		{"dedup", []string{"Top.bsv", "*.bsv"}, nil, []string{"Top.bsv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandDesigns(tt.args, tt.excludes)
			if err != nil {
				t.Fatalf("ExpandDesigns: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandDesignsErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := ExpandDesigns([]string{"nothing/*.bsv"}, nil); err == nil || !strings.Contains(err.Error(), "no designs match") {
		t.Fatalf("err = %v, want no-match error", err)
	}
	if _, err := ExpandDesigns(nil, []string{"[bad"}); err == nil {
		t.Fatalf("bad exclude accepted")
	}
}

func TestIsPattern(t *testing.T) {
	for arg, want := range map[string]bool{
		"Top.bsv":       false,
		"build/*.bsv":   true,
		"t?p.bsv":       true,
		"{a,b}.bsv":     true,
		"C:/x/Top.bsv":  false,
		"build/[ab].bs": true,
	} {
		if got := IsPattern(arg); got != want {
			t.Errorf("IsPattern(%q) = %v, want %v", arg, got, want)
		}
	}
}
