package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

const globMeta = "*?[{"

// IsPattern reports whether arg contains glob syntax.
func IsPattern(arg string) bool {
	return strings.ContainsAny(arg, globMeta)
}

// ExpandDesigns turns design arguments into file paths. Plain paths pass
// through untouched (even if they do not exist, the loader reports that).
// Patterns are matched against slash-separated paths found under their static
// prefix; "*" stops at "/", "**" does not. Paths whose base name or full path
// matches one of excludes are dropped. A pattern with no match is an error.
func ExpandDesigns(args, excludes []string) ([]string, error) {
	skip, err := compileGlobs(excludes)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if excluded(skip, p) || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, arg := range args {
		if !IsPattern(arg) {
			add(arg)
			continue
		}
		pattern := filepath.ToSlash(arg)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		var matched []string
		root := staticPrefix(pattern)
		depth := strings.Count(pattern, "/") + 1
		deep := strings.Contains(pattern, "**")
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			p := filepath.ToSlash(path)
			if strings.HasPrefix(pattern, "./") && !strings.HasPrefix(p, "./") {
				p = "./" + p
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if excluded(skip, path) || (!deep && strings.Count(p, "/")+1 >= depth) {
					return filepath.SkipDir
				}
				return nil
			}
			if g.Match(p) {
				matched = append(matched, path)
			}
			return nil
		})
		if walkErr != nil && !os.IsNotExist(walkErr) {
			return nil, fmt.Errorf("failed to expand %q: %w", arg, walkErr)
		}
		if len(matched) == 0 {
			return nil, fmt.Errorf("no designs match %q", arg)
		}
		sort.Strings(matched)
		for _, p := range matched {
			add(p)
		}
	}
	return out, nil
}

// staticPrefix returns the directory part of pattern before the first
// segment with glob syntax.
func staticPrefix(pattern string) string {
	segs := strings.Split(pattern, "/")
	var keep []string
	for _, s := range segs[:len(segs)-1] {
		if IsPattern(s) {
			break
		}
		keep = append(keep, s)
	}
	if len(keep) == 0 {
		return "."
	}
	root := strings.Join(keep, "/")
	if root == "" {
		return "/"
	}
	return filepath.FromSlash(root)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func excluded(globs []glob.Glob, path string) bool {
	p := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range globs {
		if g.Match(base) || g.Match(p) {
			return true
		}
	}
	return false
}
