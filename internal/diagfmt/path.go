package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"mslayout/internal/source"
)

// autoPathLimit: длиннее — показываем только имя файла.
const autoPathLimit = 40

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	p := f.Path
	if f.Flags&source.FileVirtual != 0 {
		// stdin и тестовые тексты — не настоящие пути
		if mode == PathModeBasename || (mode == PathModeAuto && len(p) > autoPathLimit) {
			return filepath.Base(p)
		}
		if mode == PathModeRelative && baseDir != "" {
			if rel, err := filepath.Rel(baseDir, p); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
		return p
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		abs, err := filepath.Abs(p)
		if err == nil {
			if rel, err := filepath.Rel(baseDir, abs); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeAuto:
		if len(p) > autoPathLimit {
			return filepath.Base(p)
		}
	}
	return p
}
