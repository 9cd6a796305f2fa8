package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded mslayout.toml.
type Manifest struct {
	Path   string // абсолютный путь к mslayout.toml
	Root   string // каталог манифеста
	Config Config
}

// Config mirrors the TOML layout of mslayout.toml.
type Config struct {
	Design DesignConfig `toml:"design"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

type DesignConfig struct {
	BSV string `toml:"bsv"` // сгенерированный msc файл, относительно Root
	Top string `toml:"top"` // top-level конструктор, может быть пустым
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty | json
	Color  string `toml:"color"`  // auto | on | off
}

type CacheConfig struct {
	Enabled *bool  `toml:"enabled"` // nil — включён
	Dir     string `toml:"dir"`     // пусто — $XDG_CACHE_HOME/mslayout
}

var (
	// ErrDesignSectionMissing indicates that [design] is missing.
	ErrDesignSectionMissing = errors.New("missing [design]")
	// ErrDesignBSVMissing indicates that [design].bsv is missing.
	ErrDesignBSVMissing = errors.New("missing [design].bsv")
)

// LoadManifest finds mslayout.toml starting at startDir and loads it.
// ok is false when no manifest exists anywhere up the tree.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undec[0].String())
	}
	if !meta.IsDefined("design") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrDesignSectionMissing)
	}
	cfg.Design.BSV = strings.TrimSpace(cfg.Design.BSV)
	cfg.Design.Top = strings.TrimSpace(cfg.Design.Top)
	if !meta.IsDefined("design", "bsv") || cfg.Design.BSV == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrDesignBSVMissing)
	}
	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = "pretty"
	case "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: [output].format must be pretty or json, got %q", path, cfg.Output.Format)
	}
	switch cfg.Output.Color {
	case "":
		cfg.Output.Color = "auto"
	case "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
	}
	return cfg, nil
}

// DesignPath returns the absolute path of [design].bsv.
func (m *Manifest) DesignPath() string {
	p := filepath.FromSlash(m.Config.Design.BSV)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// CacheEnabled reports whether [cache].enabled is unset or true.
func (m *Manifest) CacheEnabled() bool {
	return m.Config.Cache.Enabled == nil || *m.Config.Cache.Enabled
}

// CacheDir returns [cache].dir resolved against Root, or "" for the default.
func (m *Manifest) CacheDir() string {
	d := strings.TrimSpace(m.Config.Cache.Dir)
	if d == "" {
		return ""
	}
	d = filepath.FromSlash(d)
	if filepath.IsAbs(d) {
		return d
	}
	return filepath.Join(m.Root, d)
}

// Template renders the manifest `mslayout init` writes.
func Template(bsv, top string) string {
	var b strings.Builder
	b.WriteString("[design]\n")
	fmt.Fprintf(&b, "bsv = %q\n", filepath.ToSlash(bsv))
	fmt.Fprintf(&b, "top = %q\n", top)
	b.WriteString("\n[output]\n")
	b.WriteString("format = \"pretty\"\n")
	b.WriteString("color = \"auto\"\n")
	b.WriteString("\n[cache]\n")
	b.WriteString("enabled = true\n")
	return b.String()
}

// WriteTemplate creates dir/mslayout.toml and refuses to overwrite one.
func WriteTemplate(dir, bsv, top string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("project already initialized: %s exists", path)
		}
		return "", err
	}
	if _, err := f.WriteString(Template(bsv, top)); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
