package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/diagfmt"
	"mslayout/internal/driver"
	"mslayout/internal/project"
	"mslayout/internal/resolver"
	"mslayout/internal/source"
)

const noDesignMessage = "no design to read\npass --bsv path/to/Top.bsv or run `mslayout init` to create mslayout.toml"

// session collects global flags and the project manifest for one command.
type session struct {
	manifest *project.Manifest // nil без mslayout.toml
	color    string
	quiet    bool
	minSev   diag.Severity
	timings  bool
	maxDiag  int
	cache    bool
	cacheDir string
	stderr   io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	pf := cmd.Root().PersistentFlags()
	s := &session{stderr: cmd.ErrOrStderr()}
	var err error
	if s.color, err = pf.GetString("color"); err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	sevValue, err := pf.GetString("severity")
	if err != nil {
		return nil, fmt.Errorf("failed to get severity flag: %w", err)
	}
	if s.minSev, err = diag.ParseSeverity(sevValue); err != nil {
		return nil, err
	}
	if s.quiet {
		s.minSev = diag.SevError
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiag, err = pf.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.cache, err = pf.GetBool("cache"); err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if s.cacheDir, err = pf.GetString("cache-dir"); err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	switch s.color {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.color)
	}

	m, ok, err := project.LoadManifest(".")
	if err != nil {
		return nil, err
	}
	if ok {
		s.manifest = m
		// флаги важнее манифеста
		if !pf.Changed("color") {
			s.color = m.Config.Output.Color
		}
		if !pf.Changed("cache") {
			s.cache = m.CacheEnabled()
		}
		if !pf.Changed("cache-dir") {
			s.cacheDir = m.CacheDir()
		}
	}
	return s, nil
}

// useColor: f may be nil when output is redirected into a buffer.
func (s *session) useColor(f *os.File) bool {
	return s.color == "on" || (s.color == "auto" && f != nil && isTerminal(f))
}

func stdoutFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.OutOrStdout().(*os.File)
	return f
}

// outputFormat returns --format when given, else [output].format, else pretty.
func (s *session) outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && s.manifest != nil {
		format = s.manifest.Config.Output.Format
	}
	switch format {
	case "pretty", "json":
		return format, nil
	}
	return "", fmt.Errorf("unknown format: %s", format)
}

func addDesignFlags(cmd *cobra.Command) {
	cmd.Flags().String("bsv", "", "generated BSV file (default [design].bsv from mslayout.toml)")
	cmd.Flags().String("top", "", "top-level constructor (default [design].top, then "+ast.TopLevelWrapper+")")
}

// design picks the BSV file and top level: flags first, then the manifest.
func (s *session) design(cmd *cobra.Command) (path, top string, err error) {
	if path, err = cmd.Flags().GetString("bsv"); err != nil {
		return "", "", fmt.Errorf("failed to get bsv flag: %w", err)
	}
	if top, err = cmd.Flags().GetString("top"); err != nil {
		return "", "", fmt.Errorf("failed to get top flag: %w", err)
	}
	if path == "" && s.manifest != nil {
		path = s.manifest.DesignPath()
	}
	if path == "" {
		return "", "", errors.New(noDesignMessage)
	}
	return path, s.topOrDefault(top), nil
}

func (s *session) topOrDefault(top string) string {
	top = strings.TrimSpace(top)
	if top == "" && s.manifest != nil {
		top = s.manifest.Config.Design.Top
	}
	if top == "" {
		top = ast.TopLevelWrapper
	}
	return top
}

// driverOptions opens the disk cache. A cache that cannot be opened is a
// warning, never a failure.
func (s *session) driverOptions() driver.Options {
	opts := driver.Options{MaxDiagnostics: s.maxDiag, Timings: s.timings}
	if !s.cache {
		return opts
	}
	var (
		dc  *driver.DiskCache
		err error
	)
	if s.cacheDir != "" {
		dc, err = driver.OpenDiskCacheAt(s.cacheDir)
	} else {
		dc, err = driver.OpenDiskCache("mslayout")
	}
	if err != nil {
		if !s.quiet {
			fmt.Fprintf(s.stderr, "warning: layout cache disabled: %v\n", err)
		}
		return opts
	}
	opts.Cache = dc
	return opts
}

// resolve builds the resolver for the command's design and prints its
// diagnostics. A missing top level is reported as LAY3001 and turns into
// a silent exit status 1.
func (s *session) resolve(cmd *cobra.Command) (*driver.Result, error) {
	path, top, err := s.design(cmd)
	if err != nil {
		return nil, err
	}
	res, err := driver.Resolve(cmd.Context(), path, top, s.driverOptions())
	if res != nil {
		s.printDiagnostics(res.Bag, res.FileSet)
	}
	if err != nil {
		if errors.Is(err, &resolver.Error{Kind: resolver.ErrTopLevelNotFound}) {
			cmd.SilenceErrors = true
			return nil, exitCode(1)
		}
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return res, nil
}

func (s *session) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if s.minSev > diag.SevInfo {
		bag = bag.Filter(s.minSev)
		if bag.Len() == 0 {
			return
		}
	}
	bag.Sort()
	stderrFile, _ := s.stderr.(*os.File)
	diagfmt.Pretty(s.stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     s.useColor(stderrFile),
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: !s.quiet,
		ShowFixes: !s.quiet,
	})
}
