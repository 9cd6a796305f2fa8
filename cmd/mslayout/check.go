package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mslayout/internal/driver"
	"mslayout/internal/project"
	"mslayout/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.bsv[:top]...]",
	Short: "Resolve several designs and report their diagnostics",
	Long: `Check resolves every given design concurrently and prints the diagnostics
of each. A design is a BSV path or a glob pattern (build/**.bsv), optionally
followed by :top; without a top the --top flag, the manifest and finally
mkTopLevel___ are tried. Without arguments the manifest design is checked.
Exits 1 if any design fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("top", "", "default top-level constructor")
	checkCmd.Flags().Int("jobs", 0, "designs resolved in parallel (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	checkCmd.Flags().StringSlice("exclude", nil, "glob patterns of files or directories to skip")
}

// splitDesignArg splits "path:top". A colon followed by a path separator is
// part of the path (C:\designs\Top.bsv).
func splitDesignArg(arg string) (path, top string) {
	i := strings.LastIndexByte(arg, ':')
	if i <= 0 || strings.ContainsAny(arg[i+1:], `/\`) {
		return arg, ""
	}
	return arg[:i], arg[i+1:]
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defTop, err := cmd.Flags().GetString("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	excludes, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}

	var reqs []driver.Request
	if len(args) == 0 {
		if s.manifest == nil {
			return fmt.Errorf("%s", noDesignMessage)
		}
		reqs = append(reqs, driver.Request{Path: s.manifest.DesignPath(), Top: s.topOrDefault(defTop)})
	}
	for _, arg := range args {
		pattern, top := splitDesignArg(arg)
		if top == "" {
			top = defTop
		}
		paths, err := project.ExpandDesigns([]string{pattern}, excludes)
		if err != nil {
			return err
		}
		for _, path := range paths {
			reqs = append(reqs, driver.Request{Path: path, Top: s.topOrDefault(top)})
		}
	}
	if len(reqs) == 0 {
		return fmt.Errorf("every design was excluded")
	}
	labels := make([]string, len(reqs))
	for i, r := range reqs {
		labels[i] = r.Path + ":" + r.Top
	}

	opts := s.driverOptions()
	// один кэш в памяти на все запросы: одинаковые пары file:top собираются один раз
	opts.Memory = driver.NewMemoryCache(len(reqs))

	var (
		results []*driver.Result
		errs    []error
	)
	if !s.quiet && shouldUseTUI(mode) {
		results, errs, err = checkWithUI(cmd.Context(), reqs, labels, opts, jobs)
		if err != nil {
			return err
		}
	} else {
		results, errs = driver.ResolveAll(cmd.Context(), reqs, opts, jobs)
	}

	failed := 0
	out := cmd.OutOrStdout()
	for i, res := range results {
		if res != nil {
			s.printDiagnostics(res.Bag, res.FileSet)
		}
		switch {
		case errs[i] != nil:
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", labels[i], errs[i])
		case res.Bag.HasErrors():
			failed++
			fmt.Fprintf(out, "FAIL %s\n", labels[i])
		default:
			if !s.quiet {
				note := ""
				if res.CacheHit {
					note = " (cached)"
				}
				fmt.Fprintf(out, "ok   %s%s\n", labels[i], note)
			}
		}
	}
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d designs failed\n", failed, len(reqs))
		cmd.SilenceErrors = true
		return exitCode(1)
	}
	return nil
}

type checkOutcome struct {
	results []*driver.Result
	errs    []error
}

func checkWithUI(ctx context.Context, reqs []driver.Request, labels []string, opts driver.Options, jobs int) ([]*driver.Result, []error, error) {
	events := make(chan ui.Event, 256)
	for i := range reqs {
		label := labels[i]
		reqs[i].Observer = ui.Observer(label, events)
		reqs[i].Done = func(res *driver.Result, err error) {
			status := ui.StatusDone
			if err != nil || (res != nil && res.Bag.HasErrors()) {
				status = ui.StatusError
			}
			events <- ui.Event{File: label, Status: status}
		}
	}

	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		results, errs := driver.ResolveAll(ctx, reqs, opts, jobs)
		close(events)
		outcomeCh <- checkOutcome{results: results, errs: errs}
	}()

	model := ui.NewProgressModel("checking", labels, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после выхода модель канал не читает; не даём воркерам зависнуть
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	return outcome.results, outcome.errs, uiErr
}
