package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mslayout/internal/driver"
	"mslayout/internal/resolver"
	"mslayout/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags]",
	Short: "Re-resolve the design every time the compiler rewrites it",
	Long: `Watch resolves the design once, then again whenever the BSV file changes
on disk, and prints a one-line summary plus diagnostics for each run. A run
that fails (missing file, unknown top) is reported and watching continues.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addDesignFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a rewrite is picked up")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	defer dumpTraceOnPanic(cmd)

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path, top, err := s.design(cmd)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	w, err := watch.New([]string{path}, debounce)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	opts := s.driverOptions()
	once := func() {
		res, err := driver.Resolve(cmd.Context(), path, top, opts)
		if res != nil {
			s.printDiagnostics(res.Bag, res.FileSet)
		}
		printWatchSummary(out, path, top, res, err)
	}
	w.OnChange = func([]string) { once() }
	w.OnError = func(err error) {
		fmt.Fprintf(s.stderr, "watch: %v\n", err)
	}

	once()
	return w.Run(cmd.Context())
}

func printWatchSummary(out io.Writer, path, top string, res *driver.Result, err error) {
	stamp := time.Now().Format("15:04:05")
	switch {
	case errors.Is(err, &resolver.Error{Kind: resolver.ErrTopLevelNotFound}):
		fmt.Fprintf(out, "%s FAIL %s:%s: top-level not found\n", stamp, path, top)
	case err != nil:
		fmt.Fprintf(out, "%s FAIL %s:%s: %v\n", stamp, path, top, err)
	default:
		r := res.Resolver
		note := ""
		if res.CacheHit {
			note = " (cached)"
		}
		fmt.Fprintf(out, "%s ok   %s:%s: %d inputs, %d outputs, %d registers, %d types%s\n",
			stamp, path, top, len(r.Inputs()), len(r.Outputs()), len(r.Registers()), len(r.Types()), note)
	}
}
