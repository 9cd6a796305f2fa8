package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mslayout/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mslayout",
	Short: "Bit layouts of Minispec-generated BSV",
	Long: `mslayout reads the BSV that msc generates, resolves the bit layout of every
type reachable from a top-level module and translates flattened simulator
wire names (head[19]$D_IN) back to source paths (head.data[3]).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiles, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			stopProfiles()
			return err
		}
		traceCleanup = func() {
			stopTrace()
			stopProfiles()
		}
		return nil
	},
}

// traceCleanup сбрасывает трассировщик и профили; PersistentPostRun не
// вызывается при ошибке, поэтому main зовёт его сам.
var traceCleanup func()

// exitCode is a silent failure: whatever needed saying was already printed.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// init registers subcommands and persistent flags; tests drive rootCmd directly.
func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(widthCmd)
	rootCmd.AddCommand(isBVICmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(canonCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress warnings and notes")
	pf.String("severity", "info", "lowest diagnostic severity to print (info|warning|error)")
	pf.Bool("timings", false, "report pipeline phase timings")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to collect")
	pf.Bool("cache", true, "use the on-disk layout cache")
	pf.String("cache-dir", "", "layout cache directory (default $XDG_CACHE_HOME/mslayout)")
	pf.String("trace", "", "trace output file (- for stderr; .ndjson or .json pick the format)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main runs the root command and maps exitCode errors to the process status.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if traceCleanup != nil {
		traceCleanup()
	}
	if err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
