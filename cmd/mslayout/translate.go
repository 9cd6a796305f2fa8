package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mslayout/internal/driver"
)

var translateCmd = &cobra.Command{
	Use:   "translate [flags] [wire...]",
	Short: "Translate flattened wire names to source paths",
	Long: `Translate maps simulator wire names such as head[19]$D_IN back to source
paths such as head.data[3]. Without arguments wires are read from stdin, one
per line. Wires the design does not know are printed unchanged.`,
	RunE: runTranslate,
}

func init() {
	addDesignFlags(translateCmd)
	translateCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	translateCmd.Flags().Bool("pairs", false, "print wire and translation separated by a tab")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	pairs, err := cmd.Flags().GetBool("pairs")
	if err != nil {
		return fmt.Errorf("failed to get pairs flag: %w", err)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	res, err := s.resolve(cmd)
	if err != nil {
		return err
	}

	wires := args
	if len(wires) == 0 {
		if wires, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read wires: %w", err)
		}
	}
	out, err := driver.TranslateBatch(cmd.Context(), res.Resolver, wires, jobs)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for i, t := range out {
		if pairs {
			fmt.Fprintf(w, "%s\t%s\n", wires[i], t)
		} else {
			fmt.Fprintln(w, t)
		}
	}
	return w.Flush()
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
