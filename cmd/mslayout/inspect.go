package main

import (
	"bufio"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"mslayout/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags]",
	Short: "Interactively translate wires of a design",
	Long: `Inspect opens a prompt that translates wire names as you type. When stdin
or stdout is not a terminal it reads wires line by line and prints one answer
per line instead.`,
	RunE: runInspect,
}

func init() {
	addDesignFlags(inspectCmd)
	inspectCmd.Flags().String("ui", "auto", "interactive prompt (auto|on|off)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	res, err := s.resolve(cmd)
	if err != nil {
		return err
	}

	if !shouldUseTUI(mode) {
		return answerLines(cmd.InOrStdin(), cmd.OutOrStdout(), res.Resolver)
	}
	program := tea.NewProgram(ui.NewInspectModel(res.Resolver), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

// answerLines is the non-interactive inspector: "wire -> path : type (width)".
func answerLines(r io.Reader, w io.Writer, l ui.Lookup) error {
	sc := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	for sc.Scan() {
		a := ui.Ask(l, sc.Text())
		if a.Wire == "" {
			continue
		}
		if a.Type == "" {
			fmt.Fprintf(bw, "%s -> %s : unknown\n", a.Wire, a.Translated)
		} else {
			fmt.Fprintf(bw, "%s -> %s : %s (%d)\n", a.Wire, a.Translated, a.Type, a.Width)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
