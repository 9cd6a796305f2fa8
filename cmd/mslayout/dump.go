package main

import (
	"github.com/spf13/cobra"

	"mslayout/internal/diagfmt"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags]",
	Short: "Print ports, registers and type layouts of a design",
	RunE:  runDump,
}

func init() {
	addDesignFlags(dumpCmd)
	dumpCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDump(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	format, err := s.outputFormat(cmd)
	if err != nil {
		return err
	}
	res, err := s.resolve(cmd)
	if err != nil {
		return err
	}
	if format == "json" {
		return diagfmt.FormatLayoutJSON(cmd.OutOrStdout(), res.Resolver)
	}
	return diagfmt.FormatLayoutPretty(cmd.OutOrStdout(), res.Resolver, s.useColor(stdoutFile(cmd)))
}
