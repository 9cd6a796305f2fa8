package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var widthCmd = &cobra.Command{
	Use:   "width [flags] type...",
	Short: "Print the bit width of types",
	Long: `Width prints the total bit width of each type, or -1 when the type cannot
be resolved. Type names may be written in any spacing: "Vector#( 4,Bit#(8) )"
and "Vector#(4, Bit#(8))" are the same type.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWidth,
}

func init() {
	addDesignFlags(widthCmd)
}

func runWidth(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	res, err := s.resolve(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		fmt.Fprintln(out, res.Resolver.Width(args[0]))
		return nil
	}
	for _, t := range args {
		fmt.Fprintf(out, "%s\t%d\n", t, res.Resolver.Width(t))
	}
	return nil
}
