package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var isBVICmd = &cobra.Command{
	Use:   "isbvi [flags] mkName...",
	Short: "Check whether constructors are imported BVI black boxes",
	Long: `Isbvi prints yes or no for each constructor and exits with status 1 when
any of them is not an import "BVI" module.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIsBVI,
}

func init() {
	addDesignFlags(isBVICmd)
}

func runIsBVI(cmd *cobra.Command, args []string) error {
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
	all := true
	for _, mk := range args {
		ok := res.Resolver.IsBVI(mk)
		all = all && ok
		answer := "no"
		if ok {
			answer = "yes"
		}
		if len(args) == 1 {
			fmt.Fprintln(out, answer)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", mk, answer)
		}
	}
	if !all {
		cmd.SilenceErrors = true
		return exitCode(1)
	}
	return nil
}
