package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mslayout/internal/ast"
	"mslayout/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [flags] [dir]",
	Short: "Create mslayout.toml",
	Long: `Init writes an mslayout.toml manifest into dir (the current directory by
default, created when missing) so later commands can run without --bsv and
--top. It refuses to overwrite an existing manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("bsv", "Translated.bsv", "generated BSV file, relative to dir")
	initCmd.Flags().String("top", "", "top-level constructor (empty uses "+ast.TopLevelWrapper+")")
}

func runInit(cmd *cobra.Command, args []string) error {
	bsv, err := cmd.Flags().GetString("bsv")
	if err != nil {
		return fmt.Errorf("failed to get bsv flag: %w", err)
	}
	top, err := cmd.Flags().GetString("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path, err := project.WriteTemplate(target, bsv, top)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	if _, err := os.Stat(filepath.Join(target, filepath.FromSlash(bsv))); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s does not exist yet; run msc first\n", bsv)
	}
	return nil
}
