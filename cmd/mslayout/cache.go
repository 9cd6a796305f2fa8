package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mslayout/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk layout cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dc, err := openCache(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dc.Dir())
		return err
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dc, err := openCache(cmd)
		if err != nil {
			return err
		}
		if err := dc.DropAll(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", dc.Dir(), err)
		}
		s, err := newSession(cmd)
		if err == nil && !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", dc.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCache ignores --cache=false: managing the cache is explicit.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, err
	}
	if s.cacheDir != "" {
		return driver.OpenDiskCacheAt(s.cacheDir)
	}
	return driver.OpenDiskCache("mslayout")
}
