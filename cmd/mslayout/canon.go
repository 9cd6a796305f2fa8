package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mslayout/internal/canon"
	"mslayout/internal/driver"
)

var canonCmd = &cobra.Command{
	Use:   "canon [flags] file.bsv|-",
	Short: "Print the canonical form of BSV text",
	Long: `Canon prints the text with comments dropped and whitespace normalized, the
form the extractor and the layout cache key work on. With --key it prints the
cache key for the given --top instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCanon,
}

func init() {
	canonCmd.Flags().Bool("key", false, "print the layout cache key instead of the text")
	canonCmd.Flags().String("top", "", "top-level constructor for --key")
}

func runCanon(cmd *cobra.Command, args []string) error {
	key, err := cmd.Flags().GetBool("key")
	if err != nil {
		return fmt.Errorf("failed to get key flag: %w", err)
	}
	top, err := cmd.Flags().GetString("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}

	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if key {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		k := driver.CacheKey(text, s.topOrDefault(top))
		_, err = fmt.Fprintln(out, hex.EncodeToString(k[:]))
		return err
	}
	_, err = fmt.Fprintln(out, canon.Canonicalize(text))
	return err
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
