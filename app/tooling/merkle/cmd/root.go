// Package cmd contains the merkle tooling commands.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	format    string
	labelFile string
)

// Supported output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", formatText, "Output format: text, json or cbor.")
	rootCmd.PersistentFlags().StringVarP(&labelFile, "labels", "l", "", "Path to a file with one label per line.")
}

var rootCmd = &cobra.Command{
	Use:           "merkle",
	Short:         "Build and explore deterministic merkle trees",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

// readLabels returns the labels from the label file when one is provided,
// otherwise the command arguments.
func readLabels(args []string) ([]string, error) {
	if labelFile == "" {
		return args, nil
	}

	f, err := os.Open(labelFile)
	if err != nil {
		return nil, fmt.Errorf("opening labels: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			labels = append(labels, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading labels: %w", err)
	}

	return labels, nil
}

func checkFormat() error {
	switch format {
	case formatText, formatJSON, formatCBOR:
		return nil
	}
	return errors.New("unknown format " + format)
}
