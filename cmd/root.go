package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "go-wim",
	Short: "WIM image metadata inspector",
	Long: `go-wim is a read-only command-line tool for extracting normalized
metadata from Windows Imaging Format (WIM) containers: architecture, edition,
version, service pack, installation type, timestamps, file counts, sizes and
boot configuration, resolved per image.

Reading the container itself is delegated to wimlib-imagex; go-wim normalizes
what the container exposes, falling back to the embedded XML metadata blob
when direct properties are missing.

Commands:
  info    Show full metadata records for images in a container
  list    List images with a one-line summary each`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")

	cobra.OnInitialize(configureLogging)
}

// configureLogging sets the default slog level from the output flags.
func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
