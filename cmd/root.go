package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clustrace",
	Short: "Transmission-network construction and annotation",
	// Execute reports errors itself; keep cobra from adding its own
	// "Error:" line and usage text.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI, printing a single line to stderr and exiting
// non-zero on any ingestion, I/O, or serialization error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
