// Package main provides the setscore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "setscore",
		Short: "Predict concert setlists and score the results",
		Long: `Setscore manages setlist predictions, scores them against the actual
setlist after the show, and produces shareable links and export files.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newPredictionsCmd(),
		newImportCmd(),
		newExportCmd(),
		newShareCmd(),
		newSlotsCmd(),
		newParseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
