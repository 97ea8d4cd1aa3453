// Package main provides the CLI entry point for datasc.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datasc",
		Short: "Explore CSV and Excel data",
		Long: `datasc loads a CSV or Excel file, summarizes it and draws charts
of its columns, from the command line or over HTTP.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newSummaryCmd(), newChartCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
