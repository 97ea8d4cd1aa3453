package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/datasc-go/pkg/datasc"
	"github.com/ukaji3/datasc-go/pkg/datasc/output"
)

type summaryFlags struct {
	columns    []string
	format     string
	pretty     bool
	outputPath string
	sheet      string
	rows       int
}

func newSummaryCmd() *cobra.Command {
	f := &summaryFlags{}
	cmd := &cobra.Command{
		Use:   "summary [input.csv|input.xlsx]",
		Short: "Print a preview and descriptive statistics of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(args[0], f)
		},
	}

	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "Columns to preview (default: all)")
	cmd.Flags().StringVar(&f.format, "format", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Workbook sheet to read (default: first sheet)")
	cmd.Flags().IntVar(&f.rows, "rows", datasc.DefaultPreviewRows, "Number of preview rows")
	return cmd
}

func runSummary(inputPath string, f *summaryFlags) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("invalid format: %s (must be text or json)", f.format)
	}

	opts := datasc.DefaultOptions()
	opts.Sheet = f.sheet
	opts.PreviewRows = f.rows

	t, err := datasc.LoadFile(inputPath, opts)
	if err != nil {
		return err
	}

	report, err := datasc.Explore(t, f.columns, opts)
	if err != nil {
		return err
	}

	var data []byte
	switch f.format {
	case "json":
		data, err = output.ToJSON(report, f.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = append(data, '\n')
	default:
		var buf bytes.Buffer
		if err := output.WriteText(&buf, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		data = buf.Bytes()
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
