package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/datasc-go/pkg/datasc"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

type chartFlags struct {
	kind       string
	x, y       string
	outputPath string
	sheet      string
	width      int
	height     int
	labelLineY bool
}

func newChartCmd() *cobra.Command {
	f := &chartFlags{}
	cmd := &cobra.Command{
		Use:   "chart [input.csv|input.xlsx]",
		Short: "Draw one chart of a file as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.kind, "kind", "", "Chart kind: line, scatter, bar, heatmap, pie")
	cmd.Flags().StringVar(&f.x, "x", "", "X axis column")
	cmd.Flags().StringVar(&f.y, "y", "", "Y axis column")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "chart.png", "Output PNG path")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Workbook sheet to read (default: first sheet)")
	cmd.Flags().IntVar(&f.width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "Image height in pixels")
	cmd.Flags().BoolVar(&f.labelLineY, "label-line-y", false, "Label the y axis of line charts")
	cmd.MarkFlagRequired("kind")
	return cmd
}

func runChart(cmd *cobra.Command, inputPath string, f *chartFlags) error {
	kind, err := models.ParseChartKind(f.kind)
	if err != nil {
		return err
	}

	opts := datasc.DefaultOptions()
	opts.Sheet = f.sheet
	if f.width > 0 {
		opts.ChartWidth = f.width
	}
	if f.height > 0 {
		opts.ChartHeight = f.height
	}
	if cmd.Flags().Changed("label-line-y") {
		opts.LabelLineYAxis = &f.labelLineY
	}

	t, err := datasc.LoadFile(inputPath, opts)
	if err != nil {
		return err
	}

	req := models.ChartRequest{Kind: kind, Axes: models.AxisChoice{X: f.x, Y: f.y}}
	var buf bytes.Buffer
	fig, err := datasc.Chart(t, req, &buf, opts)
	if err != nil {
		return fmt.Errorf("chart failed: %w", err)
	}

	if err := os.WriteFile(f.outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if fig.Labels.Title != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", fig.Labels.Title, f.outputPath)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", kind, f.outputPath)
	}
	return nil
}
