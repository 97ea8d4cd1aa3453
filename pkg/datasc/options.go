// Package datasc loads CSV and xlsx files into typed tables, summarizes them
// and draws charts of their columns.
package datasc

import "github.com/ukaji3/datasc-go/pkg/datasc/charts"

// DefaultPreviewRows is the number of rows shown in a preview.
const DefaultPreviewRows = 5

// Options configures loading, previews and charts.
type Options struct {
	// PreviewRows is the number of leading rows in a preview.
	// Zero or less means DefaultPreviewRows.
	PreviewRows int
	// Sheet names the workbook sheet to read. Empty selects the first sheet.
	Sheet string
	// ChartWidth and ChartHeight set the image size in pixels.
	ChartWidth  int
	ChartHeight int
	// LabelLineYAxis specifies whether the line chart labels its y axis.
	// If nil, defaults to false: the x label is written twice instead.
	LabelLineYAxis *bool
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		PreviewRows: DefaultPreviewRows,
		ChartWidth:  charts.DefaultWidth,
		ChartHeight: charts.DefaultHeight,
	}
}

// GetPreviewRows returns the preview length.
func (o Options) GetPreviewRows() int {
	if o.PreviewRows <= 0 {
		return DefaultPreviewRows
	}
	return o.PreviewRows
}

// ShouldLabelLineYAxis returns whether the line chart labels its y axis.
func (o Options) ShouldLabelLineYAxis() bool {
	if o.LabelLineYAxis != nil {
		return *o.LabelLineYAxis
	}
	return false
}

// ChartOptions returns the chart settings.
func (o Options) ChartOptions() charts.Options {
	return charts.Options{
		Width:          o.ChartWidth,
		Height:         o.ChartHeight,
		LabelLineYAxis: o.ShouldLabelLineYAxis(),
	}
}
