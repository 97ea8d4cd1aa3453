package models

import (
	"fmt"
	"strings"
)

// ChartKind selects one of the supported chart renderings.
type ChartKind string

const (
	// ChartLine connects (x, y) pairs in row order.
	ChartLine ChartKind = "line"
	// ChartScatter draws unconnected (x, y) points.
	ChartScatter ChartKind = "scatter"
	// ChartBar draws the mean of y for every x group.
	ChartBar ChartKind = "bar"
	// ChartHeatmap draws the correlation matrix of the numeric columns.
	ChartHeatmap ChartKind = "heatmap"
	// ChartPie draws the frequency of each distinct x value.
	ChartPie ChartKind = "pie"
)

// ChartKinds lists every kind in display order.
var ChartKinds = []ChartKind{ChartLine, ChartScatter, ChartBar, ChartHeatmap, ChartPie}

// ParseChartKind parses a kind name, ignoring case.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ChartKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid chart kind: %q (must be line, scatter, bar, heatmap, or pie)", s)
}

// AxisChoice names the x and y columns of a chart.
type AxisChoice struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// ChartRequest asks for exactly one chart.
type ChartRequest struct {
	Kind ChartKind  `json:"kind"`
	Axes AxisChoice `json:"axes"`
}

// Labels records the text assigned to a chart, including how often each axis
// label was written.
type Labels struct {
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XLabel is the x-axis label.
	XLabel string `json:"x_label,omitempty"`
	// YLabel is the y-axis label.
	YLabel string `json:"y_label,omitempty"`
	// XLabelWrites counts assignments to the x-axis label.
	XLabelWrites int `json:"x_label_writes"`
	// YLabelWrites counts assignments to the y-axis label.
	YLabelWrites int `json:"y_label_writes"`
}

// SetXLabel assigns the x-axis label.
func (l *Labels) SetXLabel(s string) {
	l.XLabel = s
	l.XLabelWrites++
}

// SetYLabel assigns the y-axis label.
func (l *Labels) SetYLabel(s string) {
	l.YLabel = s
	l.YLabelWrites++
}

// SetTitle assigns the chart title.
func (l *Labels) SetTitle(s string) {
	l.Title = s
}

// AxisScale tells the renderer how to read plotted coordinates.
type AxisScale string

const (
	// ScaleLinear plots raw numbers.
	ScaleLinear AxisScale = "linear"
	// ScaleTime plots nanoseconds since the Unix epoch.
	ScaleTime AxisScale = "time"
	// ScaleCategory plots category positions 0..n-1 with tick labels.
	ScaleCategory AxisScale = "category"
)

// Axis describes how one plotted dimension maps to values.
type Axis struct {
	Scale AxisScale `json:"scale"`
	// Categories holds tick labels for ScaleCategory, indexed by position.
	Categories []string `json:"categories,omitempty"`
}

// Point is one plotted (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bar is one group of a bar chart.
type Bar struct {
	// Key is the group value of x.
	Key string `json:"key"`
	// Value is the mean of y within the group.
	Value Float `json:"value"`
	// Count is the number of non-null y values averaged.
	Count int `json:"count"`
}

// Wedge is one distinct value of a pie chart.
type Wedge struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CorrelationMatrix is a square matrix of pairwise correlations.
type CorrelationMatrix struct {
	Columns []string  `json:"columns"`
	Values  [][]Float `json:"values"`
}

// At returns the correlation of columns i and j.
func (m CorrelationMatrix) At(i, j int) float64 {
	return float64(m.Values[i][j])
}

// Figure is a chart ready to render: the transformed data plus its labels.
// Exactly one of Points, Bars, Matrix or Wedges is set, depending on Kind.
type Figure struct {
	Kind   ChartKind          `json:"kind"`
	Labels Labels             `json:"labels"`
	XAxis  Axis               `json:"x_axis"`
	YAxis  Axis               `json:"y_axis"`
	Points []Point            `json:"points,omitempty"`
	Bars   []Bar              `json:"bars,omitempty"`
	Matrix *CorrelationMatrix `json:"matrix,omitempty"`
	Wedges []Wedge            `json:"wedges,omitempty"`
}
