package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Heatmap layout in pixels.
const (
	heatmapMargin    = 20
	heatmapTickGap   = 6
	colorBarWidth    = 20
	colorBarGap      = 24
	colorBarLabelGap = 60
	heatmapFontSize  = 10
)

// nanColor fills cells whose correlation is undefined.
var nanColor = drawing.ColorWhite

// renderHeatmap draws the correlation matrix as a colour grid with the
// column names as tick labels, the x labels rotated, and a colour scale bar
// covering [-1, 1]. A matrix without columns renders an empty grid.
func renderHeatmap(fig *models.Figure, w io.Writer, opts Options) error {
	width, height := opts.GetWidth(), opts.GetHeight()
	r, err := chart.PNG(width, height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)

	chart.Draw.Box(r, chart.Box{Right: width, Bottom: height}, chart.Style{
		FillColor:   chart.ColorWhite,
		StrokeColor: chart.ColorWhite,
		StrokeWidth: 1,
	})

	var names []string
	if fig.Matrix != nil {
		names = fig.Matrix.Columns
	}
	text := chart.Style{Font: font, FontSize: heatmapFontSize, FontColor: chart.DefaultTextColor}

	labelWidth, labelHeight := 0, 0
	for _, name := range names {
		tb := chart.Draw.MeasureText(r, name, text)
		labelWidth = max(labelWidth, tb.Width())
		labelHeight = max(labelHeight, tb.Height())
	}

	grid := chart.Box{
		Top:    heatmapMargin,
		Left:   heatmapMargin + labelWidth + heatmapTickGap,
		Right:  width - heatmapMargin - colorBarWidth - colorBarGap - colorBarLabelGap,
		Bottom: height - heatmapMargin - labelWidth - heatmapTickGap,
	}
	if grid.Right <= grid.Left || grid.Bottom <= grid.Top {
		return fmt.Errorf("heatmap of %d columns does not fit in %dx%d pixels", len(names), width, height)
	}

	n := len(names)
	if n > 0 {
		cellW := float64(grid.Width()) / float64(n)
		cellH := float64(grid.Height()) / float64(n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				cell := chart.Box{
					Top:    grid.Top + int(float64(i)*cellH),
					Left:   grid.Left + int(float64(j)*cellW),
					Bottom: grid.Top + int(float64(i+1)*cellH),
					Right:  grid.Left + int(float64(j+1)*cellW),
				}
				c := correlationColor(fig.Matrix.At(i, j))
				chart.Draw.Box(r, cell, chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1})
			}
		}

		rotated := text
		rotated.TextRotationDegrees = -90
		for k, name := range names {
			tb := chart.Draw.MeasureText(r, name, text)
			cy := grid.Top + int((float64(k)+0.5)*cellH)
			chart.Draw.Text(r, name, grid.Left-heatmapTickGap-tb.Width(), cy+tb.Height()/2, text)

			cx := grid.Left + int((float64(k)+0.5)*cellW)
			chart.Draw.Text(r, name, cx+tb.Height()/2, grid.Bottom+heatmapTickGap+tb.Width(), rotated)
		}
	}

	chart.Draw.Box(r, grid, chart.Style{StrokeColor: chart.DefaultAxisColor, StrokeWidth: 1})
	drawColorBar(r, grid, text)

	return r.Save(w)
}

// drawColorBar draws the colour scale to the right of the grid, -1 at the
// bottom and 1 at the top, with five labelled ticks.
func drawColorBar(r chart.Renderer, grid chart.Box, text chart.Style) {
	bar := chart.Box{
		Top:    grid.Top,
		Left:   grid.Right + colorBarGap,
		Right:  grid.Right + colorBarGap + colorBarWidth,
		Bottom: grid.Bottom,
	}

	h := bar.Height()
	for y := 0; y < h; y++ {
		v := 1 - 2*float64(y)/float64(max(h-1, 1))
		c := correlationColor(v)
		chart.Draw.Box(r, chart.Box{Top: bar.Top + y, Left: bar.Left, Bottom: bar.Top + y + 1, Right: bar.Right},
			chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1})
	}

	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		label := fmt.Sprintf("%.1f", v)
		tb := chart.Draw.MeasureText(r, label, text)
		y := bar.Top + int((1-v)/2*float64(h))
		chart.Draw.Text(r, label, bar.Right+heatmapTickGap, y+tb.Height()/2, text)
	}
}

// correlationColor maps a correlation in [-1, 1] onto the viridis scale.
func correlationColor(v float64) drawing.Color {
	if math.IsNaN(v) {
		return nanColor
	}
	v = math.Max(-1, math.Min(1, v))
	return chart.Viridis(v, -1, 1)
}
