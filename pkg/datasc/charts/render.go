package charts

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/wcharczuk/go-chart/v2"
)

// Render draws a planned figure as PNG.
// Errors reported by go-chart, such as an empty series, are returned
// unchanged. Nothing is written to w unless the whole image rendered.
func Render(fig *models.Figure, w io.Writer, opts Options) error {
	var buf bytes.Buffer
	var err error
	switch fig.Kind {
	case models.ChartLine, models.ChartScatter:
		err = renderXY(fig, &buf, opts)
	case models.ChartBar:
		err = renderBar(fig, &buf, opts)
	case models.ChartHeatmap:
		err = renderHeatmap(fig, &buf, opts)
	case models.ChartPie:
		err = renderPie(fig, &buf, opts)
	default:
		err = fmt.Errorf("unsupported chart kind: %q", fig.Kind)
	}
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// Draw plans and renders one chart.
func Draw(t *models.Table, req models.ChartRequest, w io.Writer, opts Options) (*models.Figure, error) {
	fig, err := Plan(t, req, opts)
	if err != nil {
		return nil, err
	}
	if err := Render(fig, w, opts); err != nil {
		return fig, err
	}
	return fig, nil
}

func renderXY(fig *models.Figure, w io.Writer, opts Options) error {
	xs := make([]float64, len(fig.Points))
	ys := make([]float64, len(fig.Points))
	for i, p := range fig.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	series := chart.ContinuousSeries{Name: fig.Labels.Title, XValues: xs, YValues: ys}
	if fig.Kind == models.ChartScatter {
		series.Style = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3}
	}

	c := chart.Chart{
		Title:      fig.Labels.Title,
		Width:      opts.GetWidth(),
		Height:     opts.GetHeight(),
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      xAxis(fig.XAxis, fig.Labels.XLabel, xs),
		YAxis:      yAxis(fig.YAxis, fig.Labels.YLabel, ys),
		Series:     []chart.Series{series},
	}
	return c.Render(chart.PNG, w)
}

func xAxis(a models.Axis, name string, values []float64) chart.XAxis {
	xa := chart.XAxis{Name: name}
	switch a.Scale {
	case models.ScaleTime:
		xa.ValueFormatter = chart.TimeValueFormatter
		xa.Range = paddedRange(values, float64(time.Second))
	case models.ScaleCategory:
		xa.Ticks = categoryTicks(a.Categories)
		xa.TickStyle = chart.Style{TextRotationDegrees: 45}
	default:
		xa.Range = paddedRange(values, 1)
	}
	return xa
}

func yAxis(a models.Axis, name string, values []float64) chart.YAxis {
	ya := chart.YAxis{Name: name}
	switch a.Scale {
	case models.ScaleTime:
		ya.ValueFormatter = chart.TimeValueFormatter
		ya.Range = paddedRange(values, float64(time.Second))
	case models.ScaleCategory:
		ya.Ticks = categoryTicks(a.Categories)
	default:
		ya.Range = paddedRange(values, 1)
	}
	return ya
}

// paddedRange returns a range of pad around the value when every value is
// the same, and nil otherwise so go-chart fits the range to the data.
// go-chart cannot draw an axis whose range has zero width.
func paddedRange(values []float64, pad float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// categoryTicks labels positions 0..n-1. A lone category gets blank ticks on
// either side so the axis keeps a non-zero width.
func categoryTicks(categories []string) []chart.Tick {
	ticks := make([]chart.Tick, len(categories))
	for i, c := range categories {
		ticks[i] = chart.Tick{Value: float64(i), Label: c}
	}
	if len(ticks) == 1 {
		ticks = []chart.Tick{{Value: -1}, ticks[0], {Value: 1}}
	}
	return ticks
}

func renderBar(fig *models.Figure, w io.Writer, opts Options) error {
	var bars []chart.Value
	lo, hi := 0.0, 0.0
	for _, b := range fig.Bars {
		v := float64(b.Value)
		if b.Count == 0 || math.IsNaN(v) {
			continue
		}
		bars = append(bars, chart.Value{Label: b.Key, Value: v})
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	width, height := opts.GetWidth(), opts.GetHeight()
	bc := chart.BarChart{
		Title:      fig.Labels.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 40, Right: 20, Bottom: 40}},
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		UseBaseValue: true,
		Elements:     []chart.Renderable{axisNames(fig.Labels.XLabel, fig.Labels.YLabel, width, height)},
	}
	return bc.Render(chart.PNG, w)
}

// axisNames draws the x name centred along the bottom edge and the y name
// rotated along the left edge of a chart that has no axis names of its own.
func axisNames(xName, yName string, width, height int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		style := chart.Style{FontSize: 10, FontColor: chart.DefaultTextColor}.InheritFrom(defaults)

		if xName != "" {
			tb := chart.Draw.MeasureText(r, xName, style)
			chart.Draw.Text(r, xName, (width-tb.Width())/2, height-8, style)
		}
		if yName != "" {
			tb := chart.Draw.MeasureText(r, yName, style)
			rotated := style
			rotated.TextRotationDegrees = -90
			x := 8 + tb.Height()
			y := canvasBox.Top + (canvasBox.Height()+tb.Width())/2
			chart.Draw.Text(r, yName, x, y, rotated)
		}
	}
}

func renderPie(fig *models.Figure, w io.Writer, opts Options) error {
	values := make([]chart.Value, len(fig.Wedges))
	for i, wd := range fig.Wedges {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", wd.Label, wd.Percent),
			Value: float64(wd.Count),
		}
	}

	pc := chart.PieChart{
		Title:      fig.Labels.Title,
		Width:      opts.GetWidth(),
		Height:     opts.GetHeight(),
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Values:     values,
	}
	return pc.Render(chart.PNG, w)
}
