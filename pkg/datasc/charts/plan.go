package charts

import (
	"fmt"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options controls chart planning and rendering.
type Options struct {
	// Width is the image width in pixels. Zero means DefaultWidth.
	Width int
	// Height is the image height in pixels. Zero means DefaultHeight.
	Height int
	// LabelLineYAxis makes the line chart's second label write go to the
	// y axis. By default the x label is written twice and the y axis stays
	// unlabelled.
	LabelLineYAxis bool
}

// GetWidth returns the image width, falling back to DefaultWidth.
func (o Options) GetWidth() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

// GetHeight returns the image height, falling back to DefaultHeight.
func (o Options) GetHeight() int {
	if o.Height <= 0 {
		return DefaultHeight
	}
	return o.Height
}

// Plan transforms t for the requested chart and assigns its labels.
// The table is not modified.
func Plan(t *models.Table, req models.ChartRequest, opts Options) (*models.Figure, error) {
	fig := &models.Figure{Kind: req.Kind}
	x, y := req.Axes.X, req.Axes.Y

	switch req.Kind {
	case models.ChartLine:
		points, xa, ya, err := XYPoints(t, x, y)
		if err != nil {
			return nil, err
		}
		fig.Points, fig.XAxis, fig.YAxis = points, xa, ya
		fig.Labels.SetXLabel(x)
		if opts.LabelLineYAxis {
			fig.Labels.SetYLabel(y)
		} else {
			fig.Labels.SetXLabel(x)
		}
		fig.Labels.SetTitle(fmt.Sprintf("Line Graph Of %s Vs %s", x, y))

	case models.ChartScatter:
		points, xa, ya, err := XYPoints(t, x, y)
		if err != nil {
			return nil, err
		}
		fig.Points, fig.XAxis, fig.YAxis = points, xa, ya
		fig.Labels.SetXLabel(x)
		fig.Labels.SetYLabel(y)
		fig.Labels.SetTitle(fmt.Sprintf("Scatter Graph Of %s Vs %s", x, y))

	case models.ChartBar:
		bars, err := GroupMeans(t, x, y)
		if err != nil {
			return nil, err
		}
		fig.Bars = bars
		fig.XAxis = models.Axis{Scale: models.ScaleCategory, Categories: barKeys(bars)}
		fig.YAxis = models.Axis{Scale: models.ScaleLinear}
		fig.Labels.SetXLabel(x)
		fig.Labels.SetYLabel(y)
		fig.Labels.SetTitle(fmt.Sprintf("Bar Graph Of %s Vs %s", x, y))

	case models.ChartHeatmap:
		m := Correlation(t)
		fig.Matrix = m
		fig.XAxis = models.Axis{Scale: models.ScaleCategory, Categories: m.Columns}
		fig.YAxis = models.Axis{Scale: models.ScaleCategory, Categories: m.Columns}

	case models.ChartPie:
		wedges, err := Wedges(t, x)
		if err != nil {
			return nil, err
		}
		fig.Wedges = wedges
		fig.Labels.SetTitle(fmt.Sprintf("Distribution of %s", x))

	default:
		return nil, fmt.Errorf("unsupported chart kind: %q", req.Kind)
	}

	return fig, nil
}

func barKeys(bars []models.Bar) []string {
	keys := make([]string, len(bars))
	for i, b := range bars {
		keys[i] = b.Key
	}
	return keys
}
