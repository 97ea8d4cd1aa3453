package charts

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func mustTable(t *testing.T, cols ...*models.Column) *models.Table {
	t.Helper()
	tbl, err := models.NewTable("test.csv", cols)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return tbl
}

func salesTable(t *testing.T) *models.Table {
	return mustTable(t,
		models.NewTextColumn("region", []string{"B", "A", "A", "C"}, nil),
		models.NewNumberColumn("units", models.TypeInt, []float64{5, 1, 3, 2}, nil),
		models.NewNumberColumn("price", models.TypeFloat, []float64{1.5, 2.5, 0, 4}, []bool{true, true, false, true}),
	)
}

func request(kind models.ChartKind, x, y string) models.ChartRequest {
	return models.ChartRequest{Kind: kind, Axes: models.AxisChoice{X: x, Y: y}}
}

func TestGroupMeans(t *testing.T) {
	tbl := mustTable(t,
		models.NewTextColumn("x", []string{"A", "A", "B"}, nil),
		models.NewNumberColumn("y", models.TypeInt, []float64{1, 3, 5}, nil),
	)

	bars, err := GroupMeans(tbl, "x", "y")
	if err != nil {
		t.Fatalf("GroupMeans failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("Expected 2 bars, got %+v", bars)
	}
	if bars[0].Key != "A" || float64(bars[0].Value) != 2.0 {
		t.Errorf("Expected A->2.0, got %+v", bars[0])
	}
	if bars[1].Key != "B" || float64(bars[1].Value) != 5.0 {
		t.Errorf("Expected B->5.0, got %+v", bars[1])
	}
}

func TestGroupMeansOrderAndNulls(t *testing.T) {
	tbl := mustTable(t,
		models.NewNumberColumn("x", models.TypeFloat, []float64{10, 2, 0, 2}, []bool{true, true, false, true}),
		models.NewNumberColumn("y", models.TypeFloat, []float64{1, 0, 7, 4}, []bool{true, false, true, true}),
	)

	bars, err := GroupMeans(tbl, "x", "y")
	if err != nil {
		t.Fatalf("GroupMeans failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("Expected null x to be dropped, got %+v", bars)
	}
	if bars[0].Key != "2.0" || float64(bars[0].Value) != 4 || bars[0].Count != 1 {
		t.Errorf("Expected numeric order with null y skipped, got %+v", bars[0])
	}
	if bars[1].Key != "10.0" {
		t.Errorf("Expected 10.0 after 2.0, got %+v", bars[1])
	}
}

func TestGroupMeansNonNumeric(t *testing.T) {
	tbl := salesTable(t)

	_, err := GroupMeans(tbl, "units", "region")
	if !errors.Is(err, ErrNotNumeric) {
		t.Errorf("Expected ErrNotNumeric, got %v", err)
	}

	_, err = GroupMeans(tbl, "nope", "units")
	if !errors.Is(err, models.ErrColumnNotFound) {
		t.Errorf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestPlanLabels(t *testing.T) {
	tbl := salesTable(t)

	tests := []struct {
		name    string
		req     models.ChartRequest
		opts    Options
		title   string
		xLabel  string
		yLabel  string
		xWrites int
		yWrites int
	}{
		{"scatter", request(models.ChartScatter, "units", "price"), Options{},
			"Scatter Graph Of units Vs price", "units", "price", 1, 1},
		{"line", request(models.ChartLine, "units", "price"), Options{},
			"Line Graph Of units Vs price", "units", "", 2, 0},
		{"line with y label", request(models.ChartLine, "units", "price"), Options{LabelLineYAxis: true},
			"Line Graph Of units Vs price", "units", "price", 1, 1},
		{"bar", request(models.ChartBar, "region", "units"), Options{},
			"Bar Graph Of region Vs units", "region", "units", 1, 1},
		{"pie", request(models.ChartPie, "region", ""), Options{},
			"Distribution of region", "", "", 0, 0},
		{"heatmap", request(models.ChartHeatmap, "", ""), Options{},
			"", "", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Plan(tbl, tt.req, tt.opts)
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}
			l := fig.Labels
			if l.Title != tt.title {
				t.Errorf("Title = %q, expected %q", l.Title, tt.title)
			}
			if l.XLabel != tt.xLabel || l.YLabel != tt.yLabel {
				t.Errorf("Labels = (%q, %q), expected (%q, %q)", l.XLabel, l.YLabel, tt.xLabel, tt.yLabel)
			}
			if l.XLabelWrites != tt.xWrites || l.YLabelWrites != tt.yWrites {
				t.Errorf("Label writes = (%d, %d), expected (%d, %d)",
					l.XLabelWrites, l.YLabelWrites, tt.xWrites, tt.yWrites)
			}
		})
	}
}

func TestPlanUnknownColumn(t *testing.T) {
	tbl := salesTable(t)

	for _, kind := range []models.ChartKind{models.ChartLine, models.ChartScatter, models.ChartBar, models.ChartPie} {
		_, err := Plan(tbl, request(kind, "missing", "units"), Options{})
		if !errors.Is(err, models.ErrColumnNotFound) {
			t.Errorf("%s: expected ErrColumnNotFound, got %v", kind, err)
		}
	}
}

func TestXYPoints(t *testing.T) {
	tbl := salesTable(t)

	points, xa, ya, err := XYPoints(tbl, "region", "price")
	if err != nil {
		t.Fatalf("XYPoints failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Expected the null price row to be skipped, got %+v", points)
	}
	if xa.Scale != models.ScaleCategory || ya.Scale != models.ScaleLinear {
		t.Errorf("Unexpected scales %s/%s", xa.Scale, ya.Scale)
	}
	if len(xa.Categories) != 3 || xa.Categories[0] != "B" || xa.Categories[2] != "C" {
		t.Errorf("Expected first-seen categories [B A C], got %v", xa.Categories)
	}
	if points[2].X != 2 || points[2].Y != 4 {
		t.Errorf("Unexpected last point %+v", points[2])
	}

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := mustTable(t,
		models.NewTimeColumn("when", []time.Time{day, day.AddDate(0, 0, 1)}, nil),
		models.NewNumberColumn("v", models.TypeInt, []float64{1, 2}, nil),
	)
	points, xa, _, err = XYPoints(ts, "when", "v")
	if err != nil {
		t.Fatalf("XYPoints failed: %v", err)
	}
	if xa.Scale != models.ScaleTime || points[0].X != float64(day.UnixNano()) {
		t.Errorf("Expected a time axis in nanoseconds, got %s %v", xa.Scale, points[0].X)
	}
}

func TestWedges(t *testing.T) {
	tbl := mustTable(t,
		models.NewTextColumn("x", []string{"b", "a", "a", "", "c", "a"}, []bool{true, true, true, false, true, true}),
	)

	wedges, err := Wedges(tbl, "x")
	if err != nil {
		t.Fatalf("Wedges failed: %v", err)
	}
	if len(wedges) != 3 {
		t.Fatalf("Expected 3 wedges, got %+v", wedges)
	}
	if wedges[0].Label != "a" || wedges[0].Count != 3 || wedges[0].Percent != 60 {
		t.Errorf("Unexpected first wedge %+v", wedges[0])
	}
	if wedges[1].Label != "b" || wedges[2].Label != "c" {
		t.Errorf("Expected ties in first-seen order, got %+v", wedges)
	}
}

func TestCorrelationSingleColumn(t *testing.T) {
	tbl := mustTable(t,
		models.NewTextColumn("name", []string{"a", "b", "c"}, nil),
		models.NewNumberColumn("v", models.TypeInt, []float64{1, 5, 2}, nil),
	)

	m := Correlation(tbl)
	if len(m.Columns) != 1 || m.Columns[0] != "v" {
		t.Fatalf("Expected one numeric column, got %v", m.Columns)
	}
	if m.At(0, 0) != 1.0 {
		t.Errorf("Expected [[1.0]], got %v", m.Values)
	}

	var buf bytes.Buffer
	if _, err := Draw(tbl, request(models.ChartHeatmap, "", ""), &buf, Options{}); err != nil {
		t.Fatalf("Draw heatmap failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("Expected PNG output")
	}
}

func TestCorrelation(t *testing.T) {
	tbl := mustTable(t,
		models.NewNumberColumn("a", models.TypeInt, []float64{1, 2, 3, 4}, nil),
		models.NewNumberColumn("b", models.TypeInt, []float64{8, 6, 4, 2}, nil),
		models.NewNumberColumn("c", models.TypeInt, []float64{7, 7, 7, 7}, nil),
		models.NewNumberColumn("d", models.TypeFloat, []float64{1, 0, 3, 0}, []bool{true, false, true, false}),
	)

	m := Correlation(tbl)
	if math.Abs(m.At(0, 1)+1) > 1e-12 || m.At(0, 1) != m.At(1, 0) {
		t.Errorf("Expected a-b correlation of -1, got %v", m.At(0, 1))
	}
	if !math.IsNaN(m.At(2, 2)) || !math.IsNaN(m.At(0, 2)) {
		t.Errorf("Expected NaN for a constant column, got %v", m.Values[2])
	}
	if math.Abs(m.At(0, 3)-1) > 1e-12 {
		t.Errorf("Expected pairwise-complete a-d correlation of 1, got %v", m.At(0, 3))
	}
}

func TestCorrelationNoNumericColumns(t *testing.T) {
	tbl := mustTable(t, models.NewTextColumn("name", []string{"a", "b"}, nil))

	m := Correlation(tbl)
	if len(m.Columns) != 0 || len(m.Values) != 0 {
		t.Errorf("Expected an empty matrix, got %+v", m)
	}

	var buf bytes.Buffer
	if _, err := Draw(tbl, request(models.ChartHeatmap, "", ""), &buf, Options{}); err != nil {
		t.Fatalf("Draw empty heatmap failed: %v", err)
	}
}

func TestDrawPNG(t *testing.T) {
	tbl := salesTable(t)

	tests := []models.ChartRequest{
		request(models.ChartLine, "units", "price"),
		request(models.ChartScatter, "units", "price"),
		request(models.ChartBar, "region", "units"),
		request(models.ChartPie, "region", ""),
		request(models.ChartHeatmap, "", ""),
	}

	for _, req := range tests {
		t.Run(string(req.Kind), func(t *testing.T) {
			var buf bytes.Buffer
			fig, err := Draw(tbl, req, &buf, Options{Width: 640, Height: 480})
			if err != nil {
				t.Fatalf("Draw failed: %v", err)
			}
			if fig.Kind != req.Kind {
				t.Errorf("Figure kind = %s, expected %s", fig.Kind, req.Kind)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Error("Expected PNG output")
			}
		})
	}
}

func TestDrawDegenerateData(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  models.ChartRequest
		cols []*models.Column
	}{
		{
			"bar with all-zero means",
			request(models.ChartBar, "x", "y"),
			[]*models.Column{
				models.NewTextColumn("x", []string{"A", "B"}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{0, 0}, nil),
			},
		},
		{
			"scatter of one row",
			request(models.ChartScatter, "x", "y"),
			[]*models.Column{
				models.NewNumberColumn("x", models.TypeInt, []float64{1}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{2}, nil),
			},
		},
		{
			"line of one row",
			request(models.ChartLine, "x", "y"),
			[]*models.Column{
				models.NewNumberColumn("x", models.TypeInt, []float64{1}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{2}, nil),
			},
		},
		{
			"line with constant x",
			request(models.ChartLine, "x", "y"),
			[]*models.Column{
				models.NewNumberColumn("x", models.TypeInt, []float64{3, 3, 3}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{1, 2, 3}, nil),
			},
		},
		{
			"line with constant y",
			request(models.ChartLine, "x", "y"),
			[]*models.Column{
				models.NewNumberColumn("x", models.TypeInt, []float64{1, 2, 3}, nil),
				models.NewNumberColumn("y", models.TypeFloat, []float64{4.5, 4.5, 4.5}, nil),
			},
		},
		{
			"scatter with one category",
			request(models.ChartScatter, "x", "y"),
			[]*models.Column{
				models.NewTextColumn("x", []string{"A", "A"}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{1, 2}, nil),
			},
		},
		{
			"line of one timestamp",
			request(models.ChartLine, "x", "y"),
			[]*models.Column{
				models.NewTimeColumn("x", []time.Time{day}, nil),
				models.NewNumberColumn("y", models.TypeInt, []float64{7}, nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := mustTable(t, tt.cols...)
			var buf bytes.Buffer
			if _, err := Draw(tbl, tt.req, &buf, Options{Width: 640, Height: 480}); err != nil {
				t.Fatalf("Draw failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Error("Expected PNG output")
			}
		})
	}
}

func TestDrawPropagatesRendererErrors(t *testing.T) {
	tbl := mustTable(t,
		models.NewNumberColumn("x", models.TypeFloat, []float64{0, 0}, []bool{false, false}),
		models.NewNumberColumn("y", models.TypeInt, []float64{1, 2}, nil),
	)

	var buf bytes.Buffer
	if _, err := Draw(tbl, request(models.ChartLine, "x", "y"), &buf, Options{}); err == nil {
		t.Fatal("Expected an error for a line without points")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written on error, got %d bytes", buf.Len())
	}
}
