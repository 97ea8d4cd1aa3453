// Package charts turns a table into one of the supported charts.
//
// Plan transforms the data and assigns labels without drawing anything, so
// the result can be inspected in tests or returned as JSON. Render draws a
// planned figure as PNG with go-chart.
package charts

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/ukaji3/datasc-go/pkg/datasc/summary"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/stat"
)

// ErrNotNumeric indicates a column that cannot be aggregated numerically.
var ErrNotNumeric = errors.New("column is not numeric")

// axisMapper maps the cells of one column to plotted coordinates.
type axisMapper struct {
	col   *models.Column
	axis  models.Axis
	index map[string]int
}

func newAxisMapper(col *models.Column) *axisMapper {
	m := &axisMapper{col: col}
	switch {
	case col.Type.IsNumeric():
		m.axis.Scale = models.ScaleLinear
	case col.Type == models.TypeDatetime:
		m.axis.Scale = models.ScaleTime
	default:
		m.axis.Scale = models.ScaleCategory
		m.index = make(map[string]int)
	}
	return m
}

// value returns the coordinate of non-null row i. Category positions are
// assigned in order of first appearance.
func (m *axisMapper) value(i int) float64 {
	switch m.axis.Scale {
	case models.ScaleLinear:
		return m.col.Nums[i]
	case models.ScaleTime:
		return chart.TimeToFloat64(m.col.Times[i])
	}
	s := m.col.Format(i)
	pos, ok := m.index[s]
	if !ok {
		pos = len(m.axis.Categories)
		m.index[s] = pos
		m.axis.Categories = append(m.axis.Categories, s)
	}
	return float64(pos)
}

// XYPoints pairs the x and y columns row by row, skipping rows where either is null.
// Skipped rows leave no gap: a line chart joins the points on either side.
func XYPoints(t *models.Table, x, y string) ([]models.Point, models.Axis, models.Axis, error) {
	xc, err := t.Column(x)
	if err != nil {
		return nil, models.Axis{}, models.Axis{}, err
	}
	yc, err := t.Column(y)
	if err != nil {
		return nil, models.Axis{}, models.Axis{}, err
	}

	xm, ym := newAxisMapper(xc), newAxisMapper(yc)
	points := make([]models.Point, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if xc.IsNull(i) || yc.IsNull(i) {
			continue
		}
		points = append(points, models.Point{X: xm.value(i), Y: ym.value(i)})
	}
	return points, xm.axis, ym.axis, nil
}

// GroupMeans groups the rows by x and averages y within each group.
// Rows with a null x are dropped and null y values are skipped.
// Groups are ordered by their x value.
func GroupMeans(t *models.Table, x, y string) ([]models.Bar, error) {
	xc, err := t.Column(x)
	if err != nil {
		return nil, err
	}
	yc, err := t.Column(y)
	if err != nil {
		return nil, err
	}
	if !yc.Type.IsNumeric() {
		return nil, fmt.Errorf("cannot average %q of type %s: %w", y, yc.Type, ErrNotNumeric)
	}

	type group struct {
		first int
		sum   float64
		count int
	}
	groups := make(map[string]*group)
	var keys []string
	for i := 0; i < t.NumRows(); i++ {
		if xc.IsNull(i) {
			continue
		}
		k := xc.Format(i)
		g, ok := groups[k]
		if !ok {
			g = &group{first: i}
			groups[k] = g
			keys = append(keys, k)
		}
		if v, ok := yc.Float(i); ok {
			g.sum += v
			g.count++
		}
	}

	sort.SliceStable(keys, func(a, b int) bool {
		return lessCells(xc, groups[keys[a]].first, groups[keys[b]].first)
	})

	bars := make([]models.Bar, len(keys))
	for i, k := range keys {
		g := groups[k]
		mean := math.NaN()
		if g.count > 0 {
			mean = g.sum / float64(g.count)
		}
		bars[i] = models.Bar{Key: k, Value: models.Float(mean), Count: g.count}
	}
	return bars, nil
}

// lessCells orders two non-null cells of a column by value.
func lessCells(c *models.Column, i, j int) bool {
	switch {
	case c.Type.IsNumeric():
		return c.Nums[i] < c.Nums[j]
	case c.Type == models.TypeDatetime:
		return c.Times[i].Before(c.Times[j])
	default:
		return c.Texts[i] < c.Texts[j]
	}
}

// Wedges counts the distinct non-null values of x for a pie chart.
func Wedges(t *models.Table, x string) ([]models.Wedge, error) {
	xc, err := t.Column(x)
	if err != nil {
		return nil, err
	}

	counts := summary.ValueCounts(xc)
	total := 0
	for _, vc := range counts {
		total += vc.Count
	}

	wedges := make([]models.Wedge, len(counts))
	for i, vc := range counts {
		wedges[i] = models.Wedge{
			Label:   vc.Value,
			Count:   vc.Count,
			Percent: 100 * float64(vc.Count) / float64(total),
		}
	}
	return wedges, nil
}

// Correlation computes the Pearson correlation of every pair of numeric
// columns over the rows where both are present. Pairs with fewer than two
// such rows, or with a constant side, are NaN.
func Correlation(t *models.Table) *models.CorrelationMatrix {
	var cols []*models.Column
	for _, c := range t.Columns {
		if c.Type.IsNumeric() {
			cols = append(cols, c)
		}
	}

	m := &models.CorrelationMatrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]models.Float, len(cols)),
	}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]models.Float, len(cols))
	}

	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := models.Float(pairCorrelation(cols[i], cols[j], i == j))
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairCorrelation(a, b *models.Column, same bool) float64 {
	var xs, ys []float64
	for k := 0; k < a.Len(); k++ {
		x, okx := a.Float(k)
		y, oky := b.Float(k)
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if same {
		if stat.Variance(xs, nil) == 0 {
			return math.NaN()
		}
		return 1
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}
