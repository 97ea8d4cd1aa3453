package summary

import (
	"math"
	"sort"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DescribeNumeric returns count, mean, standard deviation, min, quartiles and
// max for every numeric column. Nulls are skipped. The standard deviation is
// the sample one (n-1 denominator), so it is NaN for a single value.
func DescribeNumeric(t *models.Table) []models.NumericStats {
	out := make([]models.NumericStats, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Type.IsNumeric() {
			continue
		}
		out = append(out, describeColumn(c))
	}
	return out
}

func describeColumn(c *models.Column) models.NumericStats {
	values := NonNullValues(c)
	st := models.NumericStats{Column: c.Name, Count: len(values)}

	if len(values) == 0 {
		nan := models.Float(math.NaN())
		st.Mean, st.Std, st.Min, st.Q25, st.Q50, st.Q75, st.Max = nan, nan, nan, nan, nan, nan, nan
		return st
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	st.Mean = models.Float(stat.Mean(values, nil))
	st.Std = models.Float(stat.StdDev(values, nil))
	st.Min = models.Float(floats.Min(values))
	st.Q25 = models.Float(Quantile(sorted, 0.25))
	st.Q50 = models.Float(Quantile(sorted, 0.5))
	st.Q75 = models.Float(Quantile(sorted, 0.75))
	st.Max = models.Float(floats.Max(values))
	return st
}

// NonNullValues returns the non-null values of a numeric column in row order.
func NonNullValues(c *models.Column) []float64 {
	values := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			values = append(values, v)
		}
	}
	return values
}

// Quantile returns the p-quantile of ascending values, interpolating linearly
// between the two order statistics around position (n-1)*p.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// DescribeNonNumeric returns count, unique, top and freq for every
// non-numeric column, or an explicit "no non-numeric data" section when the
// table has none.
func DescribeNonNumeric(t *models.Table) models.NonNumericSection {
	var stats []models.CategoricalStats
	for _, c := range t.Columns {
		if c.Type.IsNumeric() {
			continue
		}
		stats = append(stats, describeCategorical(c))
	}

	if len(stats) == 0 {
		return models.NonNumericSection{Available: false, Message: models.NoNonNumericData}
	}
	return models.NonNumericSection{Available: true, Stats: stats}
}

func describeCategorical(c *models.Column) models.CategoricalStats {
	counts := ValueCounts(c)
	st := models.CategoricalStats{Column: c.Name, Unique: len(counts)}
	for _, vc := range counts {
		st.Count += vc.Count
	}
	if len(counts) > 0 {
		st.Top = counts[0].Value
		st.Freq = counts[0].Count
	}
	return st
}

// ValueCount is one distinct value and how often it occurs.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts counts the distinct non-null values of a column, most frequent
// first. Values with equal counts keep the order of their first occurrence.
func ValueCounts(c *models.Column) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v := c.Format(i)
		if j, ok := index[v]; ok {
			counts[j].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ValueCount{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
