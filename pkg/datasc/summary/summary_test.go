package summary

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

func mustTable(t *testing.T, cols ...*models.Column) *models.Table {
	t.Helper()
	tbl, err := models.NewTable("test.csv", cols)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return tbl
}

func TestSummarize(t *testing.T) {
	tbl := mustTable(t,
		models.NewTextColumn("city", []string{"Tokyo", "Osaka", "Tokyo", ""}, []bool{true, true, true, false}),
		models.NewNumberColumn("sales", models.TypeFloat, []float64{1, 2, 1, 4}, nil),
	)

	s := Summarize(tbl)
	if s.Rows != 4 || s.Columns != 2 {
		t.Errorf("Expected 4x2, got %dx%d", s.Rows, s.Columns)
	}
	if s.NullCells != 1 {
		t.Errorf("Expected 1 null cell, got %d", s.NullCells)
	}
	if s.DuplicateRows != 1 {
		t.Errorf("Expected 1 duplicate row, got %d", s.DuplicateRows)
	}
	if len(s.Structure) != 2 || s.Structure[0].NonNull != 3 || s.Structure[1].Type != "float" {
		t.Errorf("Unexpected structure: %+v", s.Structure)
	}
	if len(s.Numeric) != 1 || s.Numeric[0].Column != "sales" {
		t.Fatalf("Expected numeric stats for sales, got %+v", s.Numeric)
	}
	if !s.NonNumeric.Available || len(s.NonNumeric.Stats) != 1 {
		t.Fatalf("Expected non-numeric stats for city, got %+v", s.NonNumeric)
	}

	city := s.NonNumeric.Stats[0]
	if city.Count != 3 || city.Unique != 2 || city.Top != "Tokyo" || city.Freq != 2 {
		t.Errorf("Unexpected city stats: %+v", city)
	}
}

func TestSummarizeDoesNotModifyTable(t *testing.T) {
	col := models.NewNumberColumn("v", models.TypeFloat, []float64{3, 1, 2}, nil)
	tbl := mustTable(t, col)

	Summarize(tbl)

	if col.Nums[0] != 3 || col.Nums[1] != 1 || col.Nums[2] != 2 {
		t.Errorf("Summarize reordered the column: %v", col.Nums)
	}
}

func TestDescribeNumeric(t *testing.T) {
	tbl := mustTable(t,
		models.NewNumberColumn("a", models.TypeInt, []float64{1, 2, 3, 4}, nil),
		models.NewNumberColumn("b", models.TypeFloat, []float64{5, 0, 0, 0}, []bool{true, false, false, false}),
		models.NewNumberColumn("c", models.TypeFloat, make([]float64, 4), make([]bool, 4)),
	)

	stats := DescribeNumeric(tbl)
	if len(stats) != 3 {
		t.Fatalf("Expected 3 stats, got %d", len(stats))
	}

	a := stats[0]
	expected := map[string]float64{
		"mean": 2.5, "std": math.Sqrt(5.0 / 3.0), "min": 1,
		"25%": 1.75, "50%": 2.5, "75%": 3.25, "max": 4,
	}
	got := map[string]float64{
		"mean": float64(a.Mean), "std": float64(a.Std), "min": float64(a.Min),
		"25%": float64(a.Q25), "50%": float64(a.Q50), "75%": float64(a.Q75), "max": float64(a.Max),
	}
	for k, want := range expected {
		if math.Abs(got[k]-want) > 1e-9 {
			t.Errorf("a %s = %v, expected %v", k, got[k], want)
		}
	}
	if a.Count != 4 {
		t.Errorf("a count = %d, expected 4", a.Count)
	}

	b := stats[1]
	if b.Count != 1 || float64(b.Mean) != 5 || float64(b.Q75) != 5 {
		t.Errorf("b = %+v, expected count 1 with every quantile at 5", b)
	}
	if !math.IsNaN(float64(b.Std)) {
		t.Errorf("b std = %v, expected NaN for a single value", b.Std)
	}

	c := stats[2]
	if c.Count != 0 || !math.IsNaN(float64(c.Mean)) || !math.IsNaN(float64(c.Max)) {
		t.Errorf("c = %+v, expected NaN stats for an all-null column", c)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p        float64
		expected float64
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.1, 14},
		{1, 50},
	}

	for _, tt := range tests {
		if result := Quantile(sorted, tt.p); math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("Quantile(%v) = %v, expected %v", tt.p, result, tt.expected)
		}
	}

	if !math.IsNaN(Quantile(nil, 0.5)) {
		t.Error("Expected NaN for an empty input")
	}
}

func TestDescribeNonNumericMissing(t *testing.T) {
	tbl := mustTable(t,
		models.NewNumberColumn("a", models.TypeInt, []float64{1, 2}, nil),
		models.NewNumberColumn("b", models.TypeFloat, []float64{1.5, 2.5}, nil),
	)

	section := DescribeNonNumeric(tbl)
	if section.Available {
		t.Error("Expected no non-numeric section")
	}
	if section.Message != models.NoNonNumericData {
		t.Errorf("Expected message %q, got %q", models.NoNonNumericData, section.Message)
	}
	if len(section.Stats) != 0 {
		t.Errorf("Expected no stats, got %+v", section.Stats)
	}
}

func TestDescribeNonNumericIncludesBoolAndTime(t *testing.T) {
	flag := models.NewBoolColumn("flag", []bool{true, false, true}, nil)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	when := models.NewTimeColumn("when", []time.Time{day, day, day.AddDate(0, 0, 1)}, nil)
	tbl := mustTable(t, flag, when)
	tbl.CoerceBooleans()

	section := DescribeNonNumeric(tbl)
	if !section.Available || len(section.Stats) != 2 {
		t.Fatalf("Expected 2 non-numeric stats, got %+v", section)
	}
	if section.Stats[0].Top != "True" || section.Stats[0].Freq != 2 {
		t.Errorf("flag stats = %+v", section.Stats[0])
	}
	if section.Stats[1].Top != "2024-01-02" || section.Stats[1].Unique != 2 {
		t.Errorf("when stats = %+v", section.Stats[1])
	}
}

func TestValueCountsTieOrder(t *testing.T) {
	col := models.NewTextColumn("x", []string{"b", "a", "c", "a", "b", ""}, []bool{true, true, true, true, true, false})

	counts := ValueCounts(col)
	expected := []ValueCount{{"b", 2}, {"a", 2}, {"c", 1}}
	if len(counts) != len(expected) {
		t.Fatalf("Expected %d counts, got %+v", len(expected), counts)
	}
	for i := range expected {
		if counts[i] != expected[i] {
			t.Errorf("counts[%d] = %+v, expected %+v", i, counts[i], expected[i])
		}
	}
}

func TestCountDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		table    *models.Table
		expected int
	}{
		{
			name: "no duplicates",
			table: mustTable(t,
				models.NewNumberColumn("a", models.TypeInt, []float64{1, 2, 3}, nil),
			),
			expected: 0,
		},
		{
			name: "repeated row counted after the first",
			table: mustTable(t,
				models.NewNumberColumn("a", models.TypeInt, []float64{1, 1, 1}, nil),
				models.NewTextColumn("b", []string{"x", "x", "x"}, nil),
			),
			expected: 2,
		},
		{
			name: "nulls equal nulls",
			table: mustTable(t,
				models.NewNumberColumn("a", models.TypeFloat, []float64{0, 7, 0}, []bool{false, true, false}),
			),
			expected: 1,
		},
		{
			name: "null differs from value",
			table: mustTable(t,
				models.NewNumberColumn("a", models.TypeFloat, []float64{0, 0}, []bool{false, true}),
			),
			expected: 0,
		},
		{
			name: "one differing column",
			table: mustTable(t,
				models.NewNumberColumn("a", models.TypeInt, []float64{1, 1}, nil),
				models.NewTextColumn("b", []string{"x", "y"}, nil),
			),
			expected: 0,
		},
		{
			name:     "empty table",
			table:    mustTable(t),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CountDuplicates(tt.table); result != tt.expected {
				t.Errorf("CountDuplicates = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	tbl := mustTable(t,
		models.NewTextColumn("name", []string{"a", "b"}, nil),
		models.NewNumberColumn("score", models.TypeFloat, []float64{1, 0}, []bool{true, false}),
		models.NewNumberColumn("rank", models.TypeInt, []float64{1, 2}, nil),
	)

	info := Info(tbl)
	for _, want := range []string{
		"Table: test.csv",
		"Rows: 2 entries, 0 to 1",
		"Data columns (total 3 columns):",
		"1 non-null",
		"Types: float(1), int(1), text(1)",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Info missing %q:\n%s", want, info)
		}
	}
}

// tableFromCells builds a table of ncols columns from a flat cell list.
// -1 is a null; even columns are floats and odd columns are text.
func tableFromCells(cells []int, ncols int) *models.Table {
	rows := len(cells) / ncols
	cols := make([]*models.Column, ncols)
	for c := 0; c < ncols; c++ {
		valid := make([]bool, rows)
		nums := make([]float64, rows)
		texts := make([]string, rows)
		for r := 0; r < rows; r++ {
			v := cells[r*ncols+c]
			if v < 0 {
				continue
			}
			valid[r] = true
			nums[r] = float64(v)
			texts[r] = fmt.Sprintf("v%d", v)
		}
		name := fmt.Sprintf("c%d", c)
		if c%2 == 0 {
			cols[c] = models.NewNumberColumn(name, models.TypeFloat, nums, valid)
		} else {
			cols[c] = models.NewTextColumn(name, texts, valid)
		}
	}
	return &models.Table{Name: "gen.csv", Columns: cols}
}

func naiveDuplicates(t *models.Table) int {
	dups := 0
	for i := 0; i < t.NumRows(); i++ {
		for j := 0; j < i; j++ {
			same := true
			for _, c := range t.Columns {
				if c.IsNull(i) != c.IsNull(j) || c.Format(i) != c.Format(j) {
					same = false
					break
				}
			}
			if same {
				dups++
				break
			}
		}
	}
	return dups
}

func TestSummaryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("duplicate count matches pairwise comparison", prop.ForAll(
		func(cells []int, ncols int) bool {
			tbl := tableFromCells(cells, ncols)
			return CountDuplicates(tbl) == naiveDuplicates(tbl)
		},
		gen.SliceOf(gen.IntRange(-1, 2)),
		gen.IntRange(1, 3),
	))

	properties.Property("non-null plus null cells covers the table", prop.ForAll(
		func(cells []int, ncols int) bool {
			tbl := tableFromCells(cells, ncols)
			s := Summarize(tbl)
			nonNull := 0
			for _, info := range s.Structure {
				nonNull += info.NonNull
			}
			return nonNull+s.NullCells == s.Rows*s.Columns
		},
		gen.SliceOf(gen.IntRange(-1, 5)),
		gen.IntRange(1, 4),
	))

	properties.Property("numeric-only tables report no non-numeric data", prop.ForAll(
		func(cells []int) bool {
			tbl := tableFromCells(cells, 1)
			section := DescribeNonNumeric(tbl)
			return !section.Available && section.Message == models.NoNonNumericData
		},
		gen.SliceOf(gen.IntRange(-1, 5)),
	))

	properties.TestingRun(t)
}
