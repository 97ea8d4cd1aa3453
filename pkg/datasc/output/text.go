package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// WriteText writes a report as plain text with one section per heading.
func WriteText(w io.Writer, r *models.Report) error {
	tw := &textWriter{w: w}

	tw.heading("Preview Of Data")
	tw.preview(r.Preview)

	s := r.Summary
	tw.heading("Data Overview")
	tw.printf("Number Of Rows: %d\n", s.Rows)
	tw.printf("Number Of Columns: %d\n", s.Columns)
	tw.printf("Number Of Missing Values: %d\n", s.NullCells)
	tw.printf("Number Of Duplicate Records: %d\n", s.DuplicateRows)

	tw.heading("Complete Summary Of Dataset")
	tw.printf("%s", s.Info)

	tw.heading("Statistical Summary Of Dataset")
	tw.numeric(s.Numeric)

	tw.heading("Statistical Summary For Non-Numerical Features Of Dataset")
	if s.NonNumeric.Available {
		tw.categorical(s.NonNumeric.Stats)
	} else {
		tw.printf("%s\n", s.NonNumeric.Message)
	}

	tw.heading("Selected Columns")
	if r.Selection.Note != "" {
		tw.printf("%s\n", r.Selection.Note)
	}
	tw.preview(r.Selection)

	return tw.err
}

// textWriter keeps the first write error so sections can be written unchecked.
type textWriter struct {
	w       io.Writer
	err     error
	started bool
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) heading(title string) {
	if t.started {
		t.printf("\n")
	}
	t.started = true
	t.printf("## %s\n\n", title)
}

// table writes tab-aligned rows.
func (t *textWriter) table(rows [][]string) {
	if t.err != nil {
		return
	}
	tab := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if _, err := fmt.Fprintln(tab, strings.Join(row, "\t")); err != nil {
			t.err = err
			return
		}
	}
	t.err = tab.Flush()
}

func (t *textWriter) preview(p models.Preview) {
	rows := [][]string{append([]string{""}, p.Columns...)}
	for i, row := range p.Rows {
		line := []string{strconv.Itoa(i)}
		for _, cell := range row {
			if cell == nil {
				line = append(line, "None")
				continue
			}
			line = append(line, *cell)
		}
		rows = append(rows, line)
	}
	t.table(rows)
}

func (t *textWriter) numeric(stats []models.NumericStats) {
	if len(stats) == 0 {
		t.printf("No numeric columns\n")
		return
	}

	header := []string{""}
	for _, st := range stats {
		header = append(header, st.Column)
	}
	rows := [][]string{header}

	add := func(name string, value func(models.NumericStats) string) {
		row := []string{name}
		for _, st := range stats {
			row = append(row, value(st))
		}
		rows = append(rows, row)
	}
	add("count", func(st models.NumericStats) string { return strconv.Itoa(st.Count) })
	add("mean", func(st models.NumericStats) string { return formatStat(st.Mean) })
	add("std", func(st models.NumericStats) string { return formatStat(st.Std) })
	add("min", func(st models.NumericStats) string { return formatStat(st.Min) })
	add("25%", func(st models.NumericStats) string { return formatStat(st.Q25) })
	add("50%", func(st models.NumericStats) string { return formatStat(st.Q50) })
	add("75%", func(st models.NumericStats) string { return formatStat(st.Q75) })
	add("max", func(st models.NumericStats) string { return formatStat(st.Max) })

	t.table(rows)
}

func (t *textWriter) categorical(stats []models.CategoricalStats) {
	header := []string{""}
	for _, st := range stats {
		header = append(header, st.Column)
	}
	rows := [][]string{header}

	add := func(name string, value func(models.CategoricalStats) string) {
		row := []string{name}
		for _, st := range stats {
			row = append(row, value(st))
		}
		rows = append(rows, row)
	}
	add("count", func(st models.CategoricalStats) string { return strconv.Itoa(st.Count) })
	add("unique", func(st models.CategoricalStats) string { return strconv.Itoa(st.Unique) })
	add("top", func(st models.CategoricalStats) string { return st.Top })
	add("freq", func(st models.CategoricalStats) string { return strconv.Itoa(st.Freq) })

	t.table(rows)
}

func formatStat(v models.Float) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 64)
}
