package datasc

import (
	"io"

	"github.com/ukaji3/datasc-go/pkg/datasc/charts"
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/ukaji3/datasc-go/pkg/datasc/summary"
)

// Explore builds the report shown right after an upload: a preview of the
// table, a preview of the selected columns and the summary statistics.
// An empty selection previews every column with a note saying so.
func Explore(t *models.Table, sel models.ColumnSelection, opts Options) (*models.Report, error) {
	selection, err := PreviewColumns(t, sel, opts)
	if err != nil {
		return nil, err
	}

	return &models.Report{
		FileName:  t.Name,
		Preview:   Preview(t, opts.GetPreviewRows()),
		Selection: selection,
		Summary:   summary.Summarize(t),
		Columns:   summary.Structure(t),
	}, nil
}

// PreviewColumns previews the selected columns, or every column with a
// "no columns selected" note when the selection is empty.
func PreviewColumns(t *models.Table, sel models.ColumnSelection, opts Options) (models.Preview, error) {
	if sel.IsEmpty() {
		p := Preview(t, opts.GetPreviewRows())
		p.Note = models.NoColumnsSelected
		return p, nil
	}

	selected, err := t.Select(sel)
	if err != nil {
		return models.Preview{}, err
	}
	return Preview(selected, opts.GetPreviewRows()), nil
}

// Preview formats the first n rows of t. Null cells are nil.
func Preview(t *models.Table, n int) models.Preview {
	head := t.Head(n)
	rows := make([][]*string, head.NumRows())
	for i := range rows {
		row := make([]*string, head.NumCols())
		for j, c := range head.Columns {
			if c.IsNull(i) {
				continue
			}
			s := c.Format(i)
			row[j] = &s
		}
		rows[i] = row
	}
	return models.Preview{Columns: head.ColumnNames(), Rows: rows}
}

// Chart draws one chart of t as PNG and returns the planned figure.
func Chart(t *models.Table, req models.ChartRequest, w io.Writer, opts Options) (*models.Figure, error) {
	return charts.Draw(t, req, w, opts.ChartOptions())
}
