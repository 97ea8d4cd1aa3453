// Package summary computes descriptive statistics over a table.
//
// Every function is a pure read of the table; none of them mutate it.
package summary

import (
	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// Summarize computes shape, null and duplicate counts, the structural
// summary and the describe tables of t.
func Summarize(t *models.Table) *models.Summary {
	s := &models.Summary{
		Rows:      t.NumRows(),
		Columns:   t.NumCols(),
		Structure: Structure(t),
	}

	for _, c := range t.Columns {
		s.NullCells += c.NullCount()
	}

	s.DuplicateRows = CountDuplicates(t)
	s.Info = Info(t)
	s.Numeric = DescribeNumeric(t)
	s.NonNumeric = DescribeNonNumeric(t)
	return s
}

// Structure lists name, type and non-null count of every column.
func Structure(t *models.Table) []models.ColumnInfo {
	infos := make([]models.ColumnInfo, len(t.Columns))
	for i, c := range t.Columns {
		infos[i] = models.ColumnInfo{
			Index:   i,
			Name:    c.Name,
			Type:    c.Type.String(),
			NonNull: c.NonNullCount(),
		}
	}
	return infos
}
