package models

// NoColumnsSelected is shown with a preview of every column.
const NoColumnsSelected = "No columns selected. Showing full dataset"

// Preview is the head of a table, optionally restricted to selected columns.
type Preview struct {
	// Columns lists the previewed column names.
	Columns []string `json:"columns"`
	// Rows holds formatted cells; nil marks a null cell.
	Rows [][]*string `json:"rows"`
	// Note is set when the selection was empty.
	Note string `json:"note,omitempty"`
}

// Report is everything shown for an uploaded table in one pass.
type Report struct {
	// FileName is the uploaded file name.
	FileName string `json:"file_name"`
	// Preview is the head of the full table.
	Preview Preview `json:"preview"`
	// Selection is the head restricted to the chosen columns.
	Selection Preview `json:"selection"`
	// Summary holds the descriptive statistics.
	Summary *Summary `json:"summary"`
	// Columns lists name and type of every column, for axis choices.
	Columns []ColumnInfo `json:"columns"`
}
