package models

// NoNonNumericData is reported instead of an empty non-numeric describe table.
const NoNonNumericData = "This data does not contain non-numerical data"

// Summary holds the descriptive statistics of a table.
type Summary struct {
	// Rows is the number of rows.
	Rows int `json:"rows"`
	// Columns is the number of columns.
	Columns int `json:"columns"`
	// NullCells is the number of null cells across all columns.
	NullCells int `json:"null_cells"`
	// DuplicateRows counts rows equal to an earlier row.
	DuplicateRows int `json:"duplicate_rows"`
	// Structure lists name, type and non-null count per column.
	Structure []ColumnInfo `json:"structure"`
	// Info is the structural summary rendered as a text block.
	Info string `json:"info"`
	// Numeric holds describe statistics for numeric columns.
	Numeric []NumericStats `json:"numeric"`
	// NonNumeric holds describe statistics for the remaining columns.
	NonNumeric NonNumericSection `json:"non_numeric"`
}

// ColumnInfo is one line of the structural summary.
type ColumnInfo struct {
	// Index is the 0-based column position.
	Index int `json:"index"`
	// Name is the column name.
	Name string `json:"name"`
	// Type is the column type name.
	Type string `json:"type"`
	// NonNull is the number of cells holding a value.
	NonNull int `json:"non_null"`
}

// NumericStats describes one numeric column.
type NumericStats struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Float  `json:"mean"`
	Std    Float  `json:"std"`
	Min    Float  `json:"min"`
	Q25    Float  `json:"25%"`
	Q50    Float  `json:"50%"`
	Q75    Float  `json:"75%"`
	Max    Float  `json:"max"`
}

// CategoricalStats describes one non-numeric column.
type CategoricalStats struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	// Top is the most frequent value; empty when the column has no values.
	Top  string `json:"top"`
	Freq int    `json:"freq"`
}

// NonNumericSection is either a describe table or an explicit "no data" message.
type NonNumericSection struct {
	// Available is false when the table has no non-numeric columns.
	Available bool `json:"available"`
	// Message explains why Stats is absent.
	Message string `json:"message,omitempty"`
	// Stats holds one entry per non-numeric column.
	Stats []CategoricalStats `json:"stats,omitempty"`
}
