// Package models defines data structures for dataset exploration.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrColumnNotFound indicates a column name that is not part of the table.
var ErrColumnNotFound = errors.New("column not found")

// ColumnType is the element type of a column, assigned once at load time.
type ColumnType int

const (
	// TypeText holds free text and anything that is not clearly typed.
	TypeText ColumnType = iota
	// TypeInt holds whole numbers without nulls.
	TypeInt
	// TypeFloat holds real numbers, and whole numbers with nulls.
	TypeFloat
	// TypeBool holds true/false values. Load coerces it to TypeText.
	TypeBool
	// TypeDatetime holds timestamps.
	TypeDatetime
)

// String returns the lower-case type name.
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// IsNumeric reports whether values of this type take part in numeric statistics.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column is a named, uniformly typed column.
// Exactly one of Nums, Texts or Times carries the values, depending on Type.
type Column struct {
	// Name is the header of the column.
	Name string
	// Type is the element type.
	Type ColumnType
	// Nums holds values of TypeInt and TypeFloat columns.
	Nums []float64
	// Texts holds values of TypeText and TypeBool columns.
	Texts []string
	// Times holds values of TypeDatetime columns.
	Times []time.Time
	// Valid marks non-null cells; Valid[i] == false means row i is null.
	Valid []bool
}

// NewNumberColumn creates an int or float column. A nil valid slice marks every cell as present.
func NewNumberColumn(name string, typ ColumnType, values []float64, valid []bool) *Column {
	return &Column{Name: name, Type: typ, Nums: values, Valid: fillValid(valid, len(values))}
}

// NewTextColumn creates a text column. A nil valid slice marks every cell as present.
func NewTextColumn(name string, values []string, valid []bool) *Column {
	return &Column{Name: name, Type: TypeText, Texts: values, Valid: fillValid(valid, len(values))}
}

// NewBoolColumn creates a bool column holding "True"/"False" style text.
func NewBoolColumn(name string, values []bool, valid []bool) *Column {
	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = formatBool(v)
	}
	return &Column{Name: name, Type: TypeBool, Texts: texts, Valid: fillValid(valid, len(values))}
}

// NewTimeColumn creates a datetime column.
func NewTimeColumn(name string, values []time.Time, valid []bool) *Column {
	return &Column{Name: name, Type: TypeDatetime, Times: values, Valid: fillValid(valid, len(values))}
}

func fillValid(valid []bool, n int) []bool {
	if valid != nil {
		return valid
	}
	valid = make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Valid)
}

// IsNull reports whether row i holds no value.
func (c *Column) IsNull(i int) bool {
	return !c.Valid[i]
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// NonNullCount returns the number of cells holding a value.
func (c *Column) NonNullCount() int {
	return c.Len() - c.NullCount()
}

// Float returns the numeric value of row i. ok is false for nulls and non-numeric columns.
func (c *Column) Float(i int) (v float64, ok bool) {
	if !c.Type.IsNumeric() || !c.Valid[i] {
		return 0, false
	}
	return c.Nums[i], true
}

// Format renders row i for display. Nulls render as an empty string.
func (c *Column) Format(i int) string {
	if !c.Valid[i] {
		return ""
	}
	switch c.Type {
	case TypeInt:
		return strconv.FormatInt(int64(c.Nums[i]), 10)
	case TypeFloat:
		return FormatFloat(c.Nums[i])
	case TypeDatetime:
		return FormatTime(c.Times[i])
	default:
		return c.Texts[i]
	}
}

// Equal reports whether rows i and j hold the same value. Two nulls are equal.
func (c *Column) Equal(i, j int) bool {
	if c.Valid[i] != c.Valid[j] {
		return false
	}
	if !c.Valid[i] {
		return true
	}
	switch c.Type {
	case TypeInt, TypeFloat:
		return c.Nums[i] == c.Nums[j]
	case TypeDatetime:
		return c.Times[i].Equal(c.Times[j])
	default:
		return c.Texts[i] == c.Texts[j]
	}
}

// slice returns a copy of the column restricted to rows [0, n).
func (c *Column) slice(n int) *Column {
	out := &Column{Name: c.Name, Type: c.Type, Valid: append([]bool(nil), c.Valid[:n]...)}
	switch {
	case c.Nums != nil:
		out.Nums = append([]float64(nil), c.Nums[:n]...)
	case c.Times != nil:
		out.Times = append([]time.Time(nil), c.Times[:n]...)
	case c.Texts != nil:
		out.Texts = append([]string(nil), c.Texts[:n]...)
	}
	return out
}

// FormatFloat renders a float with the shortest exact representation, keeping
// a trailing ".0" on whole numbers so they still read as floats.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

// FormatTime renders a timestamp as a date when it falls on midnight.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// Table is an ordered collection of equally long columns.
type Table struct {
	// Name is the uploaded file name (no path).
	Name string
	// Columns holds the columns in file order.
	Columns []*Column
}

// NewTable builds a table and checks that every column has the same row count.
func NewTable(name string, columns []*Column) (*Table, error) {
	for _, c := range columns {
		if c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), columns[0].Len())
		}
	}
	return &Table{Name: name, Columns: columns}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Select returns a table restricted to the selected columns, in selection order.
// An empty selection returns the table itself.
func (t *Table) Select(sel ColumnSelection) (*Table, error) {
	if sel.IsEmpty() {
		return t, nil
	}
	cols := make([]*Column, 0, len(sel))
	for _, name := range sel {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return &Table{Name: t.Name, Columns: cols}, nil
}

// Head returns a copy of the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	if n < 0 {
		n = 0
	}
	cols := make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.slice(n)
	}
	return &Table{Name: t.Name, Columns: cols}
}

// CoerceBooleans turns every bool column into a text column in place.
// It is applied once, right after parsing.
func (t *Table) CoerceBooleans() {
	for _, c := range t.Columns {
		if c.Type == TypeBool {
			c.Type = TypeText
		}
	}
}

// ColumnSelection is a set of column names used to restrict the preview.
// An empty selection means every column.
type ColumnSelection []string

// IsEmpty reports whether nothing was selected.
func (s ColumnSelection) IsEmpty() bool {
	return len(s) == 0
}
