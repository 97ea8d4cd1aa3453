package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads one sheet of a workbook whose first non-empty row is the header.
// An empty sheet name selects the first sheet.
func ParseXLSX(r io.Reader, sheet string) ([]*models.Column, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	b, ok := findDataBounds(rows)
	if !ok {
		return nil, ErrNoColumns
	}

	width := b.maxCol - b.minCol + 1
	header := make([]string, width)
	for c := range header {
		header[c] = rowCell(rows[b.minRow], b.minCol+c)
	}
	names := NormalizeHeaders(header)

	reader := &cellReader{f: f, sheet: sheet, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		reader.date1904 = *props.Date1904
	}

	cells := make([][]typedCell, width)
	for r := b.minRow + 1; r <= b.maxRow; r++ {
		for c := 0; c < width; c++ {
			col := b.minCol + c
			cell, err := reader.read(col+1, r+1, rowCell(rows[r], col))
			if err != nil {
				return nil, err
			}
			cells[c] = append(cells[c], cell)
		}
	}

	columns := make([]*models.Column, width)
	for i, name := range names {
		columns[i] = inferTypedColumn(name, cells[i])
	}
	return columns, nil
}

func rowCell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// cellReader resolves the stored type of individual cells.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

// read types the cell at 1-based (col, row). text is the formatted value.
func (cr *cellReader) read(col, row int, text string) (typedCell, error) {
	if text == "" {
		return typedCell{}, nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return typedCell{}, err
	}

	typ, err := cr.f.GetCellType(cr.sheet, name)
	if err != nil {
		return typedCell{}, err
	}

	switch typ {
	case excelize.CellTypeBool:
		return typedCell{kind: cellBool, b: strings.EqualFold(text, "TRUE") || text == "1"}, nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return textCell(text), nil
	}

	raw, err := cr.f.GetCellValue(cr.sheet, name, excelize.Options{RawCellValue: true})
	if err != nil {
		return typedCell{}, err
	}

	if typ == excelize.CellTypeDate {
		if t, ok := parseISODate(raw); ok {
			return typedCell{kind: cellTime, t: t}, nil
		}
		return textCell(text), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return textCell(text), nil
	}

	if cr.isDateStyled(name) {
		if t, err := excelize.ExcelDateToTime(v, cr.date1904); err == nil {
			return typedCell{kind: cellTime, t: t}, nil
		}
	}
	return typedCell{kind: cellNumber, num: v}, nil
}

// isDateStyled reports whether the cell's number format renders a date or time.
func (cr *cellReader) isDateStyled(cell string) bool {
	id, err := cr.f.GetCellStyle(cr.sheet, cell)
	if err != nil {
		return false
	}
	if v, ok := cr.dateStyles[id]; ok {
		return v
	}

	isDate := false
	if style, err := cr.f.GetStyle(id); err == nil {
		isDate = isDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	cr.dateStyles[id] = isDate
	return isDate
}

func textCell(text string) typedCell {
	if IsNullToken(text) {
		return typedCell{}
	}
	return typedCell{kind: cellText, text: text}
}

// isDateNumFmt reports whether a built-in number format id is a date or time format.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormatCode reports whether a custom number format code renders a date or time.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "ydhs")
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISODate parses the ISO 8601 value of a cell stored with type "d".
func parseISODate(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
