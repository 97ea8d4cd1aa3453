package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// ErrNoColumns indicates a file without a header row.
var ErrNoColumns = errors.New("no columns to parse from file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads comma-separated UTF-8 data whose first record is the header.
// Rows shorter than the header are padded with nulls; longer rows are an error.
func ParseCSV(data []byte) ([]*models.Column, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("input is not valid UTF-8")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	names := NormalizeHeaders(header)

	cells := make([][]string, len(names))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) > len(names) {
			row, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(names), row, len(record))
		}
		for i := range names {
			v := ""
			if i < len(record) {
				v = record[i]
			}
			cells[i] = append(cells[i], v)
		}
	}

	columns := make([]*models.Column, len(names))
	for i, name := range names {
		columns[i] = InferColumn(name, cells[i])
	}
	return columns, nil
}
