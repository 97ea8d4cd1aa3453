package datasc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
	"github.com/ukaji3/datasc-go/pkg/datasc/parser"
)

// Accepted upload formats, keyed by lower-case extension.
var formats = map[string]string{
	".csv":  "csv",
	".xlsx": "xlsx",
}

// FormatOf returns "csv" or "xlsx" for an accepted file name, ignoring case.
func FormatOf(name string) (string, bool) {
	format, ok := formats[strings.ToLower(filepath.Ext(name))]
	return format, ok
}

// Load reads a .csv or .xlsx upload into a table. The format is chosen by the
// extension of name. Bool columns are coerced to text.
//
// Every failure is an *UploadError matching ErrUnparseableUpload.
func Load(name string, r io.Reader, opts Options) (*models.Table, error) {
	base := filepath.Base(name)
	format, ok := FormatOf(name)
	if !ok {
		return nil, NewUploadError(base, filepath.Ext(name), ErrUnsupportedFormat)
	}

	var columns []*models.Column
	var err error
	switch format {
	case "csv":
		var data []byte
		data, err = io.ReadAll(r)
		if err == nil {
			columns, err = parser.ParseCSV(data)
		}
	case "xlsx":
		columns, err = parser.ParseXLSX(r, opts.Sheet)
	}
	if err != nil {
		return nil, NewUploadError(base, format, err)
	}

	t, err := models.NewTable(base, columns)
	if err != nil {
		return nil, NewUploadError(base, format, err)
	}
	t.CoerceBooleans()
	return t, nil
}

// LoadFile reads a .csv or .xlsx file from disk.
func LoadFile(path string, opts Options) (*models.Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(path, f, opts)
}
