package datasc

import (
	"errors"
	"fmt"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnparseableUpload indicates an upload that could not be read as a table.
// Every load failure matches it through errors.Is.
var ErrUnparseableUpload = errors.New("could not read Excel / CSV file")

// ErrUnsupportedFormat indicates a file name without a .csv or .xlsx extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrColumnNotFound indicates a selected or charted column that does not exist.
var ErrColumnNotFound = models.ErrColumnNotFound

// UploadError represents a failure to read an uploaded file.
type UploadError struct {
	File   string
	Format string // "csv", "xlsx", or the rejected extension
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("could not read %s file %q: %v", e.Format, e.File, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUnparseableUpload.
func (e *UploadError) Is(target error) bool {
	return target == ErrUnparseableUpload
}

// NewUploadError creates a new UploadError.
func NewUploadError(file, format string, err error) *UploadError {
	return &UploadError{
		File:   file,
		Format: format,
		Err:    err,
	}
}
