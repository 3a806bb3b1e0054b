package lineitems

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure kinds a caller can observe.
var (
	// ErrUnsupportedFormat matches errors for files that are neither a
	// spreadsheet nor a PDF.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtractionFailed matches errors raised while reading a supported
	// file.
	ErrExtractionFailed = errors.New("extraction failed")
)

// UnsupportedFormatError reports a file whose declared type and content
// match no supported format.
type UnsupportedFormatError struct {
	Name     string
	MIMEType string
}

func (e *UnsupportedFormatError) Error() string {
	switch {
	case e.MIMEType != "" && e.Name != "":
		return fmt.Sprintf("unsupported format: %s (%s)", e.Name, e.MIMEType)
	case e.Name != "":
		return fmt.Sprintf("unsupported format: %s", e.Name)
	case e.MIMEType != "":
		return fmt.Sprintf("unsupported format: %s", e.MIMEType)
	}
	return "unsupported format"
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ExtractionError wraps any failure that happened while reading a supported
// file: parser errors, oversized input, bad page selection, invalid
// heuristics, or a panic inside a parser.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "extraction failed: " + e.Reason
	}
	return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExtractionFailed.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

func extractionError(reason string, err error) error {
	return &ExtractionError{Reason: reason, Err: err}
}

// asBoundaryError keeps the two public error kinds as they are and turns
// anything else into an ExtractionError.
func asBoundaryError(reason string, err error) error {
	if err == nil {
		return nil
	}
	var unsupported *UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return unsupported
	}
	var extraction *ExtractionError
	if errors.As(err, &extraction) {
		return extraction
	}
	return extractionError(reason, err)
}
