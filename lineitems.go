// Package lineitems reads the material, unit and quantity of every line of a
// purchase requisition, whether it arrives as a spreadsheet or a PDF.
//
// Basic usage:
//
//	items, warnings, err := lineitems.Open("requisicion.pdf").Items()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", lineitems.FormatWarnings(warnings))
//	}
//
// Uploaded payloads are routed by their declared MIME type and name:
//
//	items, err := lineitems.Dispatch(lineitems.File{
//	    Name:     "pedido.xlsx",
//	    MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
//	    Data:     body,
//	})
//
// With options:
//
//	cfg, err := heuristics.Load("heuristics.yaml")
//	...
//	items, _, err := lineitems.FromBytes(name, mimeType, body).
//	    Pages(1, 2).
//	    WithHeuristics(cfg).
//	    WithLogger(logger).
//	    Items()
//
// Every failure is reported as either an *UnsupportedFormatError or an
// *ExtractionError; use errors.Is with ErrUnsupportedFormat and
// ErrExtractionFailed to tell them apart. An empty item slice with a nil
// error means the file was read and holds no rows.
package lineitems

import (
	"github.com/tsawler/lineitems/model"
)

// File is an uploaded payload: its declared name and MIME type plus the
// raw bytes.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Open returns an Extractor for the file at path. The file is read by the
// first terminal operation and its format comes from the extension or the
// content.
//
// Example:
//
//	items, warnings, err := lineitems.Open("requisicion.xlsx").Items()
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		file:    File{Name: path},
		options: defaultOptions(),
	}
}

// FromFile returns an Extractor for an uploaded payload.
func FromFile(f File) *Extractor {
	return &Extractor{
		file:    f,
		loaded:  true,
		options: defaultOptions(),
	}
}

// FromBytes is shorthand for FromFile(File{name, mimeType, data}).
func FromBytes(name, mimeType string, data []byte) *Extractor {
	return FromFile(File{Name: name, MIMEType: mimeType, Data: data})
}

// Dispatch extracts the line items of f with default settings, discarding
// warnings.
func Dispatch(f File) ([]model.LineItem, error) {
	items, _, err := FromFile(f).Items()
	return items, err
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := lineitems.Must(lineitems.Open("requisicion.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustItems is like Must for Items, discarding warnings.
//
// Example:
//
//	items := lineitems.MustItems(lineitems.Open("requisicion.pdf").Items())
func MustItems[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
