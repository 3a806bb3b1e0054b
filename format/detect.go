// Package format identifies the file formats line items can be read from.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized or unsupported format.
	Unknown Format = iota
	// PDF indicates a PDF document with a text layer.
	PDF
	// XLSX indicates an Office Open XML workbook.
	XLSX
	// XLS indicates a legacy BIFF8 Excel workbook.
	XLS
	// CSV indicates delimited text.
	CSV
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case XLSX:
		return "XLSX"
	case XLS:
		return "XLS"
	case CSV:
		return "CSV"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case XLSX:
		return ".xlsx"
	case XLS:
		return ".xls"
	case CSV:
		return ".csv"
	default:
		return ""
	}
}

// IsSpreadsheet reports whether the format is read as a grid of cells.
func (f Format) IsSpreadsheet() bool {
	return f == XLSX || f == XLS || f == CSV
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".xlsx":
		return XLSX
	case ".xls":
		return XLS
	case ".csv":
		return CSV
	default:
		return Unknown
	}
}

// DetectMIME determines the format from a MIME type. Parameters such as
// charset are ignored.
func DetectMIME(mimeType string) Format {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	switch mediaType {
	case "application/pdf", "application/x-pdf":
		return PDF
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return XLSX
	case "application/vnd.ms-excel", "application/msexcel", "application/x-msexcel", "application/x-excel":
		return XLS
	case "text/csv", "application/csv", "text/comma-separated-values", "application/x-csv":
		return CSV
	default:
		return Unknown
	}
}

var (
	pdfMagic  = []byte("%PDF")
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1")
)

// DetectFromMagic checks the leading bytes of data. ZIP archives are
// opened to tell workbooks from other Office documents. CSV has no
// signature and is never detected here.
func DetectFromMagic(data []byte) Format {
	f, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	return f
}

// DetectFromReader inspects the content to determine the format.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, pdfMagic):
		return PDF, nil
	case bytes.HasPrefix(magic, ole2Magic):
		return XLS, nil
	case bytes.HasPrefix(magic, zipMagic):
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// detectZIPFormat reports XLSX for an OOXML package with a workbook part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"), strings.HasPrefix(f.Name, "ppt/"):
			return Unknown, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}
	return Unknown, nil
}

// Resolve picks the format of an uploaded file. The declared MIME type wins,
// then the filename extension. Content is only sniffed when both are generic,
// as with an application/octet-stream upload without an extension. A
// declared type that is specific but unsupported, such as application/msword
// or a .docx name, resolves to Unknown whatever the content holds.
//
// Browsers on Windows commonly declare .csv files as application/vnd.ms-excel,
// so a CSV extension overrides an XLS MIME type.
func Resolve(name, mimeType string, data []byte) Format {
	byMIME := DetectMIME(mimeType)
	byExt := Detect(name)

	switch {
	case byMIME == XLS && byExt == CSV:
		return CSV
	case byMIME != Unknown:
		return byMIME
	case !genericMIME(mimeType):
		return Unknown
	case byExt != Unknown:
		return byExt
	case !genericExt(name):
		return Unknown
	}
	return DetectFromMagic(data)
}

// genericMIME reports whether a MIME type says nothing about the content.
func genericMIME(mimeType string) bool {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	switch mediaType {
	case "", "application/octet-stream", "binary/octet-stream", "application/x-download", "application/force-download":
		return true
	}
	return false
}

// genericExt reports whether a filename has no extension or one that names
// no particular format.
func genericExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case "", ".bin", ".dat", ".tmp", ".upload":
		return true
	}
	return false
}
