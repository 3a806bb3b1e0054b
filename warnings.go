package lineitems

import (
	"fmt"
	"strings"
)

// WarningType classifies a non-fatal extraction issue.
type WarningType int

const (
	// WarningNoHeader means a PDF page has no material header line, so no
	// rows were read from it.
	WarningNoHeader WarningType = iota

	// WarningFallbackBounds means too few column labels were recognized
	// and fixed column bounds were used.
	WarningFallbackBounds

	// WarningNoTextLayer means the PDF has images but no extractable text,
	// as with scanned documents.
	WarningNoTextLayer

	// WarningProbeFailed means the structural check of a PDF failed. Text
	// extraction still ran.
	WarningProbeFailed
)

// String returns a short name for the warning type.
func (t WarningType) String() string {
	switch t {
	case WarningNoHeader:
		return "no-header"
	case WarningFallbackBounds:
		return "fallback-bounds"
	case WarningNoTextLayer:
		return "no-text-layer"
	case WarningProbeFailed:
		return "probe-failed"
	default:
		return fmt.Sprintf("WarningType(%d)", int(t))
	}
}

// Warning is a non-fatal issue found during extraction. The items returned
// alongside it are still valid but may be incomplete.
type Warning struct {
	Type WarningType

	// Page is the 1-based PDF page, or 0 when the warning concerns the
	// whole document.
	Page int

	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
