package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// CellType tells how a cell value was stored.
type CellType int

const (
	CellTypeEmpty CellType = iota
	CellTypeString
	CellTypeNumber
	CellTypeBoolean
	// CellTypeFormula is a formula without a cached result. Its Value is
	// empty.
	CellTypeFormula
	CellTypeError
)

func (t CellType) String() string {
	switch t {
	case CellTypeEmpty:
		return "empty"
	case CellTypeString:
		return "string"
	case CellTypeNumber:
		return "number"
	case CellTypeBoolean:
		return "boolean"
	case CellTypeFormula:
		return "formula"
	case CellTypeError:
		return "error"
	}
	return "unknown"
}

// Cell is one decoded worksheet cell. Numbers keep the literal stored in
// the file.
type Cell struct {
	Value string
	Type  CellType
}

// IsEmpty reports whether the cell shows nothing but whitespace.
func (c Cell) IsEmpty() bool {
	return c.Type == CellTypeEmpty || strings.TrimSpace(c.Value) == ""
}

// Sheet is a worksheet as a dense grid. Every row has the same length,
// and missing cells are CellTypeEmpty.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// IsBlank reports whether no cell of the sheet has content.
func (s *Sheet) IsBlank() bool {
	for _, row := range s.Rows {
		for _, c := range row {
			if !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}

// ParseCellRef splits an A1-style reference into 0-based column and row.
func ParseCellRef(ref string) (col, row int, err error) {
	split := strings.IndexFunc(ref, func(r rune) bool { return !isLetter(r) })
	switch {
	case ref == "":
		return 0, 0, fmt.Errorf("empty cell reference")
	case split == 0:
		return 0, 0, fmt.Errorf("cell reference %q: no column letters", ref)
	case split < 0:
		return 0, 0, fmt.Errorf("cell reference %q: no row number", ref)
	}

	n, err := strconv.Atoi(ref[split:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("cell reference %q: bad row %q", ref, ref[split:])
	}
	return ColumnToIndex(ref[:split]), n - 1, nil
}

// ColumnToIndex turns column letters into a 0-based index: A is 0, Z is
// 25, AA is 26. It returns -1 for anything but ASCII letters.
func ColumnToIndex(letters string) int {
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return -1
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
