package sheet

import "strings"

// Cell is one spreadsheet value. Numeric marks values the workbook stored as
// numbers; their Text is already a canonical decimal.
type Cell struct {
	Text    string
	Numeric bool
}

// IsBlank reports whether the cell holds only whitespace.
func (c Cell) IsBlank() bool {
	return strings.TrimSpace(c.Text) == ""
}

// Grid is a sheet as rows of cells. Rows may have different lengths.
type Grid [][]Cell

// StringGrid builds a grid of text cells.
func StringGrid(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]Cell, len(row))
		for j, v := range row {
			g[i][j] = Cell{Text: v}
		}
	}
	return g
}

// At returns the cell at row i, column j, or a blank cell when the position
// is outside the grid.
func (g Grid) At(i, j int) Cell {
	if i < 0 || i >= len(g) || j < 0 || j >= len(g[i]) {
		return Cell{}
	}
	return g[i][j]
}

// Header returns the text of row 0.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	out := make([]string, len(g[0]))
	for i, c := range g[0] {
		out[i] = c.Text
	}
	return out
}
