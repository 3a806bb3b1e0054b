package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/lineitems/text"
)

// Cell is one fragment of a line.
type Cell struct {
	X     float64
	Width float64
	Text  string
}

// Line is a cluster of cells sharing a baseline. Y is the anchor: the Y of
// the first fragment that opened the cluster.
type Line struct {
	Y     float64
	Cells []Cell
}

// Text returns the cell texts joined by single spaces.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Cells))
	for _, c := range l.Cells {
		parts = append(parts, c.Text)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// CellsIn returns the cells whose X lies in [min, max).
func (l Line) CellsIn(min, max float64) []Cell {
	var out []Cell
	for _, c := range l.Cells {
		if c.X >= min && c.X < max {
			out = append(out, c)
		}
	}
	return out
}

// TextIn returns the joined text of the cells whose X lies in [min, max).
func (l Line) TextIn(min, max float64) string {
	return Line{Y: l.Y, Cells: l.CellsIn(min, max)}.Text()
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// Tolerance is the largest Y distance between a fragment and a line's
	// anchor for the fragment to join that line (default: 4.5 points)
	Tolerance float64
}

// DefaultLineConfig returns the default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Tolerance: 4.5,
	}
}

// LineDetector detects text lines on a page
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Config returns the detector's configuration.
func (d *LineDetector) Config() LineConfig {
	return d.config
}

// Detect groups fragments into lines. Blank fragments are dropped. Each
// fragment joins the first existing line whose anchor is within tolerance,
// in creation order, or opens a new line. Lines are returned with
// descending Y (top of the page first) and cells with ascending X; ties keep
// input order.
func (d *LineDetector) Detect(fragments []text.Fragment) []Line {
	var lines []Line

	for _, f := range fragments {
		t := strings.TrimSpace(f.Text)
		if t == "" {
			continue
		}
		cell := Cell{X: f.X, Width: f.Width, Text: t}

		placed := false
		for i := range lines {
			if math.Abs(lines[i].Y-f.Y) <= d.config.Tolerance {
				lines[i].Cells = append(lines[i].Cells, cell)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, Line{Y: f.Y, Cells: []Cell{cell}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Y > lines[j].Y
	})
	for _, l := range lines {
		cells := l.Cells
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].X < cells[j].X
		})
	}

	return lines
}
