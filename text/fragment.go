package text

import (
	"sort"
	"strings"
)

// Fragment is a piece of text placed on a page. X and Y are in PDF user
// space, so Y grows upward and a larger Y is higher on the page.
type Fragment struct {
	Text     string
	X, Y     float64
	Width    float64
	FontSize float64
	FontName string
}

// Right returns the X coordinate where the fragment ends.
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// IsBlank reports whether the fragment carries only whitespace.
func (f Fragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// MergeConfig controls how single glyphs are joined into runs.
type MergeConfig struct {
	// BaselineTolerance is the largest Y difference for two glyphs to share
	// a baseline.
	BaselineTolerance float64

	// SpaceGap and BreakGap are multiples of the font size. A gap up to
	// SpaceGap joins glyphs directly, up to BreakGap joins them with a
	// space, and anything wider starts a new fragment.
	SpaceGap float64
	BreakGap float64

	// Advance is the glyph width assumed, as a multiple of the font size,
	// when the text layer reports none.
	Advance float64
}

// DefaultMergeConfig returns the merge settings used for PDF text layers.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		BaselineTolerance: 1.0,
		SpaceGap:          0.2,
		BreakGap:          1.5,
		Advance:           0.5,
	}
}

// MergeGlyphs joins glyph-level fragments into word and phrase runs. Glyphs
// are grouped by baseline and ordered by X within each baseline. Explicit
// whitespace glyphs become a single space inside a run. The returned runs are
// ordered top to bottom, then left to right.
func MergeGlyphs(glyphs []Fragment, cfg MergeConfig) []Fragment {
	if len(glyphs) == 0 {
		return nil
	}

	var baselines [][]Fragment
	for _, g := range glyphs {
		placed := false
		for i := range baselines {
			if abs(baselines[i][0].Y-g.Y) <= cfg.BaselineTolerance {
				baselines[i] = append(baselines[i], g)
				placed = true
				break
			}
		}
		if !placed {
			baselines = append(baselines, []Fragment{g})
		}
	}

	sort.SliceStable(baselines, func(i, j int) bool {
		return baselines[i][0].Y > baselines[j][0].Y
	})

	var runs []Fragment
	for _, line := range baselines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X < line[j].X
		})
		runs = append(runs, mergeLine(line, cfg)...)
	}
	return runs
}

// mergeLine joins the X-ordered glyphs of one baseline.
func mergeLine(line []Fragment, cfg MergeConfig) []Fragment {
	var (
		runs    []Fragment
		cur     Fragment
		b       strings.Builder
		open    bool
		pending bool
	)

	flush := func() {
		if !open {
			return
		}
		cur.Text = strings.TrimSpace(b.String())
		if cur.Text != "" {
			runs = append(runs, cur)
		}
		b.Reset()
		open = false
		pending = false
	}

	for _, g := range line {
		if g.IsBlank() {
			pending = open
			continue
		}

		w := g.Width
		if w <= 0 {
			w = g.FontSize * cfg.Advance * float64(len([]rune(g.Text)))
		}

		if open {
			size := cur.FontSize
			if g.FontSize > size {
				size = g.FontSize
			}
			gap := g.X - cur.Right()
			switch {
			case gap > cfg.BreakGap*size:
				flush()
			case pending || gap > cfg.SpaceGap*size:
				b.WriteByte(' ')
			}
		}

		if !open {
			cur = Fragment{X: g.X, Y: g.Y, FontSize: g.FontSize, FontName: g.FontName}
			open = true
		}
		pending = false
		b.WriteString(g.Text)
		if right := g.X + w; right > cur.Right() {
			cur.Width = right - cur.X
		}
	}
	flush()

	return runs
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
