package text

import (
	"testing"
)

// glyphs lays out s one glyph per rune starting at x, each advance wide.
// Spaces are omitted, as PDF parsers commonly do.
func glyphs(s string, x, y, size, advance float64) []Fragment {
	var out []Fragment
	for _, r := range s {
		if r != ' ' {
			out = append(out, Fragment{Text: string(r), X: x, Y: y, Width: advance, FontSize: size, FontName: "F1"})
		}
		x += advance
	}
	return out
}

func texts(frags []Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeGlyphs(t *testing.T) {
	cfg := DefaultMergeConfig()

	tests := []struct {
		name   string
		glyphs []Fragment
		want   []string
	}{
		{
			name:   "empty",
			glyphs: nil,
			want:   nil,
		},
		{
			name:   "single word",
			glyphs: glyphs("Cemento", 50, 700, 10, 5),
			want:   []string{"Cemento"},
		},
		{
			name:   "missing space glyph restored",
			glyphs: glyphs("Cemento gris", 50, 700, 10, 5),
			want:   []string{"Cemento gris"},
		},
		{
			name: "wide gap starts new fragment",
			glyphs: append(glyphs("Arena", 50, 700, 10, 5),
				glyphs("12", 400, 700, 10, 5)...),
			want: []string{"Arena", "12"},
		},
		{
			name: "separate baselines",
			glyphs: append(glyphs("Tubo", 50, 700, 10, 5),
				glyphs("Codo", 50, 680, 10, 5)...),
			want: []string{"Tubo", "Codo"},
		},
		{
			name: "out of order glyphs sorted by x",
			glyphs: []Fragment{
				{Text: "b", X: 55, Y: 700, Width: 5, FontSize: 10},
				{Text: "a", X: 50, Y: 700, Width: 5, FontSize: 10},
			},
			want: []string{"ab"},
		},
		{
			name: "explicit space glyph",
			glyphs: []Fragment{
				{Text: "a", X: 50, Y: 700, Width: 5, FontSize: 10},
				{Text: " ", X: 55, Y: 700, Width: 1, FontSize: 10},
				{Text: "b", X: 56, Y: 700, Width: 5, FontSize: 10},
			},
			want: []string{"a b"},
		},
		{
			name: "zero width uses advance",
			glyphs: []Fragment{
				{Text: "P", X: 50, Y: 700, FontSize: 10},
				{Text: "Z", X: 55, Y: 700, FontSize: 10},
				{Text: "A", X: 60, Y: 700, FontSize: 10},
			},
			want: []string{"PZA"},
		},
		{
			name: "baseline jitter tolerated",
			glyphs: []Fragment{
				{Text: "x", X: 50, Y: 700, Width: 5, FontSize: 10},
				{Text: "y", X: 55, Y: 700.5, Width: 5, FontSize: 10},
			},
			want: []string{"xy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(MergeGlyphs(tt.glyphs, cfg))
			if !equalStrings(got, tt.want) {
				t.Errorf("MergeGlyphs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeGlyphs_Geometry(t *testing.T) {
	runs := MergeGlyphs(glyphs("PZA 10", 300, 650, 10, 5), DefaultMergeConfig())
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.X != 300 || r.Y != 650 {
		t.Errorf("origin = (%v, %v), want (300, 650)", r.X, r.Y)
	}
	if r.Width != 30 {
		t.Errorf("Width = %v, want 30", r.Width)
	}
	if r.FontSize != 10 || r.FontName != "F1" {
		t.Errorf("font = %v %q, want 10 \"F1\"", r.FontSize, r.FontName)
	}
}

func TestMergeGlyphs_Order(t *testing.T) {
	in := append(glyphs("low", 50, 100, 10, 5), glyphs("high", 50, 700, 10, 5)...)
	got := texts(MergeGlyphs(in, DefaultMergeConfig()))
	want := []string{"high", "low"}
	if !equalStrings(got, want) {
		t.Errorf("MergeGlyphs() = %q, want %q", got, want)
	}
}

func TestFragment_IsBlank(t *testing.T) {
	if !(Fragment{Text: " \t"}).IsBlank() {
		t.Error("whitespace fragment should be blank")
	}
	if (Fragment{Text: "a"}).IsBlank() {
		t.Error("text fragment should not be blank")
	}
}
