package heuristics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/lineitems/columns"
	"github.com/tsawler/lineitems/pdftable"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if len(cfg.Labels) != len(columns.Keys()) {
		t.Errorf("len(Labels) = %d, want %d", len(cfg.Labels), len(columns.Keys()))
	}
	if len(cfg.Fallback) != len(columns.Keys()) {
		t.Errorf("len(Fallback) = %d, want %d", len(cfg.Fallback), len(columns.Keys()))
	}
}

func TestDefault_RoundTripsComponentDefaults(t *testing.T) {
	got, err := Default().PDFConfig()
	if err != nil {
		t.Fatalf("PDFConfig() error = %v", err)
	}
	want := pdftable.DefaultConfig()

	if got.Lines != want.Lines {
		t.Errorf("Lines = %+v, want %+v", got.Lines, want.Lines)
	}
	if got.HeaderBlockLines != want.HeaderBlockLines || got.Lookahead != want.Lookahead || got.MaxUnitLetters != want.MaxUnitLetters {
		t.Errorf("counts = %d/%d/%d, want %d/%d/%d",
			got.HeaderBlockLines, got.Lookahead, got.MaxUnitLetters,
			want.HeaderBlockLines, want.Lookahead, want.MaxUnitLetters)
	}
	if got.FooterPattern.String() != want.FooterPattern.String() {
		t.Errorf("FooterPattern = %q, want %q", got.FooterPattern, want.FooterPattern)
	}
	if got.Units.Len() != want.Units.Len() {
		t.Errorf("Units.Len() = %d, want %d", got.Units.Len(), want.Units.Len())
	}
	for _, k := range columns.Keys() {
		if got.Columns.Labels[k].String() != want.Columns.Labels[k].String() {
			t.Errorf("label %s = %q, want %q", k, got.Columns.Labels[k], want.Columns.Labels[k])
		}
		if got.Columns.Fallback[k] != want.Columns.Fallback[k] {
			t.Errorf("fallback %s = %+v, want %+v", k, got.Columns.Fallback[k], want.Columns.Fallback[k])
		}
	}
	if got.Columns.MinLabels != want.Columns.MinLabels || got.Columns.Margin != want.Columns.Margin {
		t.Errorf("columns = %d/%v, want %d/%v", got.Columns.MinLabels, got.Columns.Margin, want.Columns.MinLabels, want.Columns.Margin)
	}
}

func TestParse_Overlay(t *testing.T) {
	data := []byte(`
units: [pz, bolsa]
lookahead: 3
labels:
  cantidad: '\b(cant(idad)?|qty)\b'
fallback:
  material:
    min: 40
    max: 280
merge:
  space_gap: 0.3
  break_gap: 2
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cfg.Units) != 2 || cfg.Units[1] != "bolsa" {
		t.Errorf("Units = %v, want [pz bolsa]", cfg.Units)
	}
	if cfg.Lookahead != 3 {
		t.Errorf("Lookahead = %d, want 3", cfg.Lookahead)
	}
	if cfg.HeaderBlockLines != Default().HeaderBlockLines {
		t.Errorf("HeaderBlockLines = %d, want default %d", cfg.HeaderBlockLines, Default().HeaderBlockLines)
	}

	// Maps merge: untouched keys keep their defaults.
	if len(cfg.Labels) != len(columns.Keys()) {
		t.Errorf("len(Labels) = %d, want %d", len(cfg.Labels), len(columns.Keys()))
	}
	if cfg.Labels["material"] != Default().Labels["material"] {
		t.Errorf("material label = %q, want default", cfg.Labels["material"])
	}
	if cfg.Fallback["material"] != (Interval{Min: 40, Max: 280}) {
		t.Errorf("material fallback = %+v, want {40 280}", cfg.Fallback["material"])
	}
	if cfg.Merge.Advance != Default().Merge.Advance {
		t.Errorf("Merge.Advance = %v, want default", cfg.Merge.Advance)
	}

	pdf, err := cfg.PDFConfig()
	if err != nil {
		t.Fatalf("PDFConfig() error = %v", err)
	}
	if !pdf.Columns.Labels[columns.Cantidad].MatchString("qty") {
		t.Error("overridden cantidad label does not match qty")
	}
	if !pdf.Units.Contains("bolsa") || pdf.Units.Contains("kg") {
		t.Error("unit vocabulary was not replaced")
	}

	merge := cfg.MergeConfig()
	if merge.SpaceGap != 0.3 || merge.BreakGap != 2 {
		t.Errorf("MergeConfig() = %+v, want gaps 0.3 and 2", merge)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed yaml", "units: [pz", "parse heuristics"},
		{"unknown column", "labels:\n  precio: 'x'\n", `unknown column key "precio"`},
		{"bad label pattern", "labels:\n  material: '('\n", "labels.material"},
		{"bad footer", "patterns:\n  footer: '[a-'\n", "patterns.footer"},
		{"empty header", "patterns:\n  header: ''\n", "patterns.header must not be empty"},
		{"negative lookahead", "lookahead: -1\n", "lookahead"},
		{"empty units", "units: []\n", "units must not be empty"},
		{"inverted fallback", "fallback:\n  unidad: {min: 300, max: 200}\n", "fallback.unidad"},
		{"inverted gaps", "merge: {space_gap: 2, break_gap: 1}\n", "merge gaps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tt.yaml)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want it to contain %q", tt.yaml, err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.yaml")
	if err := os.WriteFile(path, []byte("min_labels: 2\nsynonyms:\n  quantity: [cantidad, piezas]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MinLabels != 2 {
		t.Errorf("MinLabels = %d, want 2", cfg.MinLabels)
	}
	sc := cfg.SheetConfig()
	if len(sc.Synonyms.Quantity) != 2 || sc.Synonyms.Quantity[1] != "piezas" {
		t.Errorf("Quantity synonyms = %v, want [cantidad piezas]", sc.Synonyms.Quantity)
	}
	if len(sc.Synonyms.Material) == 0 {
		t.Error("Material synonyms lost their defaults")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error, got nil")
	}
}

func TestPDFConfig_StandaloneUnits(t *testing.T) {
	pdf, err := Default().PDFConfig()
	if err != nil {
		t.Fatalf("PDFConfig() error = %v", err)
	}
	if _, ok := pdf.Units.Match("Tubo con un codo"); ok {
		t.Error("default vocabulary matched \"un\" inside a description")
	}
	if !pdf.Units.Contains("UN") {
		t.Error("default vocabulary should still recognize UN")
	}

	cfg, err := Parse([]byte("standalone_units: []\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if pdf, err = cfg.PDFConfig(); err != nil {
		t.Fatalf("PDFConfig() error = %v", err)
	}
	if got, ok := pdf.Units.Match("Tubo con un codo"); !ok || got != "un" {
		t.Errorf("Match() = (%q, %v), want (un, true)", got, ok)
	}
}
