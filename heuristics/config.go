package heuristics

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/lineitems/columns"
	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/normalize"
	"github.com/tsawler/lineitems/pdftable"
	"github.com/tsawler/lineitems/sheet"
	"github.com/tsawler/lineitems/text"
)

// Interval is a column X range [Min, Max).
type Interval struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Patterns are the line-level regular expressions of the PDF extractor.
// All but RowNumber are matched against folded text.
type Patterns struct {
	Header    string `yaml:"header"`
	Footer    string `yaml:"footer"`
	Leakage   string `yaml:"leakage"`
	RowNumber string `yaml:"row_number"`
}

// Merge controls how PDF glyphs are joined into text runs.
type Merge struct {
	BaselineTolerance float64 `yaml:"baseline_tolerance"`
	SpaceGap          float64 `yaml:"space_gap"`
	BreakGap          float64 `yaml:"break_gap"`
	Advance           float64 `yaml:"advance"`
}

// Config is the complete set of extraction heuristics.
type Config struct {
	// Units is the unit-of-measure vocabulary.
	Units []string `yaml:"units"`

	// StandaloneUnits are units that are also ordinary words. They are
	// recognized at the end of a description or in the unit column only.
	StandaloneUnits []string `yaml:"standalone_units"`

	// Worksheets are workbook sheet names tried in order before the first
	// sheet with content. Names compare without regard to case.
	Worksheets []string `yaml:"worksheets"`

	// Synonyms are the recognized spreadsheet header names per field.
	Synonyms sheet.Synonyms `yaml:"synonyms"`

	// Labels maps a column name (numero, material, unidad, cantidad,
	// partida, subpart) to the pattern of its PDF header label.
	Labels map[string]string `yaml:"labels"`

	// Fallback maps a column name to the bounds used when the header
	// labels cannot be located.
	Fallback map[string]Interval `yaml:"fallback"`

	Patterns Patterns `yaml:"patterns"`
	Merge    Merge    `yaml:"merge"`

	LineTolerance    float64 `yaml:"line_tolerance"`
	HeaderBlockLines int     `yaml:"header_block_lines"`
	Lookahead        int     `yaml:"lookahead"`
	MaxUnitLetters   int     `yaml:"max_unit_letters"`
	PeelAnyWord      bool    `yaml:"peel_any_word"`
	MinLabels        int     `yaml:"min_labels"`
	Margin           float64 `yaml:"margin"`
	SubpartOffset    float64 `yaml:"subpart_offset"`
	Unbounded        float64 `yaml:"unbounded"`
}

// Default returns the built-in heuristics.
func Default() Config {
	cols := columns.DefaultConfig()
	pdf := pdftable.DefaultConfig()
	merge := text.DefaultMergeConfig()

	labels := make(map[string]string, len(cols.Labels))
	for k, re := range cols.Labels {
		labels[k.String()] = re.String()
	}
	fallback := make(map[string]Interval, len(cols.Fallback))
	for k, iv := range cols.Fallback {
		fallback[k.String()] = Interval{Min: iv.Min, Max: iv.Max}
	}

	return Config{
		Units:           append([]string(nil), normalize.DefaultUnits...),
		StandaloneUnits: append([]string(nil), normalize.DefaultStandaloneUnits...),
		Synonyms:        sheet.DefaultSynonyms(),
		Labels:          labels,
		Fallback:        fallback,
		Patterns: Patterns{
			Header:    pdf.HeaderPattern.String(),
			Footer:    pdf.FooterPattern.String(),
			Leakage:   pdf.LeakagePattern.String(),
			RowNumber: pdf.RowNumberPattern.String(),
		},
		Merge: Merge{
			BaselineTolerance: merge.BaselineTolerance,
			SpaceGap:          merge.SpaceGap,
			BreakGap:          merge.BreakGap,
			Advance:           merge.Advance,
		},
		LineTolerance:    pdf.Lines.Tolerance,
		HeaderBlockLines: pdf.HeaderBlockLines,
		Lookahead:        pdf.Lookahead,
		MaxUnitLetters:   pdf.MaxUnitLetters,
		PeelAnyWord:      pdf.PeelAnyWord,
		MinLabels:        cols.MinLabels,
		Margin:           cols.Margin,
		SubpartOffset:    cols.SubpartOffset,
		Unbounded:        cols.Unbounded,
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse heuristics: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML file and decodes it with Parse.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read heuristics %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges, column names and patterns.
func (c Config) Validate() error {
	var errs []error

	if len(c.Units) == 0 {
		errs = append(errs, errors.New("units must not be empty"))
	}
	if len(c.Synonyms.Material) == 0 || len(c.Synonyms.MetricUnit) == 0 || len(c.Synonyms.Quantity) == 0 {
		errs = append(errs, errors.New("synonyms must list at least one name per field"))
	}
	if c.LineTolerance < 0 {
		errs = append(errs, fmt.Errorf("line_tolerance must be >= 0, got %v", c.LineTolerance))
	}
	if c.HeaderBlockLines < 0 {
		errs = append(errs, fmt.Errorf("header_block_lines must be >= 0, got %d", c.HeaderBlockLines))
	}
	if c.Lookahead < 0 {
		errs = append(errs, fmt.Errorf("lookahead must be >= 0, got %d", c.Lookahead))
	}
	if c.MaxUnitLetters <= 0 {
		errs = append(errs, fmt.Errorf("max_unit_letters must be > 0, got %d", c.MaxUnitLetters))
	}
	if c.MinLabels < 0 {
		errs = append(errs, fmt.Errorf("min_labels must be >= 0, got %d", c.MinLabels))
	}
	if c.Merge.SpaceGap < 0 || c.Merge.BreakGap < c.Merge.SpaceGap {
		errs = append(errs, fmt.Errorf("merge gaps must satisfy 0 <= space_gap <= break_gap, got %v and %v",
			c.Merge.SpaceGap, c.Merge.BreakGap))
	}

	for _, name := range sortedKeys(c.Labels) {
		if _, err := columns.ParseKey(name); err != nil {
			errs = append(errs, fmt.Errorf("labels: %w", err))
			continue
		}
		if _, err := regexp.Compile(c.Labels[name]); err != nil {
			errs = append(errs, fmt.Errorf("labels.%s: %w", name, err))
		}
	}
	for _, name := range sortedKeys(c.Fallback) {
		if _, err := columns.ParseKey(name); err != nil {
			errs = append(errs, fmt.Errorf("fallback: %w", err))
			continue
		}
		if iv := c.Fallback[name]; iv.Max < iv.Min {
			errs = append(errs, fmt.Errorf("fallback.%s: max %v is below min %v", name, iv.Max, iv.Min))
		}
	}

	for _, p := range []struct{ name, expr string }{
		{"header", c.Patterns.Header},
		{"footer", c.Patterns.Footer},
		{"leakage", c.Patterns.Leakage},
		{"row_number", c.Patterns.RowNumber},
	} {
		if p.expr == "" {
			errs = append(errs, fmt.Errorf("patterns.%s must not be empty", p.name))
			continue
		}
		if _, err := regexp.Compile(p.expr); err != nil {
			errs = append(errs, fmt.Errorf("patterns.%s: %w", p.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid heuristics: %w", errors.Join(errs...))
	}
	return nil
}

// SheetConfig returns the spreadsheet extractor settings.
func (c Config) SheetConfig() sheet.Config {
	return sheet.Config{Synonyms: c.Synonyms}
}

// MergeConfig returns the glyph merge settings.
func (c Config) MergeConfig() text.MergeConfig {
	return text.MergeConfig{
		BaselineTolerance: c.Merge.BaselineTolerance,
		SpaceGap:          c.Merge.SpaceGap,
		BreakGap:          c.Merge.BreakGap,
		Advance:           c.Merge.Advance,
	}
}

// ColumnsConfig compiles the column inference settings.
func (c Config) ColumnsConfig() (columns.Config, error) {
	cfg := columns.Config{
		Labels:        make(map[columns.Key]*regexp.Regexp, len(c.Labels)),
		Fallback:      make(columns.Bounds, len(c.Fallback)),
		MinLabels:     c.MinLabels,
		Margin:        c.Margin,
		SubpartOffset: c.SubpartOffset,
		Unbounded:     c.Unbounded,
	}
	for name, expr := range c.Labels {
		key, err := columns.ParseKey(name)
		if err != nil {
			return columns.Config{}, fmt.Errorf("labels: %w", err)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return columns.Config{}, fmt.Errorf("labels.%s: %w", name, err)
		}
		cfg.Labels[key] = re
	}
	for name, iv := range c.Fallback {
		key, err := columns.ParseKey(name)
		if err != nil {
			return columns.Config{}, fmt.Errorf("fallback: %w", err)
		}
		cfg.Fallback[key] = columns.Interval{Min: iv.Min, Max: iv.Max}
	}
	return cfg, nil
}

// PDFConfig compiles the PDF extractor settings.
func (c Config) PDFConfig() (pdftable.Config, error) {
	cols, err := c.ColumnsConfig()
	if err != nil {
		return pdftable.Config{}, err
	}

	compile := func(name, expr string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("patterns.%s: %w", name, err)
		}
		return re, nil
	}

	cfg := pdftable.Config{
		Lines:            layout.LineConfig{Tolerance: c.LineTolerance},
		Columns:          cols,
		Units:            normalize.NewVocabularyWithStandalone(c.Units, c.StandaloneUnits),
		HeaderBlockLines: c.HeaderBlockLines,
		Lookahead:        c.Lookahead,
		MaxUnitLetters:   c.MaxUnitLetters,
		PeelAnyWord:      c.PeelAnyWord,
	}
	if cfg.HeaderPattern, err = compile("header", c.Patterns.Header); err != nil {
		return pdftable.Config{}, err
	}
	if cfg.FooterPattern, err = compile("footer", c.Patterns.Footer); err != nil {
		return pdftable.Config{}, err
	}
	if cfg.LeakagePattern, err = compile("leakage", c.Patterns.Leakage); err != nil {
		return pdftable.Config{}, err
	}
	if cfg.RowNumberPattern, err = compile("row_number", c.Patterns.RowNumber); err != nil {
		return pdftable.Config{}, err
	}
	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
