package pdftable

import (
	"regexp"

	"github.com/tsawler/lineitems/columns"
	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/normalize"
)

// Config holds the heuristics used by an Extractor. Text patterns are
// matched against folded text: lower case with accents removed.
type Config struct {
	Lines   layout.LineConfig
	Columns columns.Config
	Units   *normalize.Vocabulary

	// HeaderPattern finds the line that opens the table.
	HeaderPattern *regexp.Regexp

	// FooterPattern marks the end of the table on a page.
	FooterPattern *regexp.Regexp

	// LeakagePattern matches unit text that is really the unit column's
	// header label.
	LeakagePattern *regexp.Regexp

	// RowNumberPattern matches a leading row number, applied to the raw
	// line text.
	RowNumberPattern *regexp.Regexp

	// HeaderBlockLines is how many lines after the header line may still
	// belong to a multi-line header.
	HeaderBlockLines int

	// Lookahead is how many wrapped description lines may be stitched onto
	// a record.
	Lookahead int

	// MaxUnitLetters bounds the length of a peeled unit word, not counting
	// a plural ending.
	MaxUnitLetters int

	// PeelAnyWord peels any unit-shaped last word of the description as
	// the unit. When false the word must be a known unit or repeat the
	// unit column's text.
	PeelAnyWord bool
}

// Default patterns.
var (
	DefaultHeaderPattern    = regexp.MustCompile(`\bmaterial(es)?\b`)
	DefaultFooterPattern    = regexp.MustCompile(`\b(send to|enviar a|observations?|observaciones|sketch|croquis|address|direccion|notes?\s*:|nota\s*:|requested by|solicitado por)`)
	DefaultLeakagePattern   = regexp.MustCompile(`\bunidad\s*metrica\b`)
	DefaultRowNumberPattern = regexp.MustCompile(`^\s*\d{1,4}[.)\-]?\s+`)
)

// DefaultConfig returns the settings for Spanish purchase requisitions.
func DefaultConfig() Config {
	return Config{
		Lines:            layout.DefaultLineConfig(),
		Columns:          columns.DefaultConfig(),
		Units:            normalize.DefaultVocabulary(),
		HeaderPattern:    DefaultHeaderPattern,
		FooterPattern:    DefaultFooterPattern,
		LeakagePattern:   DefaultLeakagePattern,
		RowNumberPattern: DefaultRowNumberPattern,
		HeaderBlockLines: 2,
		Lookahead:        2,
		MaxUnitLetters:   12,
	}
}
