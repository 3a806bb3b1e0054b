package sheet

import (
	"strings"

	"github.com/tsawler/lineitems/model"
	"github.com/tsawler/lineitems/normalize"
)

// Config holds the heuristics used by an Extractor.
type Config struct {
	Synonyms Synonyms
}

// DefaultConfig returns the default spreadsheet settings.
func DefaultConfig() Config {
	return Config{Synonyms: DefaultSynonyms()}
}

// Extractor reads line items from grids. It keeps no state between calls.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract treats row 0 as the header and returns one item per later row
// with a non-blank material. Rows whose three fields are all blank are
// skipped. A grid without rows yields an empty slice.
func (e *Extractor) Extract(g Grid) []model.LineItem {
	items := make([]model.LineItem, 0)
	if len(g) == 0 {
		return items
	}

	idx := ResolveHeader(g.Header(), e.cfg.Synonyms)
	for i := 1; i < len(g); i++ {
		material := g.At(i, idx.Material)
		unit := g.At(i, idx.MetricUnit)
		qty := g.At(i, idx.Quantity)
		if material.IsBlank() && unit.IsBlank() && qty.IsBlank() {
			continue
		}

		quantity := strings.TrimSpace(qty.Text)
		if !qty.Numeric {
			quantity = normalize.NormalizeQuantity(quantity)
		}

		if item, ok := model.NewLineItem(material.Text, unit.Text, quantity); ok {
			items = append(items, item)
		}
	}
	return items
}
