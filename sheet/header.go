package sheet

import (
	"strings"
	"unicode"

	"github.com/tsawler/lineitems/normalize"
)

// Synonyms lists the normalized header names recognized for each field.
type Synonyms struct {
	Material   []string `yaml:"material"`
	MetricUnit []string `yaml:"metricUnit"`
	Quantity   []string `yaml:"quantity"`
}

// DefaultSynonyms returns the Spanish and English header names seen on
// purchase requisition spreadsheets.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		Material: []string{
			"material", "materiales", "descripcion", "descripcion del material",
			"articulo", "producto", "insumo", "concepto", "description", "item",
		},
		MetricUnit: []string{
			"unidad", "unidades", "unidad de medida", "unidad metrica", "um", "u",
			"udm", "unid", "uni", "medida", "unit", "uom",
		},
		Quantity: []string{
			"cantidad", "cant", "cantidad solicitada", "cantidades", "qty", "quantity",
		},
	}
}

// HeaderIndexMap holds the zero-based column of each field.
type HeaderIndexMap struct {
	Material   int
	MetricUnit int
	Quantity   int
}

// NormalizeHeader lower-cases s, removes accents and punctuation, and
// collapses whitespace. Slashes, dashes and underscores separate words.
func NormalizeHeader(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '-' || r == '_':
			return ' '
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			return -1
		}
		return r
	}, normalize.Fold(s))
	return normalize.CollapseSpace(s)
}

// ResolveHeader maps each field to a header column. An exact synonym match
// wins over a header that merely contains a synonym as a whole-word phrase,
// and a column is claimed by at most one field. Fields left unmatched take
// columns 0, 1 and 2.
func ResolveHeader(header []string, syn Synonyms) HeaderIndexMap {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = NormalizeHeader(h)
	}

	lists := [3][]string{syn.Material, syn.MetricUnit, syn.Quantity}
	found := [3]int{-1, -1, -1}
	claimed := make(map[int]bool)

	passes := []func(h, s string) bool{
		func(h, s string) bool { return h == s },
		func(h, s string) bool {
			return len(s) > 1 && strings.Contains(" "+h+" ", " "+s+" ")
		},
	}

	for _, match := range passes {
		for f, list := range lists {
			if found[f] >= 0 {
				continue
			}
		columns:
			for col, h := range norm {
				if claimed[col] || h == "" {
					continue
				}
				for _, s := range list {
					if match(h, NormalizeHeader(s)) {
						found[f] = col
						claimed[col] = true
						break columns
					}
				}
			}
		}
	}

	for f := range found {
		if found[f] < 0 {
			found[f] = f
		}
	}
	return HeaderIndexMap{Material: found[0], MetricUnit: found[1], Quantity: found[2]}
}
