package normalize

import "strings"

// DefaultUnits lists the unit-of-measure abbreviations recognized out of the
// box, grouped by family.
var DefaultUnits = []string{
	// piece
	"pz", "pzs", "pza", "pzas", "pieza", "piezas",
	// roll
	"rollo", "rollos", "rll", "rl",
	// ton
	"ton", "tons", "tonelada", "toneladas",
	// meter
	"m", "ml", "mt", "mts", "metro", "metros", "mtl",
	// kilogram
	"kg", "kgs", "kilo", "kilos", "kilogramo", "kilogramos",
	// liter
	"l", "lt", "lts", "litro", "litros",
	// box
	"caja", "cajas", "cja", "cj",
	// drum
	"tambo", "tambos", "tambor", "tambores",
	// area
	"m2", "mt2", "mts2",
	// volume
	"m3", "mt3", "mts3",
	// unit
	"u", "un", "und", "unid", "unidad", "unidades", "servicio", "serv",
	// sack, set, pair, gallon, bucket, lot
	"saco", "sacos", "bulto", "bultos", "juego", "jgo", "par", "pares",
	"galon", "galones", "gal", "cubeta", "cubetas", "cub", "lote", "lotes",
}

// DefaultStandaloneUnits are units that double as ordinary Spanish words
// ("un codo", "un par de guantes"). They count as a unit only where a unit
// is expected, never when found somewhere inside a line.
var DefaultStandaloneUnits = []string{"u", "un", "par"}

const tokenPunct = ".,;:()[]"

// Vocabulary is a fixed set of recognized unit tokens. The zero value
// recognizes nothing. A Vocabulary is read-only after construction and safe
// for concurrent use.
type Vocabulary struct {
	units      map[string]struct{}
	standalone map[string]struct{}
}

// NewVocabulary builds a vocabulary from unit abbreviations. Entries are
// compared folded, so case and accents in the list do not matter.
func NewVocabulary(units []string) *Vocabulary {
	return NewVocabularyWithStandalone(units, nil)
}

// NewVocabularyWithStandalone is like NewVocabulary, but the units in
// standalone are skipped by Match. Contains still recognizes them. Entries
// of standalone missing from units are ignored.
func NewVocabularyWithStandalone(units, standalone []string) *Vocabulary {
	v := &Vocabulary{
		units:      make(map[string]struct{}, len(units)),
		standalone: make(map[string]struct{}, len(standalone)),
	}
	for _, u := range units {
		if key := foldToken(u); key != "" {
			v.units[key] = struct{}{}
		}
	}
	for _, u := range standalone {
		key := foldToken(u)
		if _, ok := v.units[key]; ok {
			v.standalone[key] = struct{}{}
		}
	}
	return v
}

// DefaultVocabulary returns a vocabulary over DefaultUnits with
// DefaultStandaloneUnits kept out of Match.
func DefaultVocabulary() *Vocabulary {
	return NewVocabularyWithStandalone(DefaultUnits, DefaultStandaloneUnits)
}

// Len returns the number of distinct units.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.units)
}

// Contains reports whether token is a recognized unit. Surrounding
// punctuation is ignored ("PZA." matches "pza").
func (v *Vocabulary) Contains(token string) bool {
	if v == nil {
		return false
	}
	_, ok := v.units[foldToken(token)]
	return ok
}

// Match looks up the whitespace-delimited tokens of text in order and returns
// the first recognized unit as written in text, without surrounding
// punctuation. Standalone units are not matched.
func (v *Vocabulary) Match(text string) (string, bool) {
	if v.Len() == 0 {
		return "", false
	}
	for _, tok := range strings.Fields(text) {
		key := foldToken(tok)
		if _, ok := v.units[key]; !ok {
			continue
		}
		if _, ok := v.standalone[key]; ok {
			continue
		}
		return strings.Trim(tok, tokenPunct), true
	}
	return "", false
}

func foldToken(s string) string {
	return Fold(strings.Trim(strings.TrimSpace(s), tokenPunct))
}
