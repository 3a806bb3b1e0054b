package pdftable

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/lineitems/columns"
	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/model"
	"github.com/tsawler/lineitems/normalize"
	"github.com/tsawler/lineitems/text"
)

// PageResult is the outcome of extracting one page.
type PageResult struct {
	Items []model.LineItem

	// HeaderFound is false when no line matched the header pattern.
	HeaderFound bool

	// FallbackBounds is true when too few column labels were recognized
	// and the fixed fallback bounds were used.
	FallbackBounds bool

	// Bounds are the column bounds used for the page, nil without a header.
	Bounds columns.Bounds
}

// Extractor reads line items from positioned page text. It keeps no state
// between calls.
type Extractor struct {
	cfg      Config
	lines    *layout.LineDetector
	inferrer *columns.Inferrer
}

// NewExtractor creates an extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{
		cfg:      cfg,
		lines:    layout.NewLineDetectorWithConfig(cfg.Lines),
		inferrer: columns.NewInferrer(cfg.Columns),
	}
}

// Extract returns the items of every page, in page order and then line
// order within each page.
func (e *Extractor) Extract(pages [][]text.Fragment) []model.LineItem {
	items := make([]model.LineItem, 0)
	for _, frags := range pages {
		items = append(items, e.ExtractPage(frags).Items...)
	}
	return items
}

// ExtractPage extracts the items of a single page.
func (e *Extractor) ExtractPage(fragments []text.Fragment) PageResult {
	return e.ExtractLines(e.lines.Detect(fragments))
}

// ExtractLines extracts items from lines already clustered and ordered top
// to bottom.
func (e *Extractor) ExtractLines(lines []layout.Line) PageResult {
	res := PageResult{Items: make([]model.LineItem, 0)}

	header := -1
	for i, l := range lines {
		if matches(e.cfg.HeaderPattern, normalize.Fold(l.Text())) {
			header = i
			break
		}
	}
	if header < 0 {
		return res
	}
	res.HeaderFound = true

	// The header block takes following lines until one carries a number,
	// which makes it data.
	end := header
	floor := lines[header].Y
	headerCells := append([]layout.Cell(nil), lines[header].Cells...)
	for i := header + 1; i < len(lines) && i <= header+e.cfg.HeaderBlockLines; i++ {
		if normalize.HasNumber(lines[i].Text()) {
			break
		}
		headerCells = append(headerCells, lines[i].Cells...)
		if lines[i].Y < floor {
			floor = lines[i].Y
		}
		end = i
	}

	inferred := e.inferrer.Infer(headerCells)
	res.Bounds = inferred.Bounds
	res.FallbackBounds = inferred.Fallback

	r := rowReader{cfg: &e.cfg, bounds: inferred.Bounds}
	for cursor := end + 1; cursor < len(lines); cursor++ {
		line := lines[cursor]
		if line.Y >= floor {
			continue
		}
		if r.isFooter(line) {
			break
		}

		item, ok := r.read(line)
		if !ok {
			continue
		}

		for k := 0; k < e.cfg.Lookahead && cursor+1 < len(lines); k++ {
			more, ok := r.continuation(lines[cursor+1])
			if !ok {
				break
			}
			item.material += " " + more
			cursor++
		}

		if li, ok := model.NewLineItem(item.material, item.unit, item.quantity); ok {
			res.Items = append(res.Items, li)
		}
	}

	return res
}

// record is a line item before validation.
type record struct {
	material string
	unit     string
	quantity string
}

// rowReader applies the per-line rules for one page.
type rowReader struct {
	cfg    *Config
	bounds columns.Bounds
}

func (r rowReader) isFooter(line layout.Line) bool {
	return matches(r.cfg.FooterPattern, normalize.Fold(line.Text()))
}

func (r rowReader) band(line layout.Line, k columns.Key) string {
	iv := r.bounds[k]
	return line.TextIn(iv.Min, iv.Max)
}

// read turns one data line into a record. It reports false for lines
// without a quantity.
func (r rowReader) read(line layout.Line) (record, bool) {
	body := r.stripRowNumber(line.Text())

	m, ok := normalize.FindTrailingNumber(body)
	if !ok {
		return record{}, false
	}
	rec := record{quantity: normalize.NormalizeQuantity(m.Token)}

	words := strings.Fields(body[:m.Index])
	unitBand := r.band(line, columns.Unidad)

	switch {
	case matches(r.cfg.LeakagePattern, normalize.Fold(unitBand)):
		// Header text printed inside the unit column is not a unit.
		words = trimSuffixWords(words, strings.Fields(unitBand))
	case r.peelable(words, unitBand):
		rec.unit = strings.TrimSuffix(words[len(words)-1], ".")
		words = words[:len(words)-1]
	default:
		if u, found := r.cfg.Units.Match(body); found {
			rec.unit = u
			words = removeWord(words, u)
		} else if unitBand != "" && !hasDigit(unitBand) {
			rec.unit = unitBand
			words = trimSuffixWords(words, strings.Fields(unitBand))
		}
	}

	if matches(r.cfg.LeakagePattern, normalize.Fold(rec.unit)) {
		rec.unit = ""
	}

	rec.material = strings.Join(words, " ")
	if rec.material == "" {
		rec.material = r.stripRowNumber(r.band(line, columns.Material))
	}
	if rec.material == "" {
		rec.material = r.leftOfUnit(line, m.Token)
	}

	return rec, true
}

// peelable reports whether the last left-side word is a unit that can be
// removed while leaving a description behind.
func (r rowReader) peelable(words []string, unitBand string) bool {
	if len(words) < 2 {
		return false
	}
	w := words[len(words)-1]
	if !unitShaped(w, r.cfg.MaxUnitLetters) {
		return false
	}
	if r.cfg.PeelAnyWord || r.cfg.Units.Contains(w) {
		return true
	}
	return unitBand != "" && normalize.Fold(unitBand) == normalize.Fold(strings.TrimSuffix(w, "."))
}

// leftOfUnit joins every cell left of the unit band, minus the row number
// and the last occurrence of the quantity token.
func (r rowReader) leftOfUnit(line layout.Line, quantity string) string {
	limit := r.bounds[columns.Unidad].Min
	numero := r.bounds[columns.Numero]
	var parts []string
	for _, c := range line.Cells {
		if c.X < limit && !numero.Contains(c.X) {
			parts = append(parts, c.Text)
		}
	}
	words := strings.Fields(r.stripRowNumber(strings.Join(parts, " ")))
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] == quantity {
			words = append(words[:i], words[i+1:]...)
			break
		}
	}
	return strings.Join(words, " ")
}

// continuation returns the description text of a wrapped line, or false
// when the line looks like anything other than a continuation.
func (r rowReader) continuation(line layout.Line) (string, bool) {
	t := line.Text()
	if normalize.HasNumber(t) || r.isFooter(line) {
		return "", false
	}
	if _, found := r.cfg.Units.Match(t); found {
		return "", false
	}
	more := r.band(line, columns.Material)
	return more, more != ""
}

func (r rowReader) stripRowNumber(s string) string {
	s = strings.TrimSpace(s)
	if r.cfg.RowNumberPattern == nil {
		return s
	}
	if loc := r.cfg.RowNumberPattern.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[loc[1]:])
	}
	return s
}

// unitShaped reports whether w is a single alphabetic word of at most max
// letters, optionally followed by a plural ending and a period.
func unitShaped(w string, max int) bool {
	w = strings.TrimSuffix(w, ".")
	n := 0
	for _, c := range w {
		if !unicode.IsLetter(c) {
			return false
		}
		n++
	}
	if n == 0 {
		return false
	}
	lw := strings.ToLower(w)
	switch {
	case n <= max:
		return true
	case strings.HasSuffix(lw, "es"):
		return n-2 <= max
	case strings.HasSuffix(lw, "s"):
		return n-1 <= max
	}
	return false
}

// removeWord drops the first word equal to unit once punctuation is
// trimmed.
func removeWord(words []string, unit string) []string {
	for i, w := range words {
		if strings.Trim(w, ".,;:()[]") == unit {
			out := append([]string(nil), words[:i]...)
			return append(out, words[i+1:]...)
		}
	}
	return words
}

// trimSuffixWords drops suffix from the end of words when words ends with
// it and keeps at least one word.
func trimSuffixWords(words, suffix []string) []string {
	if len(suffix) == 0 || len(words) <= len(suffix) {
		return words
	}
	tail := words[len(words)-len(suffix):]
	for i := range suffix {
		if normalize.Fold(tail[i]) != normalize.Fold(suffix[i]) {
			return words
		}
	}
	return words[:len(words)-len(suffix)]
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func matches(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}
