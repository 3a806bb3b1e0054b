package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// numberPattern matches a grouped number ("1.234,56", "12,345") or a simple
// decimal ("1234", "12,5"). Grouped forms are tried first.
var numberPattern = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d+)?|\d+(?:[.,]\d+)?`)

// Match is a numeric token found on a line.
type Match struct {
	// Token is the matched text exactly as it appears on the line.
	Token string

	// Index is the byte offset of Token within the line.
	Index int
}

// End returns the byte offset just past the token.
func (m Match) End() int {
	return m.Index + len(m.Token)
}

// NormalizeQuantity converts a numeric literal using "." or "," as thousands
// or decimal separator into canonical form with "." as the decimal point.
// Whitespace anywhere in the input is ignored. Malformed input yields a
// best-effort reconstruction; the function never fails.
func NormalizeQuantity(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return ""
	}

	s = stripGrouping(s)

	i := strings.LastIndexAny(s, ".,")
	if i < 0 {
		return s
	}

	intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:i])
	frac := s[i+1:]
	if frac == "" {
		return intPart
	}
	if intPart == "" {
		intPart = "0"
	}
	return intPart + "." + frac
}

// stripGrouping drops every separator that is immediately followed by exactly
// three digits and a word boundary. Decisions are made against the original
// string so adjacent groups ("1.234.567") are all removed.
func stripGrouping(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c == '.' || c == ',') && isGroup(s, i+1) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isGroup reports whether s[at:] starts with three digits followed by the end
// of the string or a non-word byte.
func isGroup(s string, at int) bool {
	if at+3 > len(s) {
		return false
	}
	for j := at; j < at+3; j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	return at+3 == len(s) || !isWordByte(s[at+3])
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// FindTrailingNumber returns the rightmost numeric token on line. Quantity is
// conventionally the last numeric field of a tabular text line, so earlier
// numbers (sizes, weights, codes) are passed over. The boolean is false when
// the line holds no number at all.
func FindTrailingNumber(line string) (Match, bool) {
	locs := numberPattern.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return Match{}, false
	}
	last := locs[len(locs)-1]
	return Match{Token: line[last[0]:last[1]], Index: last[0]}, true
}

// HasNumber reports whether line contains any numeric token.
func HasNumber(line string) bool {
	return numberPattern.MatchString(line)
}
