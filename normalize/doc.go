// Package normalize parses and normalizes the loose tokens found on purchase
// documents.
//
// # Quantities
//
// [NormalizeQuantity] turns locale-formatted numbers into canonical decimal
// literals. A separator followed by exactly three digits and a word boundary
// is read as a thousands separator; the last remaining separator is the
// decimal point:
//
//	normalize.NormalizeQuantity("1.234,56") // "1234.56"
//	normalize.NormalizeQuantity("1,234.56") // "1234.56"
//	normalize.NormalizeQuantity("12,5")     // "12.5"
//
// The rule makes "1.234" read as 1234, never 1.234. That bias matches how
// Latin-locale documents write integers and is kept on purpose.
//
// [FindTrailingNumber] locates the rightmost numeric token on a text line,
// which is where tabular documents put the quantity.
//
// # Units
//
// A [Vocabulary] recognizes unit-of-measure abbreviations case- and
// accent-insensitively. [DefaultUnits] holds the Spanish abbreviations seen
// on construction and maintenance requisitions.
//
// # Text
//
// [CollapseSpace] and [Fold] are the whitespace and case/accent folding used
// by every comparison in this module.
package normalize
