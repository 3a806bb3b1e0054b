package model

import "strings"

// LineItem is one normalized row of a purchase document: the material being
// requested, its unit of measure, and the requested quantity.
type LineItem struct {
	// Material is the trimmed, whitespace-collapsed description. Never empty.
	Material string `json:"material"`

	// MetricUnit is the unit of measure as written in the source document,
	// or "" when no unit could be resolved.
	MetricUnit string `json:"metricUnit"`

	// Quantity is a numeric literal in canonical decimal-point form.
	Quantity string `json:"quantity"`
}

// NewLineItem builds a LineItem from raw extracted text. Material and unit
// have their whitespace collapsed and quantity is trimmed. The boolean result
// is false when the material is empty after normalization, in which case the
// row must not be emitted.
func NewLineItem(material, unit, quantity string) (LineItem, bool) {
	item := LineItem{
		Material:   collapse(material),
		MetricUnit: collapse(unit),
		Quantity:   strings.TrimSpace(quantity),
	}
	return item, item.Material != ""
}

// String returns a compact human-readable form, e.g. "10 SACOS Cemento".
func (li LineItem) String() string {
	parts := make([]string, 0, 3)
	if li.Quantity != "" {
		parts = append(parts, li.Quantity)
	}
	if li.MetricUnit != "" {
		parts = append(parts, li.MetricUnit)
	}
	parts = append(parts, li.Material)
	return strings.Join(parts, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
