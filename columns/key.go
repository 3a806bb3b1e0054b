package columns

import "fmt"

// Key identifies a table column.
type Key int

const (
	Numero   Key = iota // row number
	Material            // material description
	Unidad              // unit of measure
	Cantidad            // quantity
	Partida             // budget line item
	Subpart             // sub line item or concept
)

var keyNames = [...]string{"numero", "material", "unidad", "cantidad", "partida", "subpart"}

// Keys returns every column key in declaration order.
func Keys() []Key {
	return []Key{Numero, Material, Unidad, Cantidad, Partida, Subpart}
}

// String returns the key's lower-case name.
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey maps a name produced by String back to its key.
func ParseKey(s string) (Key, error) {
	for i, name := range keyNames {
		if name == s {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown column key %q", s)
}

// Interval is a half-open X range [Min, Max).
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether x lies in the interval.
func (i Interval) Contains(x float64) bool {
	return x >= i.Min && x < i.Max
}

// Bounds maps each column to its X interval.
type Bounds map[Key]Interval

// Clone returns a copy of b.
func (b Bounds) Clone() Bounds {
	out := make(Bounds, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Anchors maps a column to the X position of its header label.
type Anchors map[Key]float64
