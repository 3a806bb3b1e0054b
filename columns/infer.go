package columns

import (
	"regexp"
	"sort"

	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/normalize"
)

// Config holds the heuristics used by an Inferrer.
type Config struct {
	// Labels holds one pattern per column, matched against the folded
	// (lower-case, accent-free) and whitespace-collapsed cell text.
	Labels map[Key]*regexp.Regexp

	// Fallback is used when fewer than MinLabels labels match, and for any
	// key still missing after derivation.
	Fallback Bounds

	// MinLabels is the number of matched labels needed to trust the header.
	MinLabels int

	// Margin shifts every interval left so text starting slightly before
	// its header label still lands in the column.
	Margin float64

	// SubpartOffset places a missing subpart anchor this far right of the
	// partida anchor.
	SubpartOffset float64

	// Unbounded is the upper bound of the rightmost column.
	Unbounded float64
}

// DefaultLabels returns the Spanish header label patterns.
func DefaultLabels() map[Key]*regexp.Regexp {
	return map[Key]*regexp.Regexp{
		Numero:   regexp.MustCompile(`^(#|n[o°º]\.?|num\.?|numero|item)$`),
		Material: regexp.MustCompile(`\b(materiale?s?|descripcion)\b`),
		Unidad:   regexp.MustCompile(`\bunid(ad)?(es)?\b|\bu\.? ?m\.?(\s|$)|\budm\b`),
		Cantidad: regexp.MustCompile(`\bcant(idad)?\b`),
		Partida:  regexp.MustCompile(`^(no\.? ?)?(de )?partida\b`),
		Subpart:  regexp.MustCompile(`\b(sub ?partida|concepto)\b`),
	}
}

// DefaultFallback returns bounds for the common requisition template printed
// on letter-size paper.
func DefaultFallback() Bounds {
	return Bounds{
		Numero:   {Min: 0, Max: 48},
		Material: {Min: 48, Max: 300},
		Unidad:   {Min: 300, Max: 360},
		Cantidad: {Min: 360, Max: 420},
		Partida:  {Min: 420, Max: 480},
		Subpart:  {Min: 480, Max: 1e9},
	}
}

// DefaultConfig returns the default inference settings.
func DefaultConfig() Config {
	return Config{
		Labels:        DefaultLabels(),
		Fallback:      DefaultFallback(),
		MinLabels:     3,
		Margin:        2,
		SubpartOffset: 60,
		Unbounded:     1e9,
	}
}

// Result is the outcome of inferring bounds from a header block.
type Result struct {
	Bounds Bounds

	// Matched is the number of labels recognized in the header cells.
	Matched int

	// Fallback is true when Bounds came from the fixed fallback set.
	Fallback bool
}

// Inferrer derives column bounds from header cells. It holds no state
// between calls.
type Inferrer struct {
	cfg Config
}

// NewInferrer creates an inferrer with the given configuration.
func NewInferrer(cfg Config) *Inferrer {
	return &Inferrer{cfg: cfg}
}

// Anchors matches the header cells against the label patterns and derives
// missing unit and subpart anchors. It returns the anchors and the number of
// labels matched directly, before derivation.
func (in *Inferrer) Anchors(cells []layout.Cell) (Anchors, int) {
	anchors := make(Anchors)

	for _, key := range Keys() {
		re := in.cfg.Labels[key]
		if re == nil {
			continue
		}
		for _, c := range cells {
			if re.MatchString(normalize.Fold(normalize.CollapseSpace(c.Text))) {
				anchors[key] = c.X
				break
			}
		}
	}
	matched := len(anchors)

	if _, ok := anchors[Unidad]; !ok {
		m, okM := anchors[Material]
		q, okQ := anchors[Cantidad]
		if okM && okQ {
			anchors[Unidad] = (m + q) / 2
		}
	}
	if _, ok := anchors[Subpart]; !ok {
		if p, okP := anchors[Partida]; okP {
			anchors[Subpart] = p + in.cfg.SubpartOffset
		}
	}

	return anchors, matched
}

// Infer returns bounds covering all six keys. It never fails.
func (in *Inferrer) Infer(cells []layout.Cell) Result {
	anchors, matched := in.Anchors(cells)
	if matched < in.cfg.MinLabels {
		return Result{Bounds: in.fallback(), Matched: matched, Fallback: true}
	}

	keys := make([]Key, 0, len(anchors))
	for k := range anchors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if anchors[keys[i]] != anchors[keys[j]] {
			return anchors[keys[i]] < anchors[keys[j]]
		}
		return keys[i] < keys[j]
	})

	bounds := make(Bounds, len(Keys()))
	for i, k := range keys {
		upper := in.cfg.Unbounded
		if i+1 < len(keys) {
			upper = anchors[keys[i+1]] - in.cfg.Margin
		}
		bounds[k] = Interval{Min: anchors[k] - in.cfg.Margin, Max: upper}
	}

	fb := in.fallback()
	for _, k := range Keys() {
		if _, ok := bounds[k]; !ok {
			bounds[k] = fb[k]
		}
	}

	return Result{Bounds: bounds, Matched: matched}
}

// fallback returns a copy of the configured fallback bounds, filling any
// missing key with an empty interval.
func (in *Inferrer) fallback() Bounds {
	out := in.cfg.Fallback.Clone()
	for _, k := range Keys() {
		if _, ok := out[k]; !ok {
			out[k] = Interval{}
		}
	}
	return out
}
