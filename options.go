package lineitems

import (
	"log/slog"

	"github.com/tsawler/lineitems/heuristics"
)

// DefaultMaxFileSize is the largest payload accepted unless MaxFileSize
// says otherwise.
const DefaultMaxFileSize = 50 << 20

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is). PDF only.
	pages []int

	// nil means heuristics.Default()
	heuristics *heuristics.Config

	logger      *slog.Logger
	maxFileSize int64
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:       nil, // nil means all pages
		logger:      slog.Default(),
		maxFileSize: DefaultMaxFileSize,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		heuristics:  o.heuristics,
		logger:      o.logger,
		maxFileSize: o.maxFileSize,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// config returns the heuristics in effect.
func (o ExtractOptions) config() heuristics.Config {
	if o.heuristics != nil {
		return *o.heuristics
	}
	return heuristics.Default()
}
