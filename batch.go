package lineitems

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/lineitems/model"
)

// BatchResult is the outcome for one file of ExtractBatch.
type BatchResult struct {
	Name     string
	Items    []model.LineItem
	Warnings []Warning
	Err      error
}

// ExtractBatch extracts several files concurrently with default settings,
// running at most limit extractions at once (no limit when limit <= 0).
// Results are in input order and each carries its own error. Files not yet
// started when ctx is cancelled fail with an *ExtractionError wrapping the
// context error.
func ExtractBatch(ctx context.Context, files []File, limit int) []BatchResult {
	return extractBatch(ctx, files, limit, func(f File) *Extractor { return FromFile(f) })
}

// Batch extracts several files concurrently with the configuration of e.
// The source of e is ignored; see ExtractBatch for the semantics.
func (e *Extractor) Batch(ctx context.Context, files []File, limit int) []BatchResult {
	return extractBatch(ctx, files, limit, func(f File) *Extractor {
		newExt := e.clone()
		newExt.path = ""
		newExt.file = f
		newExt.loaded = true
		return newExt
	})
}

func extractBatch(ctx context.Context, files []File, limit int, open func(File) *Extractor) []BatchResult {
	results := make([]BatchResult, len(files))
	if len(files) == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, f := range files {
		results[i].Name = f.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = extractionError("cancelled", err)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = extractionError("cancelled", err)
				return nil
			}
			items, warnings, err := open(f).Items()
			results[i].Items = items
			results[i].Warnings = warnings
			results[i].Err = err
			return nil
		})
	}

	// Every task reports through results, so Wait never sees an error.
	_ = g.Wait()
	return results
}
