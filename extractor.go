package lineitems

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/lineitems/format"
	"github.com/tsawler/lineitems/heuristics"
	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/model"
	"github.com/tsawler/lineitems/pdftable"
	"github.com/tsawler/lineitems/reader"
	"github.com/tsawler/lineitems/sheet"
)

// PageLines holds the clustered lines of one PDF page.
type PageLines struct {
	Page  int // 1-based
	Lines []layout.Line
}

// Extractor provides a fluent interface for reading line items from
// spreadsheets and PDFs. Each configuration method returns a new Extractor
// instance, so a configured Extractor can be shared and reused.
type Extractor struct {
	// Source. path is set by Open and read on demand.
	path   string
	file   File
	loaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:    e.path,
		file:    e.file,
		loaded:  e.loaded,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which PDF pages to read (1-indexed). Multiple calls are
// cumulative. Spreadsheets ignore page selection.
//
// Example:
//
//	items, _, err := lineitems.Open("requisicion.pdf").Pages(1, 3).Items()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of PDF pages to read (1-indexed, inclusive).
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = extractionError("page selection", fmt.Errorf("invalid page range %d-%d", start, end))
		return newExt
	}
	for p := start; p <= end; p++ {
		newExt.options.pages = append(newExt.options.pages, p)
	}
	return newExt
}

// WithHeuristics replaces the default extraction heuristics. An invalid
// configuration makes every terminal operation fail.
func (e *Extractor) WithHeuristics(cfg heuristics.Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil {
		newExt.err = extractionError("invalid heuristics", err)
		return newExt
	}
	newExt.options.heuristics = &cfg
	return newExt
}

// WithLogger sets the logger for debug and warning records. The default is
// slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	if logger != nil {
		newExt.options.logger = logger
	}
	return newExt
}

// MaxFileSize sets the largest accepted payload in bytes. Zero or less
// removes the limit.
func (e *Extractor) MaxFileSize(n int64) *Extractor {
	newExt := e.clone()
	newExt.options.maxFileSize = n
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Format returns the format the file would be read as, or format.Unknown.
func (e *Extractor) Format() format.Format {
	f, err := e.load()
	if err != nil {
		return format.Resolve(e.file.Name, e.file.MIMEType, nil)
	}
	return format.Resolve(f.Name, f.MIMEType, f.Data)
}

// Items reads every line item of the file, in document order. Warnings
// report non-fatal issues where extraction succeeded but results may be
// incomplete.
//
// The error is always an *UnsupportedFormatError or an *ExtractionError.
// No items accompany an error.
//
// Example:
//
//	items, warnings, err := lineitems.Open("requisicion.pdf").Items()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", lineitems.FormatWarnings(warnings))
//	}
func (e *Extractor) Items() (items []model.LineItem, warnings []Warning, err error) {
	defer func() {
		if p := recover(); p != nil {
			items, warnings = nil, nil
			err = extractionError("parser panic", fmt.Errorf("%v", p))
		}
	}()

	items, warnings, err = e.items()
	if err != nil {
		return nil, nil, asBoundaryError("read file", err)
	}
	return items, warnings, nil
}

// PageCount returns the number of PDF pages. A spreadsheet counts as a
// single page.
func (e *Extractor) PageCount() (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			n, err = 0, extractionError("parser panic", fmt.Errorf("%v", p))
		}
	}()

	f, kind, err := e.prepare()
	if err != nil {
		return 0, err
	}
	if kind.IsSpreadsheet() {
		return 1, nil
	}
	r, err := reader.Open(f.Data)
	if err != nil {
		return 0, extractionError("open PDF", err)
	}
	return r.PageCount(), nil
}

// Lines returns the clustered lines of the selected PDF pages. It shows
// what the table reader sees and is meant for tuning heuristics.
//
// Example:
//
//	pages, err := lineitems.Open("requisicion.pdf").Lines()
//	for _, p := range pages {
//	    for _, line := range p.Lines {
//	        fmt.Printf("%d %6.1f %s\n", p.Page, line.Y, line.Text())
//	    }
//	}
func (e *Extractor) Lines() (pages []PageLines, err error) {
	defer func() {
		if p := recover(); p != nil {
			pages, err = nil, extractionError("parser panic", fmt.Errorf("%v", p))
		}
	}()

	f, kind, err := e.prepare()
	if err != nil {
		return nil, err
	}
	if kind != format.PDF {
		return nil, extractionError("lines", fmt.Errorf("%s files have no page layout", kind))
	}

	cfg := e.options.config()
	r, err := reader.OpenWithConfig(f.Data, cfg.MergeConfig())
	if err != nil {
		return nil, extractionError("open PDF", err)
	}
	pageIndices, err := e.resolvePages(r.PageCount())
	if err != nil {
		return nil, err
	}

	detector := layout.NewLineDetectorWithConfig(layout.LineConfig{Tolerance: cfg.LineTolerance})
	pages = make([]PageLines, 0, len(pageIndices))
	for _, idx := range pageIndices {
		frags, err := r.Fragments(idx)
		if err != nil {
			return nil, extractionError(fmt.Sprintf("page %d", idx+1), err)
		}
		pages = append(pages, PageLines{Page: idx + 1, Lines: detector.Detect(frags)})
	}
	return pages, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// load returns the payload, reading it from disk for Open.
func (e *Extractor) load() (File, error) {
	limit := e.options.maxFileSize
	if e.loaded {
		if limit > 0 && int64(len(e.file.Data)) > limit {
			return File{}, tooLarge(int64(len(e.file.Data)), limit)
		}
		return e.file, nil
	}
	if e.path == "" {
		return File{}, extractionError("open file", errors.New("no filename specified"))
	}

	info, err := os.Stat(e.path)
	if err != nil {
		return File{}, extractionError("open file", err)
	}
	if limit > 0 && info.Size() > limit {
		return File{}, tooLarge(info.Size(), limit)
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return File{}, extractionError("open file", err)
	}

	f := e.file
	f.Data = data
	return f, nil
}

func tooLarge(size, limit int64) error {
	return extractionError("file too large", fmt.Errorf("%d bytes exceeds the %d byte limit", size, limit))
}

// prepare loads the payload and resolves its format.
func (e *Extractor) prepare() (File, format.Format, error) {
	if e.err != nil {
		return File{}, format.Unknown, e.err
	}
	f, err := e.load()
	if err != nil {
		return File{}, format.Unknown, err
	}
	kind := format.Resolve(f.Name, f.MIMEType, f.Data)
	if kind == format.Unknown {
		return File{}, format.Unknown, &UnsupportedFormatError{Name: f.Name, MIMEType: f.MIMEType}
	}
	return f, kind, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return slog.Default()
}

func (e *Extractor) items() ([]model.LineItem, []Warning, error) {
	f, kind, err := e.prepare()
	if err != nil {
		return nil, nil, err
	}

	log := e.logger().With("file", f.Name)
	log.Debug("format resolved", "format", kind.String(), "mime", f.MIMEType, "bytes", len(f.Data))

	cfg := e.options.config()
	if kind.IsSpreadsheet() {
		grid, err := readGrid(kind, f.Data, cfg.Worksheets)
		if err != nil {
			return nil, nil, extractionError("read "+kind.String(), err)
		}
		items := sheet.NewExtractor(cfg.SheetConfig()).Extract(grid)
		log.Debug("spreadsheet extracted", "rows", len(grid), "items", len(items))
		return items, nil, nil
	}
	return e.extractPDF(f, cfg, log)
}

func readGrid(kind format.Format, data []byte, worksheets []string) (sheet.Grid, error) {
	switch kind {
	case format.XLSX:
		return sheet.ReadXLSX(data, worksheets...)
	case format.XLS:
		return sheet.ReadXLS(data, worksheets...)
	case format.CSV:
		return sheet.ReadCSV(data)
	}
	return nil, fmt.Errorf("%s is not a spreadsheet format", kind)
}

func (e *Extractor) extractPDF(f File, cfg heuristics.Config, log *slog.Logger) ([]model.LineItem, []Warning, error) {
	pdfCfg, err := cfg.PDFConfig()
	if err != nil {
		return nil, nil, extractionError("invalid heuristics", err)
	}

	r, err := reader.OpenWithConfig(f.Data, cfg.MergeConfig())
	if err != nil {
		return nil, nil, extractionError("open PDF", err)
	}
	log.Debug("pdf opened", "backend", r.Backend(), "version", r.Version().String(), "pages", r.PageCount())

	pageIndices, err := e.resolvePages(r.PageCount())
	if err != nil {
		return nil, nil, err
	}

	ext := pdftable.NewExtractor(pdfCfg)
	items := make([]model.LineItem, 0)
	var warnings []Warning
	chars := 0

	for _, idx := range pageIndices {
		page := idx + 1
		frags, err := r.Fragments(idx)
		if err != nil {
			return nil, nil, extractionError(fmt.Sprintf("page %d", page), err)
		}
		for _, fr := range frags {
			chars += utf8.RuneCountInString(strings.TrimSpace(fr.Text))
		}

		res := ext.ExtractPage(frags)
		switch {
		case len(frags) == 0:
		case !res.HeaderFound:
			warnings = append(warnings, Warning{
				Type:    WarningNoHeader,
				Page:    page,
				Message: "no material header found; page skipped",
			})
		case res.FallbackBounds:
			warnings = append(warnings, Warning{
				Type:    WarningFallbackBounds,
				Page:    page,
				Message: "column labels not recognized; using default column positions",
			})
		}
		log.Debug("page extracted",
			"page", page,
			"header", res.HeaderFound,
			"fallback_bounds", res.FallbackBounds,
			"items", len(res.Items))

		items = append(items, res.Items...)
	}

	if chars == 0 {
		q, err := reader.Probe(f.Data)
		switch {
		case err != nil:
			log.Warn("pdf probe failed", "error", err)
			warnings = append(warnings, Warning{
				Type:    WarningProbeFailed,
				Message: fmt.Sprintf("structure check failed: %v", err),
			})
		case q.NeedsOCR(chars):
			log.Warn("pdf has no text layer", "image_pages", q.ImagePages)
			warnings = append(warnings, Warning{
				Type:    WarningNoTextLayer,
				Message: fmt.Sprintf("no extractable text; %d of %d pages are images and need OCR", len(q.ImagePages), q.Pages),
			})
		}
	}

	return items, warnings, nil
}

// resolvePages converts 1-indexed page numbers to 0-indexed and validates them.
// If no pages specified, returns all pages.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	if len(e.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, extractionError("page selection", fmt.Errorf("page %d out of range (1-%d)", p, pageCount))
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}
