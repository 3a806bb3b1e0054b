package reader

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	dpdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/lineitems/text"
)

// Backend names reported by [Reader.Backend].
const (
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
)

// ErrNotPDF is returned when the data does not start with a PDF header.
var ErrNotPDF = errors.New("not a PDF document")

// Version is the PDF version declared in the file header.
type Version struct {
	Major int
	Minor int
}

// String returns the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

var headerRe = regexp.MustCompile(`^%PDF-(\d+)\.(\d+)`)

// ParseVersion reads the %PDF-x.y header at the start of data.
func ParseVersion(data []byte) (Version, error) {
	if len(data) > 16 {
		data = data[:16]
	}
	m := headerRe.FindSubmatch(data)
	if m == nil {
		return Version{}, ErrNotPDF
	}
	major, _ := strconv.Atoi(string(m[1]))
	minor, _ := strconv.Atoi(string(m[2]))
	return Version{Major: major, Minor: minor}, nil
}

// backend is the part of a PDF parser the reader needs. glyphs takes a
// 1-based page number.
type backend interface {
	numPage() int
	glyphs(page int) []text.Fragment
}

// Reader gives page-level access to the text layer of a PDF.
type Reader struct {
	be      backend
	name    string
	version Version
	merge   text.MergeConfig
}

// Open parses data with the primary parser and falls back to the
// secondary one when the primary rejects it.
func Open(data []byte) (*Reader, error) {
	return OpenWithConfig(data, text.DefaultMergeConfig())
}

// OpenWithConfig is like [Open] but merges glyphs with cfg.
func OpenWithConfig(data []byte, cfg text.MergeConfig) (*Reader, error) {
	version, err := ParseVersion(data)
	if err != nil {
		return nil, err
	}

	r := &Reader{version: version, merge: cfg}

	be, primaryErr := openLedongthuc(data)
	if primaryErr == nil {
		r.be, r.name = be, BackendLedongthuc
		return r, nil
	}

	be, fallbackErr := openDslipak(data)
	if fallbackErr == nil {
		r.be, r.name = be, BackendDslipak
		return r, nil
	}

	return nil, fmt.Errorf("failed to open PDF: %w", errors.Join(primaryErr, fallbackErr))
}

// Backend returns the name of the parser that opened the document.
func (r *Reader) Backend() string {
	return r.name
}

// Version returns the version from the file header.
func (r *Reader) Version() Version {
	return r.version
}

// PageCount returns the number of pages in the page tree.
func (r *Reader) PageCount() int {
	return r.be.numPage()
}

// Fragments returns the merged text runs of the page at index (0-based),
// top to bottom and left to right. A page without content yields no
// fragments.
func (r *Reader) Fragments(index int) (frags []text.Fragment, err error) {
	if index < 0 || index >= r.PageCount() {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, r.PageCount())
	}

	defer func() {
		if p := recover(); p != nil {
			frags = nil
			err = fmt.Errorf("failed to read page %d: %v", index+1, p)
		}
	}()

	return text.MergeGlyphs(r.be.glyphs(index+1), r.merge), nil
}

// Text returns the text of the page at index with one line per baseline.
func (r *Reader) Text(index int) (string, error) {
	frags, err := r.Fragments(index)
	if err != nil {
		return "", err
	}
	var b bytes.Buffer
	for i, f := range frags {
		if i > 0 {
			if math.Abs(frags[i-1].Y-f.Y) <= r.merge.BaselineTolerance {
				b.WriteByte(' ')
			} else {
				b.WriteByte('\n')
			}
		}
		b.WriteString(f.Text)
	}
	return b.String(), nil
}

// Both parsers panic on some malformed input instead of returning errors.
func guard(name string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: %v", name, p)
		}
	}()
	return fn()
}

type ledongthucBackend struct {
	r *lpdf.Reader
}

func openLedongthuc(data []byte) (backend, error) {
	var be *ledongthucBackend
	err := guard(BackendLedongthuc, func() error {
		r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return fmt.Errorf("%s: %w", BackendLedongthuc, err)
		}
		// Touch the page tree so a broken catalog fails here.
		r.NumPage()
		be = &ledongthucBackend{r: r}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return be, nil
}

func (b *ledongthucBackend) numPage() int {
	return b.r.NumPage()
}

func (b *ledongthucBackend) glyphs(page int) []text.Fragment {
	p := b.r.Page(page)
	if p.V.IsNull() {
		return nil
	}
	content := p.Content()
	out := make([]text.Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		out = append(out, text.Fragment{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
			FontName: t.Font,
		})
	}
	return out
}

type dslipakBackend struct {
	r *dpdf.Reader
}

func openDslipak(data []byte) (backend, error) {
	var be *dslipakBackend
	err := guard(BackendDslipak, func() error {
		r, err := dpdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return fmt.Errorf("%s: %w", BackendDslipak, err)
		}
		r.NumPage()
		be = &dslipakBackend{r: r}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return be, nil
}

func (b *dslipakBackend) numPage() int {
	return b.r.NumPage()
}

func (b *dslipakBackend) glyphs(page int) []text.Fragment {
	p := b.r.Page(page)
	if p.V.IsNull() {
		return nil
	}
	content := p.Content()
	out := make([]text.Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		out = append(out, text.Fragment{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
			FontName: t.Font,
		})
	}
	return out
}
