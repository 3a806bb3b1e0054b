package reader

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Quality summarizes the structure of a PDF as seen by pdfcpu.
type Quality struct {
	Pages int

	// ImagePages lists the 1-based pages that draw at least one image.
	ImagePages []int
}

// HasImages reports whether any page draws an image.
func (q *Quality) HasImages() bool {
	return q != nil && len(q.ImagePages) > 0
}

// NeedsOCR reports whether a document whose text layer yielded chars
// characters is most likely a scan: it has images but no text.
func (q *Quality) NeedsOCR(chars int) bool {
	return chars == 0 && q.HasImages()
}

// Probe validates the document structure and collects the page count and
// the pages carrying image XObjects.
func Probe(data []byte) (q *Quality, err error) {
	defer func() {
		if p := recover(); p != nil {
			q = nil
			err = fmt.Errorf("pdfcpu: %v", p)
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	q = &Quality{Pages: ctx.PageCount}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
			q.ImagePages = append(q.ImagePages, pageNr)
		}
	}
	return q, nil
}
