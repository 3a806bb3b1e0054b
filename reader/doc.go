// Package reader opens PDF documents and exposes their text layer as
// positioned fragments.
//
// Text is read with github.com/ledongthuc/pdf. Files that parser rejects
// are retried with github.com/dslipak/pdf, which accepts a slightly
// different set of malformed inputs. Both parsers report one glyph per
// text element; [Reader.Fragments] merges those glyphs into word and phrase
// runs with [text.MergeGlyphs].
//
//	r, err := reader.Open(data)
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < r.PageCount(); i++ {
//	    frags, err := r.Fragments(i)
//	    ...
//	}
//
// [Probe] inspects the document structure with github.com/pdfcpu/pdfcpu and
// reports whether the file is likely a scan without a text layer.
package reader
