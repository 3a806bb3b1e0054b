package fixture

import (
	"fmt"
	"strconv"
	"strings"
)

// Text is a string drawn at (X, Y) on a PDF page.
type Text struct {
	X, Y float64
	S    string
	Size float64
}

// Page is the content of one PDF page. An Image page also draws a 1x1
// image XObject.
type Page struct {
	Texts []Text
	Image bool
}

// PDF writes a PDF with one page per entry. Text uses a Helvetica font
// with a /Widths table and WinAnsi encoding, so parsers report glyph
// widths; every glyph is 500/1000 em wide. Each Text is a separate show
// operation positioned with Tm.
func PDF(pages ...Page) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 pages, 3 font, then per page: page, contents, [image].
	var offsets []int
	obj := func(body string) int {
		offsets = append(offsets, b.Len())
		n := len(offsets)
		b.WriteString(strconv.Itoa(n))
		b.WriteString(" 0 obj\n")
		b.WriteString(body)
		b.WriteString("\nendobj\n")
		return n
	}

	// Object numbers are fixed up front so the page tree can list kids.
	kids := make([]string, len(pages))
	next := 4
	for i, p := range pages {
		kids[i] = strconv.Itoa(next) + " 0 R"
		next += 2
		if p.Image {
			next++
		}
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 255 /Widths [" +
		strings.TrimSpace(strings.Repeat("500 ", 224)) + "] >>")

	for _, p := range pages {
		pageNum := len(offsets) + 1
		contentNum := pageNum + 1

		var content strings.Builder
		for _, t := range p.Texts {
			size := t.Size
			if size == 0 {
				size = 10
			}
			fmt.Fprintf(&content, "BT\n/F1 %s Tf\n1 0 0 1 %s %s Tm\n(%s) Tj\nET\n",
				num(size), num(t.X), num(t.Y), escape(t.S))
		}

		resources := "/Font << /F1 3 0 R >>"
		if p.Image {
			resources += fmt.Sprintf(" /XObject << /Im1 %d 0 R >>", contentNum+1)
			content.WriteString("q 100 0 0 100 72 692 cm /Im1 Do Q\n")
		}

		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << %s >> >>", contentNum, resources))

		stream := content.String()
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

		if p.Image {
			img := "\xff\x00\x00"
			obj(fmt.Sprintf("<< /Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceRGB /BitsPerComponent 8 /Length %d >>\nstream\n%s\nendstream", len(img), img))
		}
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return []byte(b.String())
}

// escape writes s as the body of a PDF literal string in WinAnsi bytes.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xff:
			// Latin-1 letters share their WinAnsi code.
			fmt.Fprintf(&b, "\\%03o", r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
