package fixture

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Sheet is a worksheet for XLSX. Row values may be string (written as a
// shared string), int or float64 (written as numbers), bool, or nil for an
// empty cell.
type Sheet struct {
	Name string
	Rows [][]any
}

// XLSX writes a workbook holding the given sheets in order.
func XLSX(sheets ...Sheet) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`)

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`)

	var rels, book strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rIdSST" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>`)
	book.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>`)

	var shared []string
	index := make(map[string]int)

	for i, sh := range sheets {
		n := i + 1
		fmt.Fprintf(&rels, "\n  <Relationship Id=\"rId%d\" Type=\"http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet\" Target=\"worksheets/sheet%d.xml\"/>", n, n)
		fmt.Fprintf(&book, "\n  <sheet name=\"%s\" sheetId=\"%d\" r:id=\"rId%d\"/>", xmlEscape(sh.Name), n, n)

		var ws strings.Builder
		ws.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`)
		for r, row := range sh.Rows {
			fmt.Fprintf(&ws, `<row r="%d">`, r+1)
			for c, v := range row {
				ref := colName(c) + strconv.Itoa(r+1)
				switch v := v.(type) {
				case nil:
				case string:
					idx, ok := index[v]
					if !ok {
						idx = len(shared)
						index[v] = idx
						shared = append(shared, v)
					}
					fmt.Fprintf(&ws, `<c r="%s" t="s"><v>%d</v></c>`, ref, idx)
				case int:
					fmt.Fprintf(&ws, `<c r="%s"><v>%d</v></c>`, ref, v)
				case float64:
					fmt.Fprintf(&ws, `<c r="%s"><v>%s</v></c>`, ref, strconv.FormatFloat(v, 'f', -1, 64))
				case bool:
					b := 0
					if v {
						b = 1
					}
					fmt.Fprintf(&ws, `<c r="%s" t="b"><v>%d</v></c>`, ref, b)
				default:
					panic(fmt.Sprintf("fixture: unsupported cell value %T", v))
				}
			}
			ws.WriteString(`</row>`)
		}
		ws.WriteString(`</sheetData></worksheet>`)
		write(fmt.Sprintf("xl/worksheets/sheet%d.xml", n), ws.String())
	}

	rels.WriteString("\n</Relationships>")
	book.WriteString("\n</sheets>\n</workbook>")
	write("xl/_rels/workbook.xml.rels", rels.String())
	write("xl/workbook.xml", book.String())

	var sst strings.Builder
	fmt.Fprintf(&sst, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(shared), len(shared))
	for _, s := range shared {
		fmt.Fprintf(&sst, `<si><t xml:space="preserve">%s</t></si>`, xmlEscape(s))
	}
	sst.WriteString(`</sst>`)
	write("xl/sharedStrings.xml", sst.String())

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func colName(i int) string {
	name := ""
	for i++; i > 0; i /= 26 {
		i--
		name = string(rune('A'+i%26)) + name
	}
	return name
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
