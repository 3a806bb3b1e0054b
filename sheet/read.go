package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/lineitems/xlsx"
)

// ReadXLSX returns one worksheet of an XLSX workbook: the first of the
// preferred names that exists and has content, else the first worksheet
// with any content, else the first worksheet. Names compare without regard
// to case.
func ReadXLSX(data []byte, preferred ...string) (Grid, error) {
	r, err := xlsx.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading xlsx: %w", err)
	}
	if r.SheetCount() == 0 {
		return nil, fmt.Errorf("reading xlsx: no worksheets found")
	}

	var chosen *xlsx.Sheet
	for _, name := range preferred {
		if s, err := r.SheetByName(name); err == nil && !s.IsBlank() {
			chosen = s
			break
		}
	}
	for i := 0; chosen == nil && i < r.SheetCount(); i++ {
		if s, _ := r.Sheet(i); !s.IsBlank() {
			chosen = s
		}
	}
	if chosen == nil {
		chosen, _ = r.Sheet(0)
	}

	g := make(Grid, len(chosen.Rows))
	for i, row := range chosen.Rows {
		g[i] = make([]Cell, len(row))
		for j, c := range row {
			g[i][j] = Cell{Text: c.Value, Numeric: c.Type == xlsx.CellTypeNumber}
		}
	}
	return g, nil
}

// ReadXLS is ReadXLSX for legacy BIFF workbooks. Cell values arrive
// formatted as text.
func ReadXLS(data []byte, preferred ...string) (Grid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("reading xls: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, fmt.Errorf("reading xls: no worksheets found")
	}

	var sheets []*xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if ws := wb.GetSheet(i); ws != nil {
			sheets = append(sheets, ws)
		}
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("reading xls: no worksheets found")
	}

	for _, name := range preferred {
		for _, ws := range sheets {
			if !sameName(ws.Name, name) {
				continue
			}
			if g := xlsGrid(ws); !g.isBlank() {
				return g, nil
			}
		}
	}
	for _, ws := range sheets {
		if g := xlsGrid(ws); !g.isBlank() {
			return g, nil
		}
	}
	return xlsGrid(sheets[0]), nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func xlsGrid(ws *xls.WorkSheet) Grid {
	g := make(Grid, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			g = append(g, nil)
			continue
		}
		cells := make([]Cell, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = Cell{Text: row.Col(j)}
		}
		g = append(g, cells)
	}
	return g
}

func (g Grid) isBlank() bool {
	for _, row := range g {
		for _, c := range row {
			if !c.IsBlank() {
				return false
			}
		}
	}
	return true
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses delimited text. The character set is sniffed so
// Windows-1252 exports decode correctly, a UTF-8 byte order mark is
// dropped, and the delimiter is whichever of comma, semicolon or tab occurs
// most often on the first line.
func ReadCSV(data []byte) (Grid, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	// The sniffer only looks at the first KiB, which is often a pure
	// ASCII header, so valid UTF-8 is checked over the whole input first.
	if utf8.Valid(data) {
		return readCSV(data)
	}
	if enc, name, _ := charset.DetermineEncoding(data, "text/csv"); name != "utf-8" {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		data = decoded
	}
	return readCSV(data)
}

func readCSV(data []byte) (Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = SniffDelimiter(data)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return StringGrid(records), nil
}

// SniffDelimiter picks the delimiter of the first line of data, counting
// only separators outside double quotes. Ties and lines without any
// separator give a comma.
func SniffDelimiter(data []byte) rune {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}

	counts := map[byte]int{}
	inQuotes := false
	for _, c := range data {
		switch c {
		case '"':
			inQuotes = !inQuotes
		case ',', ';', '\t':
			if !inQuotes {
				counts[c]++
			}
		}
	}

	best := byte(',')
	for _, c := range []byte{';', '\t'} {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return rune(best)
}
