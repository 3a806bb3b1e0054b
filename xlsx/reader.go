package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Reader holds the decoded worksheets of an XLSX workbook.
type Reader struct {
	files         map[string]*zip.File
	workbook      *workbookXML
	sharedStrings []string
	sheetRels     map[string]string // RID -> target path
	sheets        []*Sheet
}

// NewReader reads an XLSX workbook of the given size from ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		files:     make(map[string]*zip.File, len(zr.File)),
		sheetRels: make(map[string]string),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse relationships first
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse workbook to get sheet list
	if err := r.parseWorkbook(); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	// Shared strings are optional
	if err := r.parseSharedStrings(); err != nil {
		return nil, fmt.Errorf("parsing shared strings: %w", err)
	}

	if err := r.parseWorksheets(); err != nil {
		return nil, fmt.Errorf("parsing worksheets: %w", err)
	}

	return r, nil
}

// validate checks that required XLSX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"xl/workbook.xml",
	}

	for _, name := range required {
		if _, ok := r.files[name]; !ok {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseRelationships parses the workbook relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil // Relationships are optional
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}

	for _, rel := range rels.Relationship {
		r.sheetRels[rel.ID] = rel.Target
	}

	return nil
}

// parseWorkbook parses the main workbook file.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}

	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseSharedStrings parses the shared strings table.
func (r *Reader) parseSharedStrings() error {
	if _, ok := r.files["xl/sharedStrings.xml"]; !ok {
		return nil
	}
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return err
	}

	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return err
	}

	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		r.sharedStrings[i] = si.text()
	}

	return nil
}

// sheetPath resolves a relationship target to an archive path.
func sheetPath(target string, index int) string {
	if target == "" {
		target = fmt.Sprintf("worksheets/sheet%d.xml", index+1)
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return path.Join("xl", target)
}

// parseWorksheets parses all worksheet files.
func (r *Reader) parseWorksheets() error {
	if r.workbook == nil {
		return fmt.Errorf("workbook not parsed")
	}

	r.sheets = make([]*Sheet, 0, len(r.workbook.Sheets.Sheet))

	for i, sheetRef := range r.workbook.Sheets.Sheet {
		data, err := r.getFileContent(sheetPath(r.sheetRels[sheetRef.RID], i))
		if err != nil {
			continue // Skip sheets we can't read
		}

		sheet, err := r.parseWorksheet(data, sheetRef.Name)
		if err != nil {
			continue // Skip sheets that fail to parse
		}

		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}

	return nil
}

// parseWorksheet parses a single worksheet. Rows and cells without a
// reference attribute follow the previous one.
func (r *Reader) parseWorksheet(data []byte, name string) (*Sheet, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{Name: name}
	maxRow, maxCol := -1, -1

	type placed struct {
		row, col int
		xml      cellXML
	}
	var cells []placed

	rowIdx := -1
	for _, row := range ws.SheetData.Rows {
		if row.R > 0 {
			rowIdx = row.R - 1
		} else {
			rowIdx++
		}
		colIdx := -1
		for _, c := range row.Cells {
			if col, _, err := ParseCellRef(c.R); err == nil {
				colIdx = col
			} else {
				colIdx++
			}
			cells = append(cells, placed{row: rowIdx, col: colIdx, xml: c})
			maxRow = max(maxRow, rowIdx)
			maxCol = max(maxCol, colIdx)
		}
	}

	sheet.Rows = make([][]Cell, maxRow+1)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, maxCol+1)
	}

	for _, p := range cells {
		r.decodeCell(&sheet.Rows[p.row][p.col], p.xml)
	}

	return sheet, nil
}

// decodeCell fills cell from its XML form.
func (r *Reader) decodeCell(cell *Cell, c cellXML) {
	switch c.T {
	case "s": // Shared string
		cell.Type = CellTypeString
		idx, err := strconv.Atoi(c.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			cell.Value = r.sharedStrings[idx]
		}
	case "b": // Boolean
		cell.Type = CellTypeBoolean
		if c.V == "1" {
			cell.Value = "TRUE"
		} else {
			cell.Value = "FALSE"
		}
	case "e": // Error
		cell.Type = CellTypeError
		cell.Value = c.V
	case "str": // Formula string result
		cell.Type = CellTypeString
		cell.Value = c.V
	case "inlineStr":
		cell.Type = CellTypeString
		if c.Is != nil {
			cell.Value = c.Is.text()
		}
	default: // Number or empty
		if c.V != "" {
			cell.Type = CellTypeNumber
			cell.Value = c.V
		} else if c.F != "" {
			cell.Type = CellTypeFormula
		}
	}
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the first sheet whose name matches name, ignoring
// case and surrounding space.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	name = strings.TrimSpace(name)
	for _, s := range r.sheets {
		if strings.EqualFold(strings.TrimSpace(s.Name), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}
