// Package xlsx reads Office Open XML workbooks into typed cell grids.
//
// A workbook is read from any [io.ReaderAt]:
//
//	r, err := xlsx.NewReader(bytes.NewReader(data), int64(len(data)))
//	if err != nil {
//		return err
//	}
//	sheet, err := r.SheetByName("Pedido")
//	if err != nil {
//		sheet, _ = r.Sheet(0)
//	}
//	for _, row := range sheet.Rows {
//		for _, c := range row {
//			fmt.Println(c.Type, c.Value)
//		}
//	}
//
// Shared strings (plain and rich text), inline strings, booleans, error
// values and numbers are decoded. Numbers keep their stored literal, which is
// already a canonical decimal.
package xlsx
