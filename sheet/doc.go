// Package sheet extracts purchase line items from spreadsheet grids.
//
// The first row of a grid is the header. Header cells are normalized and
// matched against synonym tables to find the material, unit and quantity
// columns; every later row becomes a [model.LineItem] when its material
// cell is not blank.
//
//	grid, err := sheet.ReadCSV(data)
//	if err != nil {
//		return err
//	}
//	items := sheet.NewExtractor(sheet.DefaultConfig()).Extract(grid)
//
// Grids come from XLSX workbooks ([ReadXLSX]), legacy BIFF .xls workbooks
// ([ReadXLS]) or delimited text ([ReadCSV]).
package sheet
