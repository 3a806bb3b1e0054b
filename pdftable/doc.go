// Package pdftable extracts purchase line items from the positioned text of
// PDF pages.
//
// Each page is clustered into lines, the line carrying the "material" header
// label is located, column bounds are inferred from the header block, and
// every data line below the header is read right to left: the trailing
// number is the quantity, a unit is peeled off what precedes it, and the rest
// is the material description. Short description lines that wrap onto the
// next row are stitched back on.
//
//	ext := pdftable.NewExtractor(pdftable.DefaultConfig())
//	items := ext.Extract(pages)
//
// Pages without a header contribute nothing; that is not an error.
package pdftable
