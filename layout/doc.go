// Package layout groups positioned text fragments into horizontal lines.
//
// Tabular PDFs place each cell of a row on roughly the same baseline, but
// rarely on exactly the same one. A [LineDetector] clusters fragments whose
// Y coordinates lie within a tolerance of a line's anchor and returns the
// lines top to bottom with their cells left to right:
//
//	lines := layout.NewLineDetector().Detect(fragments)
//	for _, line := range lines {
//		fmt.Println(line.Y, line.Text())
//	}
package layout
