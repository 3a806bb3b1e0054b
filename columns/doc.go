// Package columns infers the horizontal extent of each table column from a
// PDF header block.
//
// An [Inferrer] matches header cells against per-column label patterns,
// derives the anchors it could not find, and turns the anchors into
// half-open X intervals:
//
//	res := columns.NewInferrer(columns.DefaultConfig()).Infer(headerCells)
//	unit := res.Bounds[columns.Unidad]
//
// When too few labels are recognized the result falls back to a fixed set of
// bounds, so every [Result] covers all six keys.
package columns
