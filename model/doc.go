// Package model defines the records produced by line-item extraction.
//
// A [LineItem] is the only value that crosses the extractor's boundary: the
// caller receives an ordered slice of them and is expected to let a person
// review and edit the rows before they populate a requisition.
//
//	item, ok := model.NewLineItem("  Cemento   gris ", "SACOS", "120")
//	// item.Material == "Cemento gris", ok == true
//
// Rows whose material is empty after whitespace normalization are never
// emitted; [NewLineItem] reports them with ok == false. A missing unit is
// represented as the empty string.
package model
