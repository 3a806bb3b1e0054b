// Package fixture builds small in-memory documents for tests: PDFs with a
// positioned text layer and XLSX workbooks.
package fixture
