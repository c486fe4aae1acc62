// Package models defines the in-memory spreadsheet document model.
package models

// Format identifies the container format a workbook was loaded from.
type Format string

const (
	// FormatModern is the zip-based OOXML container (.xlsx, .xlsm).
	FormatModern Format = "modern"
	// FormatLegacy is the binary BIFF container (.xls).
	FormatLegacy Format = "legacy"
)

// Workbook represents a full in-memory spreadsheet document.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string
	// Format is the container format the workbook was loaded from.
	Format Format
	// Sheets contains the workbook's sheets in file order.
	Sheets []Sheet
}

// Sheet returns the sheet at the given zero-based index.
// The second result reports whether a sheet exists at that index.
func (w *Workbook) Sheet(index int) (*Sheet, bool) {
	if index < 0 || index >= len(w.Sheets) {
		return nil, false
	}
	return &w.Sheets[index], true
}
