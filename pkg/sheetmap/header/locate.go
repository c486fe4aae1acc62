// Package header locates and rewrites worksheet header rows.
package header

import "github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"

// RowState describes what was found at a header row position.
type RowState int

const (
	// SheetMissing means the workbook has no sheet at the index.
	SheetMissing RowState = iota
	// RowMissing means the sheet has no row at the index.
	RowMissing
	// RowEmpty means the row exists but holds no cells.
	RowEmpty
	// RowUsable means the row exists and holds at least one cell.
	RowUsable
)

// String returns the state name for diagnostics.
func (s RowState) String() string {
	switch s {
	case SheetMissing:
		return "sheet missing"
	case RowMissing:
		return "row missing"
	case RowEmpty:
		return "row empty"
	case RowUsable:
		return "row usable"
	}
	return "unknown"
}

// Locate finds the header row at the given zero-based sheet and row
// indexes. The returned row is non-nil only for RowEmpty and
// RowUsable; only RowUsable rows carry column names for mapping.
func Locate(wb *models.Workbook, sheetIndex, rowIndex int) (*models.Row, RowState) {
	sheet, ok := wb.Sheet(sheetIndex)
	if !ok {
		return nil, SheetMissing
	}
	row, ok := sheet.Row(rowIndex)
	if !ok {
		return nil, RowMissing
	}
	if len(row.Cells) == 0 {
		return row, RowEmpty
	}
	return row, RowUsable
}
