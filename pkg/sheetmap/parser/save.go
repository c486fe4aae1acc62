package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
)

// Save serializes wb to path, creating or truncating the file. The
// output is always the modern container format: no Go library writes
// the legacy binary container, so a workbook loaded from a legacy
// file is transcoded on save. On error the in-memory workbook is
// untouched and remains usable for a retry.
func Save(path string, wb *models.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if def := f.GetSheetName(0); def != name {
				if err := f.SetSheetName(def, name); err != nil {
					return fmt.Errorf("rename sheet %q: %w", name, err)
				}
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %q: %w", name, err)
			}
		}
		for r, row := range sheet.Rows {
			for c, cell := range row.Cells {
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("cell coordinates (%d,%d): %w", c+1, r+1, err)
				}
				if err := f.SetCellValue(name, axis, cell.Value); err != nil {
					return fmt.Errorf("set cell %s!%s: %w", name, axis, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
