package rowbind

import (
	"strings"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/parser"
)

// Maps opens the workbook at path and returns one map per data row of
// the sheet at sheetIndex, keyed by the header cell text at
// headerRow. Columns with an empty header are dropped. An absent
// sheet or header row yields an empty result.
func Maps(path string, sheetIndex, headerRow int, charset string) ([]map[string]string, error) {
	wb, err := parser.Open(path, charset)
	if err != nil {
		return nil, err
	}
	return SheetMaps(wb, sheetIndex, headerRow), nil
}

// SheetMaps returns map records from an in-memory workbook. See Maps.
func SheetMaps(wb *models.Workbook, sheetIndex, headerRow int) []map[string]string {
	sheet, ok := wb.Sheet(sheetIndex)
	if !ok {
		return nil
	}
	head, ok := sheet.Row(headerRow)
	if !ok || len(head.Cells) == 0 {
		return nil
	}

	// First column wins on duplicate header names, same as the
	// struct binder.
	type column struct {
		col  int
		name string
	}
	var columns []column
	seen := make(map[string]bool, len(head.Cells))
	for i, h := range head.Strings() {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, column{col: i, name: h})
	}

	var records []map[string]string
	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		cells := sheet.Rows[r].Strings()
		if isEmpty(cells) {
			continue
		}
		rec := make(map[string]string, len(columns))
		for _, c := range columns {
			if c.col < len(cells) {
				rec[c.name] = cells[c.col]
			} else {
				rec[c.name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}
