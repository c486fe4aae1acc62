// Package parser loads and persists workbooks through the underlying
// spreadsheet libraries.
package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
)

// DefaultCharset is the codepage used to decode legacy workbooks when
// the caller does not supply one.
const DefaultCharset = "utf-8"

// Open loads the workbook at path fully into memory. Files with a
// modern container extension are parsed with excelize; anything else
// is parsed as the legacy binary container using the given charset.
// No content sniffing is performed. Open is all-or-nothing: on error
// no workbook is returned and the file is left untouched.
func Open(path, charset string) (*models.Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if IsModern(path) {
		return openModern(path)
	}
	return openLegacy(path, charset)
}

// IsModern reports whether the path's extension denotes the modern
// zip-based container format.
func IsModern(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func openModern(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	wb := &models.Workbook{
		Name:   filepath.Base(path),
		Format: models.FormatModern,
	}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		sheet := models.Sheet{Name: sheetName}
		for _, row := range rows {
			r := models.Row{}
			for _, v := range row {
				r.Cells = append(r.Cells, models.Cell{Value: v})
			}
			sheet.Rows = append(sheet.Rows, r)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func openLegacy(path, charset string) (*models.Workbook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if charset == "" {
		charset = DefaultCharset
	}
	book, err := xls.OpenReader(bytes.NewReader(b), charset)
	if err != nil && charset != DefaultCharset {
		book, err = xls.OpenReader(bytes.NewReader(b), DefaultCharset)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	wb := &models.Workbook{
		Name:   filepath.Base(path),
		Format: models.FormatLegacy,
	}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := models.Sheet{Name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			mrow := models.Row{}
			if row != nil {
				for c := 0; c < row.LastCol(); c++ {
					mrow.Cells = append(mrow.Cells, models.Cell{Value: row.Col(c)})
				}
			}
			sheet.Rows = append(sheet.Rows, mrow)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
