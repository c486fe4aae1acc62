package rowbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
)

func TestMapsReadsRecords(t *testing.T) {
	path := writeEmployees(t)

	records, err := Maps(path, 0, 0, "")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["UserName"])
	assert.Equal(t, "research", records[0]["Department"])
	assert.Equal(t, "bob", records[1]["UserName"])
	assert.Equal(t, "", records[1]["Manager"], "short rows fill missing columns with empty strings")
}

func TestSheetMapsHeaderAbsent(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{{Name: "Empty"}}}

	assert.Nil(t, SheetMaps(wb, 0, 0))
	assert.Nil(t, SheetMaps(wb, 7, 0))
}

func TestSheetMapsSkipsEmptyHeaderColumns(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{{
		Rows: []models.Row{
			{Cells: []models.Cell{{Value: "Name"}, {Value: ""}, {Value: "Dept"}}},
			{Cells: []models.Cell{{Value: "alice"}, {Value: "ignored"}, {Value: "research"}}},
		},
	}}}

	records := SheetMaps(wb, 0, 0)

	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{"Name": "alice", "Dept": "research"}, records[0])
}

func TestSheetMapsDuplicateHeaderFirstColumnWins(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{{
		Rows: []models.Row{
			{Cells: []models.Cell{{Value: "Name"}, {Value: "Name"}}},
			{Cells: []models.Cell{{Value: "alice"}, {Value: "shadow"}}},
		},
	}}}

	records := SheetMaps(wb, 0, 0)

	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0]["Name"], "same rule as the struct binder")
}

func TestSheetMapsHeaderRowBelowTop(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{{
		Rows: []models.Row{
			{Cells: []models.Cell{{Value: "title row"}}},
			{Cells: []models.Cell{{Value: "Name"}}},
			{Cells: []models.Cell{{Value: "alice"}}},
		},
	}}}

	records := SheetMaps(wb, 0, 1)

	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0]["Name"])
}
