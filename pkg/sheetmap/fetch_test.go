package sheetmap

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/header"
	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/parser"
)

type person struct {
	Name string `sheetmap:"UserName"`
	Dept string `sheetmap:"Department"`
}

var renameMap = map[string]string{
	"User name in Dept": "UserName",
	"Department Name":   "Department",
}

// writeDeptSheet builds a workbook whose headers need renaming before
// they can bind to the person struct.
func writeDeptSheet(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells := map[string]string{
		"A1": "User name in Dept", "B1": "Department Name",
		"A2": "alice", "B2": "research",
		"A3": "bob", "B3": "ops",
	}
	for axis, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, axis, v))
	}

	path := filepath.Join(t.TempDir(), "depts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFetchRenamesAndBinds(t *testing.T) {
	path := writeDeptSheet(t)
	opts := DefaultOptions()
	opts.Replacements = renameMap

	var got []person
	require.NoError(t, New(path, opts).Fetch(&got))

	require.Len(t, got, 2)
	assert.Equal(t, person{Name: "alice", Dept: "research"}, got[0])
	assert.Equal(t, person{Name: "bob", Dept: "ops"}, got[1])

	// The rewritten headers must be persisted to the source path.
	wb, err := parser.Open(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"UserName", "Department"}, wb.Sheets[0].Rows[0].Strings())
}

func TestFetchWithOverridesOptions(t *testing.T) {
	path := writeDeptSheet(t)

	var got []person
	require.NoError(t, New(path, DefaultOptions()).FetchWith(renameMap, &got))

	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Name)
}

func TestFetchOneShot(t *testing.T) {
	path := writeDeptSheet(t)
	opts := DefaultOptions()
	opts.Replacements = renameMap

	var got []person
	require.NoError(t, Fetch(path, &got, opts))
	assert.Len(t, got, 2)
}

func TestFetchMaps(t *testing.T) {
	path := writeDeptSheet(t)
	opts := DefaultOptions()
	opts.Replacements = renameMap

	records, err := New(path, opts).FetchMaps()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["UserName"])
	assert.Equal(t, "ops", records[1]["Department"])
}

func TestFetchNonexistentPath(t *testing.T) {
	var got []person
	err := Fetch(filepath.Join(t.TempDir(), "missing.xlsx"), &got, DefaultOptions())

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Empty(t, got)
}

func TestFetchAbsentHeaderYieldsEmptyAndNoWrite(t *testing.T) {
	// A workbook with one sheet and no rows at all.
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []person
	require.NoError(t, Fetch(path, &got, DefaultOptions()))
	assert.Empty(t, got)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "short-circuit must not rewrite the file")
}

func TestFetchStrictHeader(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	opts := DefaultOptions()
	opts.StrictHeader = true

	var got []person
	err := Fetch(path, &got, opts)

	var headerErr *HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, header.RowMissing, headerErr.State)
	assert.Equal(t, 0, headerErr.SheetIndex)
}

func TestFetchStrictHeaderSheetOutOfRange(t *testing.T) {
	path := writeDeptSheet(t)

	opts := DefaultOptions()
	opts.SheetIndex = 4
	opts.StrictHeader = true

	var got []person
	err := Fetch(path, &got, opts)

	var headerErr *HeaderError
	require.ErrorAs(t, err, &headerErr)
	assert.Equal(t, header.SheetMissing, headerErr.State)
}

func TestFetchNoReplacementsStillRewrites(t *testing.T) {
	path := writeDeptSheet(t)

	// Backdate the file so a rewrite is observable through its mtime.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	records, err := New(path, DefaultOptions()).FetchMaps()
	require.NoError(t, err)
	require.Len(t, records, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().After(past.Add(time.Minute)),
		"default behavior round-trips the file through disk")
}

func TestFetchSkipUnchangedRewrite(t *testing.T) {
	path := writeDeptSheet(t)

	opts := DefaultOptions()
	opts.SkipUnchangedRewrite = true

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := New(path, opts).FetchMaps()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["User name in Dept"], "original headers still key the records")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "skip mode must leave the source untouched")
}

func TestFetchBindError(t *testing.T) {
	path := writeDeptSheet(t)

	type badAge struct {
		Name string `sheetmap:"UserName"`
		Age  int    `sheetmap:"Department"` // text column into an int field
	}

	opts := DefaultOptions()
	opts.Replacements = renameMap

	var got []badAge
	err := Fetch(path, &got, opts)

	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
}

func TestFetchLegacySourceRewritesAsModern(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("parser", "testdata", "employees.xls"))
	require.NoError(t, err)
	dir := t.TempDir()
	path := filepath.Join(dir, "employees.xls")
	require.NoError(t, os.WriteFile(path, src, 0644))

	opts := DefaultOptions()
	opts.Replacements = map[string]string{"Department": "Dept"}

	type legacyPerson struct {
		Name string `sheetmap:"UserName"`
		Dept string `sheetmap:"Dept"`
	}
	var got []legacyPerson
	require.NoError(t, Fetch(path, &got, opts))

	require.Len(t, got, 2, "the row gap in the fixture is skipped")
	assert.Equal(t, legacyPerson{Name: "alice", Dept: "research"}, got[0])
	assert.Equal(t, legacyPerson{Name: "bob", Dept: "ops"}, got[1])

	// The rewritten copy lands next to the source with the modern
	// extension; the legacy source itself stays untouched.
	rewritten := filepath.Join(dir, "employees.xlsx")
	wb, err := parser.Open(rewritten, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"UserName", "Dept"}, wb.Sheets[0].Rows[0].Strings())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, after)
}

func TestRewritePathLegacySwapsExtension(t *testing.T) {
	m := New("/tmp/data.xls", DefaultOptions())
	assert.Equal(t, "/tmp/data.xlsx", m.rewritePath())

	m = New("/tmp/data.xlsx", DefaultOptions())
	assert.Equal(t, "/tmp/data.xlsx", m.rewritePath())
}

func TestFetchLogsThroughInjectedLogger(t *testing.T) {
	path := writeDeptSheet(t)

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Replacements = renameMap
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var got []person
	require.NoError(t, Fetch(path, &got, opts))

	assert.Contains(t, buf.String(), "workbook loaded")
	assert.Contains(t, buf.String(), "workbook rewritten")
}
