// Package rowbind binds worksheet rows to caller-declared Go values.
//
// Struct fields bind to columns through the `sheetmap` tag: the tag
// value is either the header cell text to match ("User Name"), a
// zero-based column index ("#2"), or "-" to skip the field. An
// untagged field binds by its own name. A "format=" option after a
// comma supplies the time layout for time.Time fields:
//
//	type Employee struct {
//		Name     string    `sheetmap:"UserName"`
//		Dept     string    `sheetmap:"#1"`
//		Joined   time.Time `sheetmap:"Joined,format=2006-01-02"`
//		Internal string    `sheetmap:"-"`
//	}
package rowbind

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/parser"
)

// ErrInvalidDest indicates the destination is not a non-nil pointer
// to a slice of structs.
var ErrInvalidDest = errors.New("destination must be a non-nil pointer to a slice of structs")

// File opens the workbook at path and binds the rows of the sheet at
// sheetIndex, below the header row at headerRow, into the slice
// pointed to by dest. Legacy workbooks decode with charset. If the
// sheet or header row is absent the destination is left unmodified
// and no error is returned.
func File(path string, sheetIndex, headerRow int, charset string, dest any) error {
	wb, err := parser.Open(path, charset)
	if err != nil {
		return err
	}
	return Sheet(wb, sheetIndex, headerRow, dest)
}

// Sheet binds rows from an in-memory workbook. See File.
func Sheet(wb *models.Workbook, sheetIndex, headerRow int, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return ErrInvalidDest
	}
	slice := rv.Elem()
	if slice.Kind() != reflect.Slice {
		return ErrInvalidDest
	}
	elemType := slice.Type().Elem()
	elemIsPtr := elemType.Kind() == reflect.Ptr
	structType := elemType
	if elemIsPtr {
		structType = elemType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return ErrInvalidDest
	}

	sheet, ok := wb.Sheet(sheetIndex)
	if !ok {
		return nil
	}
	head, ok := sheet.Row(headerRow)
	if !ok || len(head.Cells) == 0 {
		return nil
	}

	fields := bindFields(structType, head.Strings())

	for r := headerRow + 1; r < len(sheet.Rows); r++ {
		cells := sheet.Rows[r].Strings()
		if isEmpty(cells) {
			continue
		}
		elem := reflect.New(structType)
		if err := fillStruct(elem.Elem(), fields, cells, r); err != nil {
			return err
		}
		if elemIsPtr {
			slice.Set(reflect.Append(slice, elem))
		} else {
			slice.Set(reflect.Append(slice, elem.Elem()))
		}
	}
	return nil
}

type fieldBinding struct {
	fieldIdx   int
	col        int
	name       string
	timeFormat string
	kind       reflect.Kind
	typ        reflect.Type
	isPtr      bool
}

// bindFields resolves every bindable struct field to a column index.
// Fields naming a header that is not present are skipped, matching
// the lenient contract for partially-populated sheets.
func bindFields(structType reflect.Type, headers []string) []fieldBinding {
	headerCols := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := headerCols[h]; !seen {
			headerCols[h] = i
		}
	}

	var fields []fieldBinding
	for i := 0; i < structType.NumField(); i++ {
		fdef := structType.Field(i)
		if !fdef.IsExported() {
			continue
		}
		name, timeFormat := parseTag(fdef)
		if name == "-" {
			continue
		}

		var col int
		if idx, isIdx := columnIndex(name); isIdx {
			if idx >= len(headers) {
				continue
			}
			col = idx
		} else {
			c, ok := headerCols[name]
			if !ok {
				continue
			}
			col = c
		}

		ft := fdef.Type
		isPtr := ft.Kind() == reflect.Ptr
		if isPtr {
			ft = ft.Elem()
		}
		fields = append(fields, fieldBinding{
			fieldIdx:   i,
			col:        col,
			name:       name,
			timeFormat: timeFormat,
			kind:       ft.Kind(),
			typ:        ft,
			isPtr:      isPtr,
		})
	}
	return fields
}

// parseTag returns the binding name and time format for a field.
func parseTag(f reflect.StructField) (name, timeFormat string) {
	tag := f.Tag.Get("sheetmap")
	if tag == "" {
		return f.Name, ""
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, p := range parts[1:] {
		if v, ok := strings.CutPrefix(p, "format="); ok {
			timeFormat = v
		}
	}
	return name, timeFormat
}

// columnIndex interprets a "#N" binding name as a zero-based column
// index.
func columnIndex(name string) (int, bool) {
	s, ok := strings.CutPrefix(name, "#")
	if !ok {
		return 0, false
	}
	idx := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		idx = idx*10 + int(r-'0')
	}
	if s == "" {
		return 0, false
	}
	return idx, true
}

func fillStruct(elem reflect.Value, fields []fieldBinding, cells []string, rowIdx int) error {
	for _, fb := range fields {
		var raw string
		if fb.col < len(cells) {
			raw = strings.TrimSpace(cells[fb.col])
		}
		fld := elem.Field(fb.fieldIdx)

		if raw == "" {
			// Pointer fields stay nil, value fields stay zero.
			continue
		}

		v, err := convert(raw, fb)
		if err != nil {
			return fmt.Errorf("row %d, column %q: %w", rowIdx+1, fb.name, err)
		}
		if fb.isPtr {
			pv := reflect.New(fb.typ)
			pv.Elem().Set(v)
			fld.Set(pv)
		} else {
			fld.Set(v)
		}
	}
	return nil
}

func isEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var timeType = reflect.TypeOf(time.Time{})

// convert coerces a cell's text into the field's type.
func convert(raw string, fb fieldBinding) (reflect.Value, error) {
	switch fb.kind {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(fb.typ), nil
	case reflect.Bool:
		b, err := parseBool(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b).Convert(fb.typ), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := parseInt(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(fb.typ).Elem()
		if v.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", i, fb.typ)
		}
		v.SetInt(i)
		return v, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := parseInt(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if i < 0 {
			return reflect.Value{}, fmt.Errorf("cannot store %d in unsigned field", i)
		}
		v := reflect.New(fb.typ).Elem()
		if v.OverflowUint(uint64(i)) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", i, fb.typ)
		}
		v.SetUint(uint64(i))
		return v, nil
	case reflect.Float32, reflect.Float64:
		f, err := parseFloat(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.New(fb.typ).Elem()
		if v.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("value %v overflows %s", f, fb.typ)
		}
		v.SetFloat(f)
		return v, nil
	case reflect.Struct:
		if fb.typ != timeType {
			return reflect.Value{}, fmt.Errorf("unsupported struct field type %s", fb.typ)
		}
		t, err := parseTime(raw, fb.timeFormat)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported field kind %s", fb.kind)
	}
}
