package sheetmap

import (
	"path/filepath"
	"strings"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/header"
	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/parser"
	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/rowbind"
)

// Mapper orchestrates the header-rename-and-remap pipeline for one
// workbook file: open, locate the header row, rewrite header text by
// substring replacement, persist, then bind rows from the rewritten
// file.
type Mapper struct {
	path string
	opts Options
}

// New returns a Mapper bound to the workbook at path.
func New(path string, opts Options) *Mapper {
	return &Mapper{path: path, opts: opts}
}

// Fetch runs the pipeline with the replacement map from Options and
// appends one record per data row to the slice pointed to by dest.
// When no usable header row exists, dest is left unmodified and the
// error is nil unless Options.StrictHeader is set.
func (m *Mapper) Fetch(dest any) error {
	return m.fetch(m.opts.Replacements, dest)
}

// FetchWith runs the pipeline once with an explicit replacement map,
// overriding the one in Options.
func (m *Mapper) FetchWith(replacements map[string]string, dest any) error {
	return m.fetch(replacements, dest)
}

// FetchMaps runs the pipeline and returns header-keyed string
// records instead of typed structs.
func (m *Mapper) FetchMaps() ([]map[string]string, error) {
	bindPath, ok, err := m.prepare(m.opts.Replacements)
	if err != nil || !ok {
		return nil, err
	}
	records, err := rowbind.Maps(bindPath, m.opts.SheetIndex, m.opts.HeaderRowIndex, m.opts.Charset)
	if err != nil {
		return nil, &BindError{Path: bindPath, Err: err}
	}
	return records, nil
}

// Fetch is a one-shot convenience for New(path, opts).Fetch(dest).
func Fetch(path string, dest any, opts Options) error {
	return New(path, opts).Fetch(dest)
}

func (m *Mapper) fetch(replacements map[string]string, dest any) error {
	bindPath, ok, err := m.prepare(replacements)
	if err != nil || !ok {
		return err
	}
	if err := rowbind.File(bindPath, m.opts.SheetIndex, m.opts.HeaderRowIndex, m.opts.Charset, dest); err != nil {
		return &BindError{Path: bindPath, Err: err}
	}
	return nil
}

// prepare runs open → locate → normalize → persist and returns the
// path to bind against. ok reports whether a usable header row was
// found; the lenient no-header outcome is ok=false with a nil error.
func (m *Mapper) prepare(replacements map[string]string) (bindPath string, ok bool, err error) {
	log := m.opts.logger()

	wb, err := parser.Open(m.path, m.opts.Charset)
	if err != nil {
		log.Error("open workbook failed", "path", m.path, "error", err)
		return "", false, &OpenError{Path: m.path, Err: err}
	}
	log.Debug("workbook loaded", "path", m.path, "format", wb.Format, "sheets", len(wb.Sheets))

	row, state := header.Locate(wb, m.opts.SheetIndex, m.opts.HeaderRowIndex)
	if state != header.RowUsable {
		log.Debug("no usable header row",
			"path", m.path, "sheet", m.opts.SheetIndex, "row", m.opts.HeaderRowIndex, "state", state.String())
		if m.opts.StrictHeader {
			return "", false, &HeaderError{
				Path:       m.path,
				SheetIndex: m.opts.SheetIndex,
				RowIndex:   m.opts.HeaderRowIndex,
				State:      state,
			}
		}
		return "", false, nil
	}

	if len(replacements) == 0 && m.opts.SkipUnchangedRewrite {
		log.Debug("no replacements, binding source directly", "path", m.path)
		return m.path, true, nil
	}

	header.Normalize(row, replacements)

	out := m.rewritePath()
	if err := parser.Save(out, wb); err != nil {
		log.Error("persist workbook failed", "path", out, "error", err)
		return "", false, &WriteError{Path: out, Err: err}
	}
	log.Debug("workbook rewritten", "path", out)
	return out, true, nil
}

// rewritePath returns the destination for the rewritten workbook.
// Modern sources are overwritten in place. Legacy sources get the
// modern extension swapped in, since the writer only emits the
// modern container.
func (m *Mapper) rewritePath() string {
	if parser.IsModern(m.path) {
		return m.path
	}
	return strings.TrimSuffix(m.path, filepath.Ext(m.path)) + ".xlsx"
}
