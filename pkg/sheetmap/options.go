// Package sheetmap maps worksheet rows onto caller-declared record
// types, optionally renaming incompatible header strings first.
package sheetmap

import (
	"log/slog"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/parser"
)

// Options configures the mapping pipeline.
type Options struct {
	// SheetIndex selects the worksheet holding the data (zero-based).
	SheetIndex int
	// HeaderRowIndex selects the header row within the sheet
	// (zero-based).
	HeaderRowIndex int
	// Replacements maps literal header substrings to their
	// replacements. Nil or empty means no renaming.
	Replacements map[string]string
	// Charset decodes text in legacy workbooks. Empty means utf-8.
	Charset string
	// StrictHeader turns a missing or empty header row into a
	// *HeaderError instead of an empty result.
	StrictHeader bool
	// SkipUnchangedRewrite skips the persist step when there are no
	// replacements to apply and binds the source file directly. By
	// default the workbook round-trips through disk on every fetch.
	SkipUnchangedRewrite bool
	// Logger receives pipeline diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns options for the common case: first sheet,
// header in the first row, utf-8 legacy decoding.
func DefaultOptions() Options {
	return Options{
		Charset: parser.DefaultCharset,
	}
}

// logger returns the configured logger or a discarding one.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
