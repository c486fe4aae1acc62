package sheetmap

import (
	"fmt"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/header"
)

// OpenError reports a workbook that could not be loaded: the file is
// missing, unreadable, or malformed for its implied format.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open workbook %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// WriteError reports a workbook that could not be persisted. The
// in-memory workbook is unaffected and remains usable for a retry
// with a different destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write workbook %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// HeaderError reports that no usable header row was found. It is
// returned only when Options.StrictHeader is set; the default
// contract yields an empty result instead.
type HeaderError struct {
	Path       string
	SheetIndex int
	RowIndex   int
	State      header.RowState
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("no usable header row in %s (sheet %d, row %d): %s",
		e.Path, e.SheetIndex, e.RowIndex, e.State)
}

// BindError reports that rows of the rewritten file could not be
// bound to the destination record type.
type BindError struct {
	Path string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind records from %s: %v", e.Path, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
