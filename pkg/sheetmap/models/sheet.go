package models

// Sheet represents a single worksheet as an ordered sequence of rows.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// Rows contains the sheet's rows in order. An index beyond the
	// slice means the row was never written, which is distinct from a
	// row present with zero cells.
	Rows []Row
}

// Row returns the row at the given zero-based index.
// The second result reports whether a row exists at that index.
func (s *Sheet) Row(index int) (*Row, bool) {
	if index < 0 || index >= len(s.Rows) {
		return nil, false
	}
	return &s.Rows[index], true
}
