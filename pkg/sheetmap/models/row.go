package models

// Row represents an ordered sequence of cells within a sheet.
type Row struct {
	// Cells contains the row's cells in column order.
	Cells []Cell
}

// Strings returns the row's cell values as a string slice.
func (r *Row) Strings() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Value
	}
	return out
}
