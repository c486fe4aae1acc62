package models

// Cell holds a single cell's text value, mutable in place.
type Cell struct {
	// Value is the cell text as formatted by the source library.
	Value string
}
