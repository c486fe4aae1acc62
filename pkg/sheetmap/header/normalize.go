package header

import (
	"sort"
	"strings"

	"github.com/sheetmap/sheetmap-go/pkg/sheetmap/models"
)

// Normalize rewrites every cell of row by applying each replacements
// entry as a literal substring replacement, accumulating all
// substitutions into the final cell text. Keys are applied in
// descending length order, ties broken lexicographically, so a longer
// key always wins over its own substrings. Cells with an empty value
// are left untouched. A nil row or an empty map is a no-op.
//
// The row is mutated in place and also returned for chaining.
func Normalize(row *models.Row, replacements map[string]string) *models.Row {
	if row == nil || len(replacements) == 0 {
		return row
	}
	keys := orderedKeys(replacements)
	for i := range row.Cells {
		v := row.Cells[i].Value
		if v == "" {
			continue
		}
		for _, k := range keys {
			if k == "" {
				// ReplaceAll with an empty key would insert the
				// replacement between every character.
				continue
			}
			v = strings.ReplaceAll(v, k, replacements[k])
		}
		row.Cells[i].Value = v
	}
	return row
}

// orderedKeys returns the map keys in the committed application
// order: longest first, equal lengths lexicographic.
func orderedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
