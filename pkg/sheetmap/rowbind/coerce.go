package rowbind

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseBool accepts the usual spreadsheet spellings of a boolean.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", s)
}

func parseInt(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	// Formatted numbers ("1,234" or "1234.0") still carry an integer.
	if f, err := parseFloat(s); err == nil && f == float64(int64(f)) {
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot parse %q as integer", s)
}

func parseFloat(s string) (float64, error) {
	cleaned := s
	if strings.Contains(cleaned, ",") {
		switch {
		case strings.Contains(cleaned, "."):
			// Both present: comma is a thousands separator.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		case thousandsGrouped(cleaned):
			// "1,234" or "1,234,567": grouped thousands.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		default:
			// "3,14": comma is the decimal separator.
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as number", s)
	}
	return f, nil
}

// thousandsGrouped reports whether a comma-only number reads as
// grouped thousands: a 1-3 digit head followed by comma-separated
// groups of exactly three digits.
func thousandsGrouped(s string) bool {
	parts := strings.Split(strings.TrimPrefix(s, "-"), ",")
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[0]) > 3 || !allDigits(parts[0]) {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !allDigits(p) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// timeLayouts are tried in order when no format tag is given.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
}

func parseTime(s, layout string) (time.Time, error) {
	if layout != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot parse %q with layout %q", s, layout)
		}
		return t, nil
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}
