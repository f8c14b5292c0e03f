package exporter

import (
	"strconv"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatMinutes drops the fraction when minutes are whole
func formatMinutes(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatYear leaves the cell empty for datasets without a season column
func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
