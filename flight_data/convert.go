package flight_data

import (
	"math"
	"strconv"
	"strings"
)

// SafeFloat parses value as a float and returns 0 for anything that is not a
// finite number, including the NaN marker used for missing cells.
func SafeFloat(value string) float64 {
	f, _ := parseFloat(value)
	return f
}

// SafeInt parses value as a number and truncates it to an int, returning 0
// on failure. Values such as "1830.0" are accepted.
func SafeInt(value string) int {
	return int(SafeFloat(value))
}

// parseFloat is like SafeFloat but reports whether value held a finite
// number.
func parseFloat(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseInt is like SafeInt but reports whether value held a number.
func parseInt(value string) (int, bool) {
	f, ok := parseFloat(value)
	return int(f), ok
}

func isMissing(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || v == "NaN" || v == "NA" || v == "N/A" || v == "<nil>"
}
