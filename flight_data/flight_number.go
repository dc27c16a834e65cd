package flight_data

import (
	"fmt"
	"strings"
)

// NotAvailable is shown in place of values that are missing from a row.
const NotAvailable = "N/A"

// NormalizeFlightNumber turns a stored flight number into its display form.
// Numeric values are truncated to an integer and prefixed ("2606.0" becomes
// "WN2606"); anything else is prefixed as it is stored.
func NormalizeFlightNumber(raw, prefix string) string {
	if isMissing(raw) {
		return NotAvailable
	}
	if n, ok := parseInt(raw); ok {
		return fmt.Sprintf("%s%d", prefix, n)
	}
	return prefix + strings.TrimSpace(raw)
}
