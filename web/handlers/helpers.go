package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// matchesFilter reports whether any field contains term, case
// insensitively. An empty term matches everything. Filtering always
// happens in process, after the full fetch, never in SQL.
func matchesFilter(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// formatDH renders an amount fixed to 2 decimals with the currency
// suffix, e.g. "30.00 DH".
func formatDH(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " DH"
}

// orDash dereferences an optional string, falling back to "-" for
// missing values (including orphaned relations).
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
