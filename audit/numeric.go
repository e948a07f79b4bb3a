package audit

import (
	"strconv"
	"strings"
)

// ParseDecimal parses a numeric token that may use either the standard format
// ("1234.56") or the European format with "." as thousands separator and ","
// as decimal separator ("1.234,56"). The standard interpretation is tried
// first; the same logical field switches convention between exports. Returns
// false for empty, whitespace-only, or unparseable tokens.
func ParseDecimal(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return v, true
	}
	v, err := strconv.ParseFloat(normalizeEuropean(token), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalizeEuropean rewrites a European-format token to standard form:
// "." thousands separators stripped, "," decimal separator replaced by ".".
func normalizeEuropean(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, ".", ""), ",", ".")
}
