package audit

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Epoch-second bounds for years 1 through 9999. Values outside this window
// are treated as unparseable rather than clamped.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// DecodeEpochMillis converts a millisecond-epoch token into a UTC timestamp.
// Tokens may use the European number format or scientific notation
// ("1,76978E+12"); the European normalization runs unconditionally so the
// exponent marker's decimal comma is handled. Returns false when the token is
// empty, unparseable, or outside the representable range.
func DecodeEpochMillis(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseFloat(normalizeEuropean(token), 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	if sec := ms / 1000; sec < minEpochSeconds || sec > maxEpochSeconds {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(math.Round(ms))).UTC(), true
}
