package calc

import (
	"math"
	"strconv"
	"strings"
)

// FormatResult renders v the way results are shown on the display: the
// shortest text that round-trips, always with at least one fractional digit,
// in plain notation for magnitudes in [1e-3, 1e7) and as mantissa "E" exponent
// otherwise. Examples: 5 -> "5.0", 0.5 -> "0.5", 1e7 -> "1.0E7",
// 1e-4 -> "1.0E-4", +Inf -> "Infinity", NaN -> "NaN".
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 'E' yields forms like "1.2345E+07" or "1E-04".
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mantissa + "E" + strconv.Itoa(e)
}

// truncate cuts s to at most n bytes. Result text is ASCII.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
