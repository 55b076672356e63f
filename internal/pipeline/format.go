package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way existing result records spell numbers:
// plain decimals with at least one fractional digit for 1e-3 <= |v| < 1e7,
// otherwise a mantissa and an upper-case exponent ("9.6E-4", "1.0E7").
// Digits are the shortest that round-trip.
func FormatNumber(v float64) string {
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

	if abs := math.Abs(v); abs >= 1e-3 && abs < 1e7 {
		return withFraction(strconv.FormatFloat(v, 'f', -1, 64))
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	n, _ := strconv.Atoi(exp)
	return withFraction(mantissa) + "E" + strconv.Itoa(n)
}

func withFraction(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
