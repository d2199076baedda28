// Package numeric coerces untrusted form values into bounded numbers and
// renders them for display. Nothing in this package panics.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// SafeNumber returns x as a finite float64, or fallback when x is missing,
// unparsable, NaN or infinite. An empty or blank string is 0.
func SafeNumber(x interface{}, fallback float64) float64 {
	var n float64
	switch v := x.(type) {
	case nil:
		return fallback
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fallback
		}
		n = f
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		n = f
	default:
		return fallback
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// ClampNonNegative is max(0, SafeNumber(x, 0)).
func ClampNonNegative(x interface{}) float64 {
	return math.Max(0, SafeNumber(x, 0))
}

// Clamp01 bounds v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampInt bounds v to [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite bounds v to the float64 range so it survives JSON encoding.
// NaN maps to 0 and infinities to the largest finite value of their sign.
func Finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Truthy coerces a form flag. Strings accept true/yes/on/1 in any case.
func Truthy(x interface{}) bool {
	switch v := x.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1", "y":
			return true
		}
		return false
	default:
		return SafeNumber(x, 0) != 0
	}
}

// FormatCurrency renders whole dollars with thousands separators.
// Zero, missing and unparsable values render as "$0".
func FormatCurrency(x interface{}) string {
	n := math.Round(SafeNumber(x, 0))
	if n == 0 {
		return "$0"
	}
	if n < 0 {
		return "-$" + printer.Sprintf("%.0f", -n)
	}
	return "$" + printer.Sprintf("%.0f", n)
}

// FormatPercent renders x with the given number of decimals and a % sign.
func FormatPercent(x interface{}, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(SafeNumber(x, 0), 'f', decimals, 64) + "%"
}
