// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-calc/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Finite reports whether val is neither NaN nor an infinity.
func Finite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// FiniteOr returns val when it is finite and fallback otherwise.
func FiniteOr(val, fallback float64) float64 {
	if Finite(val) {
		return val
	}
	return fallback
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// RoundToInt64 rounds half away from zero and converts to int64. Values
// beyond the int64 range saturate and NaN maps to 0, since Go leaves those
// conversions implementation-defined.
func RoundToInt64(val float64) int64 {
	if math.IsNaN(val) {
		return 0
	}
	r := math.Round(val)
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	if r <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(r)
}
