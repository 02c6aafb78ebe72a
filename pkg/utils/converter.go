// Package utils provides utility functions shared by the service.
// This file contains numeric rounding and query-string conversion helpers.
package utils

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ================================================================================
// Rounding
// ================================================================================

// Round rounds v to the given number of decimal places, half away from zero.
// It works on the shortest decimal form of v, so 1.005 rounds to 1.01 even
// though the nearest binary float lies just below 1.005.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Round2 rounds a score or currency figure to cents.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Round4 rounds a per-supplier contribution.
func Round4(v float64) float64 {
	return Round(v, 4)
}

// RoundWhole rounds a present value to whole currency units.
func RoundWhole(v float64) float64 {
	return Round(v, 0)
}

// ================================================================================
// String Conversion
// ================================================================================

// StringToInt converts a string to an integer with default value on error
func StringToInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return val
	}
	return defaultValue
}

// ClampInt limits v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ================================================================================
// Collections
// ================================================================================

// SortedKeys returns the keys of a string-keyed map in ascending order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//Personal.AI order the ending
