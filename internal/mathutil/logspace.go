// Package mathutil provides shared numeric helpers for filter design.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	logBase = 10
)

// Logspace returns n points spaced evenly on a log10 scale between
// 10^start and 10^stop, endpoints included.
func Logspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	dst := make([]float64, n)
	if n == 1 {
		dst[0] = math.Pow(logBase, start)
		return dst
	}
	return floats.LogSpan(dst, math.Pow(logBase, start), math.Pow(logBase, stop))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(logBase, float64(decimals))
	return math.Round(v*p) / p
}
