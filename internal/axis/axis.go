// Package axis converts scalar-or-range search inputs into discretized
// grid axes for the brute-force filter design search.
package axis

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is returned when an axis specification has neither
// one nor three elements.
var ErrInvalidSpec = errors.New("invalid axis specification")

// Axis spec element counts.
const (
	scalarSpecLen = 1
	rangeSpecLen  = 3
)

// Axis is a half-open range descriptor. Iterating Start, Start+Step, ...
// up to (but not including) Stop yields the grid values of the axis.
//
// For a (start, stop, count) spec the Stop field is nudged past the
// requested endpoint by Step/2 so that floating-point rounding cannot
// drop the inclusive endpoint during iteration.
type Axis struct {
	Start float64
	Stop  float64
	Step  float64
}

// Parse converts an axis specification into an Axis. The spec must have
// either one element (a single-value axis) or three elements
// (start, stop, count) describing count evenly spaced values spanning
// [start, stop] inclusive.
//
// A count below 2, or start == stop, collapses the axis to the single
// value start. Any other spec length fails with ErrInvalidSpec.
func Parse(name string, spec []float64) (Axis, error) {
	var start, stop float64
	var count int

	switch len(spec) {
	case scalarSpecLen:
		start = spec[0]
		stop = start + 1
		count = 1
	case rangeSpecLen:
		start = spec[0]
		stop = spec[1]
		count = int(spec[2])
	default:
		return Axis{}, fmt.Errorf("%w: %s must have 1 or 3 elements (start, stop, count), got %d",
			ErrInvalidSpec, name, len(spec))
	}

	if count < 2 || start == stop {
		// Unit axis: a single value, iterated once.
		return Axis{Start: start, Stop: start + 0.5, Step: 1}, nil
	}

	step := (stop - start) / float64(count-1)
	return Axis{Start: start, Stop: stop + step/2, Step: step}, nil
}

// Count returns the number of grid values the axis yields. Descending
// axes (negative Step) are supported.
func (a Axis) Count() int {
	if a.Step == 0 {
		return 0
	}
	span := (a.Stop - a.Start) / a.Step
	if span <= 0 {
		return 0
	}
	n := int(span)
	if float64(n) < span {
		n++
	}
	return n
}

// Values materializes the axis grid values in iteration order.
func (a Axis) Values() []float64 {
	n := a.Count()
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = a.Start + float64(i)*a.Step
	}
	return vals
}
