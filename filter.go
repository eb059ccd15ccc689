package dlf

import (
	"math"
)

// Filter is a designed digital linear filter: a fixed set of
// log-spaced base points and one weight array per inverted kernel,
// approximating an integral transform as a finite dot product.
// Filters are immutable once returned by Design.
type Filter struct {
	// Name identifies the filter, for printing and persistence.
	Name string `json:"name"`

	// Base holds the strictly increasing, strictly positive sample
	// points (a geometric progression).
	Base []float64 `json:"base"`

	// Factor is the common ratio of consecutive base points, rounded
	// to fixed precision.
	Factor float64 `json:"factor"`

	// Coefficients holds one weight array per inverted kernel, each
	// of the same length as Base.
	Coefficients map[Kernel][]float64 `json:"coefficients"`
}

// Length returns the filter length.
func (f *Filter) Length() int { return len(f.Base) }

// Coeff returns the coefficient array for the given kernel, or nil if
// the kernel was not inverted.
func (f *Filter) Coeff(k Kernel) []float64 { return f.Coefficients[k] }

// SpacingShift recovers the design parameters from the base points of
// the centered grid produced by Design: the spacing is the log ratio
// of the last two points and the shift is the log of the center point.
func (f *Filter) SpacingShift() (spacing, shift float64) {
	n := len(f.Base)
	shift = math.Log(f.Base[n/2])
	if n < 2 {
		return 0, shift
	}
	spacing = math.Log(f.Base[n-1]) - math.Log(f.Base[n-2])
	return spacing, shift
}
