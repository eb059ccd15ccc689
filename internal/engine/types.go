// Package engine implements the numeric core of digital linear filter
// design: sample-point construction, coefficient inversion by QR least
// squares, filter scoring against reference transform pairs, and the
// brute-force search over the (spacing, shift) parameter plane.
package engine

// Part selects which component of a complex-valued transform pair is
// used for the inversion.
type Part int

const (
	// PartReal uses the real component.
	PartReal Part = iota
	// PartImag uses the imaginary component.
	PartImag
)

// Select extracts the chosen component of v.
func (p Part) Select(v complex128) float64 {
	if p == PartImag {
		return imag(v)
	}
	return real(v)
}

// Objective selects how the error curve of a candidate filter is
// reduced to a single score. The search minimizes the score either way.
type Objective int

const (
	// ObjectiveAmplitude scores a candidate by the smallest amplitude
	// it recovers reliably before breakdown.
	ObjectiveAmplitude Objective = iota
	// ObjectiveRange scores a candidate by the reciprocal of the
	// largest evaluation point recovered reliably, so that minimizing
	// the score maximizes the usable range.
	ObjectiveRange
)

// RangeExt controls how the right-hand-side evaluation points of the
// inversion are derived from the filter base: the range
// [1/max(base), 1/min(base)] is extended by AddLeft and AddRight
// decades and sampled with Factor*n points. Factor > 1 makes the
// linear system overdetermined.
type RangeExt struct {
	AddLeft  float64
	AddRight float64
	Factor   int
}

// Pair is a transform pair used for the inversion: a kernel function
// (lhs) and its known transform (rhs), both evaluated pointwise over a
// batch of arguments. Joint is non-nil only for the combined j0/j1
// kernel, which yields both kernel values per argument and is valid
// for goodness checks only.
type Pair struct {
	Tag   string
	LHS   func(x []float64) []complex128
	Joint func(x []float64) (j0, j1 []complex128)
	RHS   func(r []float64) []complex128
}

// CheckPair is a transform pair used for the goodness check, with its
// reference transform pre-evaluated at the check points.
type CheckPair struct {
	Tag   string
	LHS   func(x []float64) []complex128
	Joint func(x []float64) (j0, j1 []complex128)
	Ref   []complex128
}

// Filter is a designed digital linear filter: log-spaced base points,
// their common ratio, and one coefficient array per inverted kernel.
type Filter struct {
	Base   []float64
	Factor float64
	Coeff  map[string][]float64
}

// Kernel tags for the coefficient map.
const (
	TagJ0  = "j0"
	TagJ1  = "j1"
	TagJ2  = "j2"
	TagSin = "sin"
	TagCos = "cos"
)
