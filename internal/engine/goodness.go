package engine

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/f64"
)

// Breakdown heuristic thresholds. Isolated error spikes, for instance
// from zero crossings of the reference transform, are allowed to be
// skipped: with more than maxSkippedViolations violating points the
// breakdown index jumps past the fifth violation, otherwise it backs
// off one point from the first violation. The thresholds are kept
// exactly as published with the original filter tables.
const (
	maxSkippedViolations = 4
	skipBackOffset       = 5
)

// SearchParams bundles the inputs shared by every candidate
// evaluation of one design run.
type SearchParams struct {
	// N is the filter length.
	N int

	// SpacingValues and ShiftValues are the grid axes of the global
	// search.
	SpacingValues []float64
	ShiftValues   []float64

	// Inversion pairs define the linear systems solved per candidate.
	Inversion []Pair

	// Check pairs and the evaluation points R define the goodness
	// check; Check[i].Ref holds the reference transform at R.
	Check []CheckPair
	R     []float64

	// Ext derives the inversion evaluation points from the base.
	Ext RangeExt

	// Tolerance is the relative error up to which the transform is
	// considered reproduced.
	Tolerance float64

	// Part selects the complex component used for the inversion.
	Part Part

	// Objective selects the score reduction.
	Objective Objective

	// Workers > 1 evaluates grid points on that many goroutines.
	Workers int

	// Log accumulates progress and warnings.
	Log *RunLog
}

// EvaluateCandidate builds a probe filter at (spacing, shift) and
// scores it against the check pairs. The returned score is the
// worst-pair reduction; +Inf marks a candidate that breaks down at the
// very first evaluation point and must never win the search.
func EvaluateCandidate(spacing, shift float64, p *SearchParams) float64 {
	dlf := ComputeFilter(p.N, spacing, shift, p.Inversion, p.Ext, p.Part)
	score := scoreFilter(dlf, p)
	p.Log.Evaluated()
	return score
}

// scoreFilter reduces the approximation error of a filter over all
// check pairs to a single scalar. Every check pair is reconstructed as
// a weighted dot product of the filter coefficients against the kernel
// evaluated at base/r; the pair with the worst (largest) reduction
// determines the score.
func scoreFilter(dlf *Filter, p *SearchParams) float64 {
	m := len(p.R)
	n := len(dlf.Base)

	// Kernel arguments for the check, row i holding base/r[i].
	k := make([]float64, m*n)
	for i, rv := range p.R {
		for j, b := range dlf.Base {
			k[i*n+j] = b / rv
		}
	}

	// Row buffers for the complex dot products.
	reBuf := make([]float64, n)
	imBuf := make([]float64, n)

	var worstVal float64
	var worstIdx int

	for pi := range p.Check {
		cp := &p.Check[pi]
		approx := reconstruct(dlf, cp, k, p.R, reBuf, imBuf)

		idx := breakdownIndex(approx, cp.Ref, p.Tolerance, p.Log)

		var val float64
		if p.Objective == ObjectiveAmplitude {
			val = cmplx.Abs(approx[idx])
		} else {
			val = 1 / p.R[idx]
		}

		// The candidate must satisfy the hardest pair: the larger
		// (worse) reduction wins.
		if pi == 0 || val > worstVal {
			worstVal = val
			worstIdx = idx
		}
	}

	if worstIdx == 0 {
		return math.Inf(1)
	}
	return worstVal
}

// reconstruct approximates the transform of one check pair with the
// filter. The joint kernel combines its two partial approximations
// with 1/r and 1/r² weights.
func reconstruct(dlf *Filter, cp *CheckPair, k, r []float64, reBuf, imBuf []float64) []complex128 {
	m := len(r)
	n := len(dlf.Base)
	approx := make([]complex128, m)

	if cp.Joint != nil {
		lhs0, lhs1 := cp.Joint(k)
		c0 := dlf.Coeff[TagJ0]
		c1 := dlf.Coeff[TagJ1]
		if c0 == nil || c1 == nil {
			return approx
		}
		for i := 0; i < m; i++ {
			row := i * n
			a0 := complexDot(lhs0[row:row+n], c0, reBuf, imBuf)
			a1 := complexDot(lhs1[row:row+n], c1, reBuf, imBuf)
			rv := complex(r[i], 0)
			approx[i] = a0/rv + a1/(rv*rv)
		}
		return approx
	}

	lhs := cp.LHS(k)
	coeff := dlf.Coeff[cp.Tag]
	if coeff == nil {
		return approx
	}
	for i := 0; i < m; i++ {
		row := i * n
		approx[i] = complexDot(lhs[row:row+n], coeff, reBuf, imBuf) / complex(r[i], 0)
	}
	return approx
}

// complexDot computes the dot product of a complex row with real
// coefficients, splitting the row into component buffers so the SIMD
// kernels apply. The buffers must have the row's length.
func complexDot(row []complex128, coeff []float64, reBuf, imBuf []float64) complex128 {
	for j, v := range row {
		reBuf[j] = real(v)
		imBuf[j] = imag(v)
	}
	return complex(f64.DotProductUnsafe(reBuf, coeff), f64.DotProductUnsafe(imBuf, coeff))
}

// breakdownIndex finds the earliest evaluation point past which the
// relative error exceeds the tolerance.
//
// An identically zero or fully non-finite approximation forces index 0
// (worst possible). When no point violates the tolerance the last
// index is returned and a one-time short-range warning is recorded,
// since the true breakdown point may lie beyond the evaluation range.
func breakdownIndex(approx, ref []complex128, tolerance float64, log *RunLog) int {
	var violations []int
	allZero := true
	allNaN := true

	for i, v := range approx {
		if v != 0 {
			allZero = false
		}
		if !cmplx.IsNaN(v) {
			allNaN = false
		}
		relErr := cmplx.Abs((v - ref[i]) / ref[i])
		if relErr > tolerance {
			violations = append(violations, i)
		}
	}

	switch {
	case allZero || allNaN:
		// The filter reproduces nothing at all.
		return 0

	case len(violations) == 0:
		log.WarnShortRange(tolerance)
		return len(approx) - 1

	case len(violations) > maxSkippedViolations:
		idx := violations[maxSkippedViolations] - skipBackOffset
		if idx < 0 {
			idx = 0
		}
		return idx

	default:
		idx := violations[0] - 1
		if idx < 0 {
			idx = 0
		}
		return idx
	}
}
