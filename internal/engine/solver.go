package engine

import (
	"errors"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/geomodeling/go-dlf/internal/mathutil"
)

// factorPrecision is the number of decimals the base ratio is rounded
// to, matching the precision of published filter tables.
const factorPrecision = 15

// ComputeFilter constructs the filter for one (spacing, shift)
// candidate by direct matrix inversion.
//
// The base points form a symmetric log-spaced grid,
//
//	base[i] = exp(spacing*(i - n/2) + shift),
//
// and the right-hand side is sampled at ext.Factor*n log-spaced points
// spanning [1/max(base), 1/min(base)] extended by ext.AddLeft and
// ext.AddRight decades. For every inversion pair the least-squares
// system lhs*J = rhs(r)*r is solved through a QR factorization.
//
// A degenerate system (singular factorization or failed solve) yields
// an all-zero coefficient array instead of an error, so that the
// candidate scores as unusable rather than aborting the search.
func ComputeFilter(n int, spacing, shift float64, pairs []Pair, ext RangeExt, part Part) *Filter {
	base := make([]float64, n)
	for i := range base {
		base[i] = math.Exp(spacing*float64(i-n/2) + shift)
	}

	m := ext.Factor * n
	r := mathutil.Logspace(
		math.Log10(1/floats.Max(base))-ext.AddLeft,
		math.Log10(1/floats.Min(base))+ext.AddRight,
		m,
	)

	// Kernel argument matrix, row i holding base/r[i].
	k := make([]float64, m*n)
	for i, rv := range r {
		for j, b := range base {
			k[i*n+j] = b / rv
		}
	}

	dlf := &Filter{
		Base:   base,
		Factor: baseFactor(base),
		Coeff:  make(map[string][]float64, len(pairs)),
	}

	for _, p := range pairs {
		dlf.Coeff[p.Tag] = solveCoefficients(p, k, r, m, n, part)
	}

	return dlf
}

// baseFactor returns the mean ratio of consecutive base points,
// rounded to factorPrecision decimals.
func baseFactor(base []float64) float64 {
	if len(base) < 2 {
		return 0
	}
	ratios := make([]float64, len(base)-1)
	for i := range ratios {
		ratios[i] = base[i+1] / base[i]
	}
	mean := f64.Sum(ratios) / float64(len(ratios))
	return mathutil.RoundTo(mean, factorPrecision)
}

// solveCoefficients solves the least-squares system of one inversion
// pair. The coefficient vector is zero when the system is degenerate.
func solveCoefficients(p Pair, k, r []float64, m, n int, part Part) []float64 {
	coeff := make([]float64, n)
	if m < n {
		// Underdetermined systems have no unique solution.
		return coeff
	}

	lhsVals := p.LHS(k)
	data := make([]float64, m*n)
	for i, v := range lhsVals {
		data[i] = part.Select(v)
	}
	lhs := mat.NewDense(m, n, data)

	rhsVals := p.RHS(r)
	rhsData := make([]float64, m)
	for i, v := range rhsVals {
		rhsData[i] = part.Select(v * complex(r[i], 0))
	}
	rhs := mat.NewVecDense(m, rhsData)

	var qr mat.QR
	qr.Factorize(lhs)

	sol := mat.NewVecDense(n, nil)
	if err := qr.SolveVecTo(sol, false, rhs); err != nil {
		// A Condition error still carries a solution; keep it unless
		// the solve degenerated into non-finite values. Any other
		// failure means the candidate gets zeros and scores worst.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return coeff
		}
		for _, v := range sol.RawVector().Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return coeff
			}
		}
	}

	copy(coeff, sol.RawVector().Data)
	return coeff
}
