package engine

import (
	"math"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/optimize"
)

// SearchResult is the full outcome of a grid search: the winning
// candidate, the score surface over both axes, and bookkeeping about
// the run.
type SearchResult struct {
	// Spacing and Shift are the best-scoring candidate parameters.
	Spacing float64
	Shift   float64

	// Score is the candidate's reduction value (lower is better).
	Score float64

	// Surface holds the score of every grid point, indexed
	// [spacing][shift] in enumeration order.
	Surface [][]float64

	// Evaluations counts every candidate evaluation, including local
	// refinement trials.
	Evaluations int

	// Refined reports whether local refinement improved on the best
	// grid point.
	Refined bool
}

// Search runs the exhaustive global search over the
// (spacing, shift) grid and, when method is non-nil, continues with a
// local derivative-free refinement from the best grid point.
//
// Every grid combination is visited exactly once. The minimum
// reduction is deterministic regardless of evaluation order: ties keep
// the first candidate in enumeration order (spacing outer, shift
// inner). Refinement is sequential by nature and runs on the calling
// goroutine.
func Search(p *SearchParams, method optimize.Method) *SearchResult {
	nSpacing := len(p.SpacingValues)
	nShift := len(p.ShiftValues)
	total := nSpacing * nShift

	if p.Log == nil {
		p.Log = &RunLog{Total: total}
	}

	surface := make([][]float64, nSpacing)
	flat := make([]float64, total)
	for i := range surface {
		surface[i] = flat[i*nShift : (i+1)*nShift]
	}

	evaluate := func(idx int) {
		spacing := p.SpacingValues[idx/nShift]
		shift := p.ShiftValues[idx%nShift]
		flat[idx] = EvaluateCandidate(spacing, shift, p)
	}

	if p.Workers > 1 {
		runParallel(total, p.Workers, evaluate)
	} else {
		for idx := 0; idx < total; idx++ {
			evaluate(idx)
		}
	}

	// Deterministic min-by-score reduction; strict < keeps the first
	// candidate on ties. With an all-Inf surface the first grid point
	// stands, and its Inf score marks the search as failed.
	res := &SearchResult{
		Spacing: p.SpacingValues[0],
		Shift:   p.ShiftValues[0],
		Score:   surface[0][0],
		Surface: surface,
	}
	for i, row := range surface {
		for j, score := range row {
			if score < res.Score {
				res.Score = score
				res.Spacing = p.SpacingValues[i]
				res.Shift = p.ShiftValues[j]
			}
		}
	}

	if method != nil && !math.IsInf(res.Score, 1) {
		refine(res, p, method)
	}

	res.Evaluations = p.Log.Evaluations()
	return res
}

// runParallel evaluates grid indices on the given number of worker
// goroutines. Each index is claimed exactly once through an atomic
// dispenser; results land in per-index slots, so the outcome is
// independent of scheduling.
func runParallel(total, workers int, evaluate func(idx int)) {
	if workers > total {
		workers = total
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= total {
					return
				}
				evaluate(idx)
			}
		}()
	}
	wg.Wait()
}

// refine continues the search from the best grid point with a local
// continuous minimizer, re-scoring candidates at every trial point.
// The grid result stands whenever refinement fails or does not
// improve on it.
func refine(res *SearchResult, p *SearchParams, method optimize.Method) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return EvaluateCandidate(x[0], x[1], p)
		},
	}

	opt, err := optimize.Minimize(problem, []float64{res.Spacing, res.Shift}, nil, method)
	if err != nil || opt == nil {
		return
	}
	if opt.F < res.Score {
		res.Spacing = opt.X[0]
		res.Shift = opt.X[1]
		res.Score = opt.F
		res.Refined = true
	}
}
