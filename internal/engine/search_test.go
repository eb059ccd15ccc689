package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"github.com/geomodeling/go-dlf/internal/mathutil"
)

// gaussSearchParams builds realistic search parameters around the
// Gaussian J0 pair. The check range reaches far enough for every
// candidate to break down within it.
func gaussSearchParams(spacing, shift []float64) *SearchParams {
	pair := gaussJ0Pair()
	r := mathutil.Logspace(0, 2, 30)
	return &SearchParams{
		N:             51,
		SpacingValues: spacing,
		ShiftValues:   shift,
		Inversion:     []Pair{pair},
		Check: []CheckPair{{
			Tag: TagJ0,
			LHS: pair.LHS,
			Ref: pair.RHS(r),
		}},
		R:         r,
		Ext:       testExt,
		Tolerance: 0.01,
		Objective: ObjectiveRange,
	}
}

func TestSearch_VisitsEveryGridPoint(t *testing.T) {
	p := gaussSearchParams(
		[]float64{0.06, 0.08, 0.1},
		[]float64{-1.2, -1, -0.8, -0.6, -0.4},
	)

	res := Search(p, nil)

	assert.Equal(t, 15, res.Evaluations)
	require.Len(t, res.Surface, 3)
	for i, row := range res.Surface {
		assert.Len(t, row, 5, "row %d", i)
	}
	assert.False(t, res.Refined)
}

func TestSearch_WinnerMatchesSurfaceMinimum(t *testing.T) {
	p := gaussSearchParams(
		[]float64{0.05, 0.08, 0.11},
		[]float64{-1.5, -1, -0.5},
	)

	res := Search(p, nil)
	require.False(t, math.IsInf(res.Score, 1), "expected at least one usable candidate")

	best := res.Surface[0][0]
	bi, bj := 0, 0
	for i, row := range res.Surface {
		for j, score := range row {
			if score < best {
				best = score
				bi, bj = i, j
			}
		}
	}

	assert.Equal(t, best, res.Score)
	assert.Equal(t, p.SpacingValues[bi], res.Spacing)
	assert.Equal(t, p.ShiftValues[bj], res.Shift)
}

// TestSearch_TieKeepsFirstCandidate drives the tolerance so high that
// no evaluation point ever violates it: every candidate then scores
// 1/max(r) and the first grid point must win.
func TestSearch_TieKeepsFirstCandidate(t *testing.T) {
	p := gaussSearchParams(
		[]float64{0.06, 0.08, 0.1},
		[]float64{-1, -0.5},
	)
	// Keep the check range short so the reference transform stays well
	// away from underflow; a zero reference would register as a
	// violation at any tolerance.
	p.R = mathutil.Logspace(0, 1, 20)
	p.Check[0].Ref = gaussJ0Pair().RHS(p.R)
	p.Tolerance = math.MaxFloat64
	p.Log = &RunLog{Total: 6}

	res := Search(p, nil)

	want := 1 / p.R[len(p.R)-1]
	for i, row := range res.Surface {
		for j, score := range row {
			assert.InEpsilon(t, want, score, 1e-15, "surface[%d][%d]", i, j)
		}
	}
	assert.Equal(t, p.SpacingValues[0], res.Spacing)
	assert.Equal(t, p.ShiftValues[0], res.Shift)
	assert.True(t, p.Log.ShortRangeWarned())
}

// TestSearch_ParallelMatchesSequential runs the same grid on one and
// on four workers. Results land in per-index slots, so the surfaces
// must agree bit for bit.
func TestSearch_ParallelMatchesSequential(t *testing.T) {
	spacing := []float64{0.05, 0.07, 0.09, 0.11}
	shift := []float64{-1.4, -1.1, -0.8, -0.5, -0.2}

	seq := Search(gaussSearchParams(spacing, shift), nil)

	par := gaussSearchParams(spacing, shift)
	par.Workers = 4
	got := Search(par, nil)

	assert.Equal(t, seq.Surface, got.Surface)
	assert.Equal(t, seq.Spacing, got.Spacing)
	assert.Equal(t, seq.Shift, got.Shift)
	assert.Equal(t, seq.Score, got.Score)
	assert.Equal(t, seq.Evaluations, got.Evaluations)
}

func TestSearch_WorkersCappedAtGridSize(t *testing.T) {
	p := gaussSearchParams([]float64{0.08}, []float64{-1, -0.5})
	p.Workers = 64

	res := Search(p, nil)
	assert.Equal(t, 2, res.Evaluations)
}

// TestSearch_Refinement polishes the grid winner with Nelder-Mead.
// Refinement may only improve the score, and its trial evaluations
// count on top of the grid total.
func TestSearch_Refinement(t *testing.T) {
	spacing := []float64{0.06, 0.08, 0.1}
	shift := []float64{-1.2, -0.8, -0.4}

	grid := Search(gaussSearchParams(spacing, shift), nil)
	require.False(t, math.IsInf(grid.Score, 1))

	refined := Search(gaussSearchParams(spacing, shift), &optimize.NelderMead{})

	assert.LessOrEqual(t, refined.Score, grid.Score)
	assert.Greater(t, refined.Evaluations, grid.Evaluations)
	if refined.Refined {
		assert.Less(t, refined.Score, grid.Score)
	}
}

func TestSearch_InfSurfaceSkipsRefinement(t *testing.T) {
	// A check pair with no matching coefficients reconstructs to zero
	// everywhere: every candidate is unusable and refinement from an
	// infinite score would be meaningless.
	p := gaussSearchParams([]float64{0.08, 0.1}, []float64{-1, -0.5})
	p.Check = []CheckPair{{
		Tag: TagSin,
		LHS: gaussJ0Pair().LHS,
		Ref: gaussJ0Pair().RHS(p.R),
	}}

	res := Search(p, &optimize.NelderMead{})

	assert.True(t, math.IsInf(res.Score, 1))
	assert.False(t, res.Refined)
	assert.Equal(t, 4, res.Evaluations)
}

func TestRunLog_ProgressCallback(t *testing.T) {
	var calls []int
	p := gaussSearchParams([]float64{0.08}, []float64{-1, -0.8, -0.6})
	p.Log = &RunLog{
		Total:      3,
		OnEvaluate: func(done, total int) { calls = append(calls, done) },
	}

	Search(p, nil)

	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestRunLog_NilReceiverIsSafe(t *testing.T) {
	var l *RunLog
	l.Evaluated()
	l.WarnShortRange(0.01)
	assert.Zero(t, l.Evaluations())
	assert.False(t, l.ShortRangeWarned())
}
