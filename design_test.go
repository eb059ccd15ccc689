package dlf

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geomodeling/go-dlf/internal/mathutil"
)

// TestDesign_KnownFilter reproduces a published 201-point Hankel J0
// design: a single-candidate search at its known spacing and shift
// must yield a filter that reproduces the Gaussian transform within
// the default tolerance over the near range.
func TestDesign_KnownFilter(t *testing.T) {
	const (
		n       = 201
		spacing = 0.0641
		shift   = -1.2847
	)
	r := mathutil.Logspace(0, 3, 10)

	filt, res, err := Design(&Config{
		Length:    n,
		Spacing:   Single(spacing),
		Shift:     Single(shift),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         r,
	})
	require.NoError(t, err)

	assert.Equal(t, n, filt.Length())
	assert.Equal(t, "dlf_201", filt.Name)
	assert.Equal(t, 1, res.Evaluations)
	assert.Equal(t, spacing, res.Spacing)
	assert.Equal(t, shift, res.Shift)
	assert.False(t, res.Refined)
	require.Len(t, res.Surface, 1)
	require.Len(t, res.Surface[0], 1)

	// Base geometry: centered at exp(shift) with ratio exp(spacing).
	assert.InEpsilon(t, math.Exp(shift), filt.Base[n/2], 1e-12)
	assert.InEpsilon(t, math.Exp(spacing), filt.Factor, 1e-12)

	// The filter must reproduce exp(-r²/4)/2 over the near range.
	coeff := filt.Coeff(KernelJ0)
	require.Len(t, coeff, n)
	for _, rv := range r[:3] {
		var sum float64
		for i, b := range filt.Base {
			x := b / rv
			sum += x * math.Exp(-x*x) * coeff[i]
		}
		approx := sum / rv
		exact := math.Exp(-rv*rv/4) / 2
		relErr := math.Abs(approx-exact) / math.Abs(exact)
		assert.Less(t, relErr, DefaultTolerance, "r=%g", rv)
	}
}

func TestDesign_GridSearch(t *testing.T) {
	filt, res, err := Design(&Config{
		Length:    51,
		Spacing:   Span(0.05, 0.11, 4),
		Shift:     Span(-1.5, -0.5, 3),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 2, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Evaluations)
	assert.Len(t, res.SpacingValues, 4)
	assert.Len(t, res.ShiftValues, 3)
	require.Len(t, res.Surface, 4)
	assert.Contains(t, res.SpacingValues, res.Spacing)
	assert.Contains(t, res.ShiftValues, res.Shift)
	assert.False(t, math.IsInf(res.Score, 1))
	assert.Equal(t, 51, filt.Length())
}

func TestDesign_ParallelMatchesSequential(t *testing.T) {
	cfg := func(workers int) *Config {
		return &Config{
			Length:    51,
			Spacing:   Span(0.05, 0.11, 4),
			Shift:     Span(-1.5, -0.5, 3),
			Inversion: []TransformPair{J0Pair1(1)},
			R:         mathutil.Logspace(0, 2, 30),
			Workers:   workers,
		}
	}

	_, seq, err := Design(cfg(0))
	require.NoError(t, err)
	_, par, err := Design(cfg(4))
	require.NoError(t, err)

	assert.Equal(t, seq.Surface, par.Surface)
	assert.Equal(t, seq.Spacing, par.Spacing)
	assert.Equal(t, seq.Shift, par.Shift)
	assert.Equal(t, seq.Score, par.Score)
}

func TestDesign_InvalidConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Length:    11,
			Spacing:   Single(0.1),
			Shift:     Single(-1),
			Inversion: []TransformPair{J0Pair1(1)},
			R:         mathutil.Logspace(0, 1, 10),
		}
	}

	t.Run("nil_config", func(t *testing.T) {
		_, _, err := Design(nil)
		assert.Error(t, err)
	})

	t.Run("zero_length", func(t *testing.T) {
		cfg := valid()
		cfg.Length = 0
		_, _, err := Design(cfg)
		assert.Error(t, err)
	})

	t.Run("no_inversion_pairs", func(t *testing.T) {
		cfg := valid()
		cfg.Inversion = nil
		_, _, err := Design(cfg)
		assert.Error(t, err)
	})

	t.Run("joint_pair_in_inversion", func(t *testing.T) {
		cfg := valid()
		cfg.Inversion = []TransformPair{gaussJointPair()}
		_, _, err := Design(cfg)
		assert.ErrorIs(t, err, ErrInvalidTransform)
	})

	t.Run("invalid_spacing_axis", func(t *testing.T) {
		cfg := valid()
		cfg.Spacing = AxisSpec{0.05, 0.11}
		_, _, err := Design(cfg)
		assert.ErrorIs(t, err, ErrInvalidAxis)
	})

	t.Run("invalid_shift_axis", func(t *testing.T) {
		cfg := valid()
		cfg.Shift = nil
		_, _, err := Design(cfg)
		assert.ErrorIs(t, err, ErrInvalidAxis)
	})

	t.Run("joint_check_without_j1_inversion", func(t *testing.T) {
		cfg := valid()
		cfg.Check = []TransformPair{gaussJointPair()}
		_, _, err := Design(cfg)
		assert.ErrorIs(t, err, ErrInvalidTransform)
	})
}

// gaussJointPair builds the joint J0/J1 check pair from the two
// Gaussian pairs: its reference transform is F0(r) + F1(r)/r.
func gaussJointPair() TransformPair {
	j0 := J0Pair1(1)
	j1 := J1Pair1(1)
	return NewJoint(j0.LHS, j1.LHS, func(r []float64) []complex128 {
		f0 := j0.RHS(r)
		f1 := j1.RHS(r)
		out := make([]complex128, len(r))
		for i := range r {
			out[i] = f0[i] + f1[i]/complex(r[i], 0)
		}
		return out
	})
}

func TestDesign_JointCheck(t *testing.T) {
	filt, res, err := Design(&Config{
		Length:    101,
		Spacing:   Single(0.08),
		Shift:     Single(-1),
		Inversion: []TransformPair{J0Pair1(1), J1Pair1(1)},
		Check:     []TransformPair{gaussJointPair()},
		R:         mathutil.Logspace(0, 1, 20),
	})
	require.NoError(t, err)

	assert.NotNil(t, filt.Coeff(KernelJ0))
	assert.NotNil(t, filt.Coeff(KernelJ1))
	assert.False(t, math.IsInf(res.Score, 1),
		"a well-placed candidate must satisfy the joint check at the first point")
}

func TestDesign_SavesToStore(t *testing.T) {
	store := NewDirStore(t.TempDir())

	filt, res, err := Design(&Config{
		Length:    21,
		Spacing:   Single(0.1),
		Shift:     Single(-1),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 1, 10),
		Name:      "test_j0",
		Store:     store,
	})
	require.NoError(t, err)

	loaded, loadedRes, err := store.Load("test_j0")
	require.NoError(t, err)
	assert.Equal(t, filt.Name, loaded.Name)
	assert.Equal(t, filt.Base, loaded.Base)
	assert.Equal(t, filt.Coefficients, loaded.Coefficients)
	require.NotNil(t, loadedRes)
	assert.Equal(t, res.Spacing, loadedRes.Spacing)
	assert.Equal(t, res.Shift, loadedRes.Shift)
}

func TestDesign_InvokesPlotter(t *testing.T) {
	var plotted *Filter
	var plottedObjective Objective

	filt, _, err := Design(&Config{
		Length:    21,
		Spacing:   Single(0.1),
		Shift:     Single(-1),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 1, 10),
		Objective: MaximizeRange,
		Plotter: PlotterFunc(func(f *Filter, res *Result, objective Objective) {
			plotted = f
			plottedObjective = objective
		}),
	})
	require.NoError(t, err)

	require.NotNil(t, plotted)
	assert.Equal(t, filt, plotted)
	assert.Equal(t, MaximizeRange, plottedObjective)
}

func TestDesign_VerboseOutput(t *testing.T) {
	var buf bytes.Buffer

	_, _, err := Design(&Config{
		Length:    21,
		Spacing:   Span(0.08, 0.12, 2),
		Shift:     Span(-1.2, -0.8, 2),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 1, 10),
		Verbosity: VerbProgress,
		Output:    &buf,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "grid fct calls")
	assert.Contains(t, out, "Filter length   : 21")
	assert.Contains(t, out, "Spacing")
	assert.Contains(t, out, "Shift")
}

func TestDesign_ShortRangeWarningPrintedOnce(t *testing.T) {
	var buf bytes.Buffer

	// Every evaluation point stays within the absurd tolerance, so the
	// short-range warning fires, and only once across the whole grid.
	_, _, err := Design(&Config{
		Length:    21,
		Spacing:   Span(0.08, 0.12, 3),
		Shift:     Span(-1.2, -0.8, 3),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 1, 10),
		Tolerance: math.MaxFloat64,
		Verbosity: VerbWarnings,
		Output:    &buf,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "WARNING"))
	assert.Contains(t, out, "choose larger r")
}

func TestDesign_SilentByDefault(t *testing.T) {
	var buf bytes.Buffer

	_, _, err := Design(&Config{
		Length:    21,
		Spacing:   Single(0.1),
		Shift:     Single(-1),
		Inversion: []TransformPair{J0Pair1(1)},
		R:         mathutil.Logspace(0, 1, 10),
		Tolerance: math.MaxFloat64,
		Output:    &buf,
	})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestDesign_Refinement(t *testing.T) {
	cfg := func(refine bool) *Config {
		return &Config{
			Length:    51,
			Spacing:   Span(0.06, 0.1, 3),
			Shift:     Span(-1.2, -0.8, 3),
			Inversion: []TransformPair{J0Pair1(1)},
			R:         mathutil.Logspace(0, 2, 30),
			Refine:    refine,
		}
	}

	_, grid, err := Design(cfg(false))
	require.NoError(t, err)
	require.False(t, math.IsInf(grid.Score, 1))

	_, refined, err := Design(cfg(true))
	require.NoError(t, err)

	assert.Greater(t, refined.Evaluations, grid.Evaluations)
	assert.LessOrEqual(t, refined.Score, grid.Score)
}

func TestDesignConvenience(t *testing.T) {
	designs := []struct {
		name   string
		design func(n int, spacing, shift AxisSpec) (*Filter, error)
		kernel Kernel
	}{
		{"hankel_j0", DesignHankelJ0, KernelJ0},
		{"hankel_j1", DesignHankelJ1, KernelJ1},
		{"fourier_sin", DesignFourierSin, KernelSin},
		{"fourier_cos", DesignFourierCos, KernelCos},
	}

	for _, tt := range designs {
		t.Run(tt.name, func(t *testing.T) {
			filt, err := tt.design(21, Single(0.1), Single(-1))
			require.NoError(t, err)
			assert.Equal(t, 21, filt.Length())
			assert.Len(t, filt.Coeff(tt.kernel), 21)
		})
	}
}
