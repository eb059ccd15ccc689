package dlf

import (
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/geomodeling/go-dlf/internal/axis"
	"github.com/geomodeling/go-dlf/internal/engine"
	"github.com/geomodeling/go-dlf/internal/mathutil"
)

// Part selects which component of complex-valued transform pairs is
// used for the inversion.
type Part int

const (
	// PartReal inverts the real component (the default).
	PartReal Part = iota
	// PartImag inverts the imaginary component.
	PartImag
)

// Objective selects how a candidate filter's error curve is reduced
// to the scalar the search minimizes.
type Objective int

const (
	// MinimizeAmplitude scores a candidate by the smallest amplitude
	// it recovers reliably before breakdown (the default).
	MinimizeAmplitude Objective = iota
	// MaximizeRange scores a candidate by 1/r at the breakdown point,
	// so that minimizing the score maximizes the usable range.
	MaximizeRange
)

// Verbosity levels.
const (
	// VerbSilent prints nothing.
	VerbSilent = 0
	// VerbWarnings prints non-fatal warnings.
	VerbWarnings = 1
	// VerbProgress additionally prints progress and the result.
	VerbProgress = 2
)

// AxisSpec describes one search axis: either a single value or a
// (start, stop, count) range of evenly spaced values, endpoints
// included.
type AxisSpec []float64

// Single returns a one-value axis.
func Single(v float64) AxisSpec { return AxisSpec{v} }

// Span returns a (start, stop, count) axis of count evenly spaced
// values spanning [start, stop] inclusive.
func Span(start, stop float64, count int) AxisSpec {
	return AxisSpec{start, stop, float64(count)}
}

// EvalRange controls how the inversion's evaluation points are
// derived from the filter base: [1/max(base), 1/min(base)] extended
// by AddLeft and AddRight decades, sampled with Factor*n points.
type EvalRange struct {
	AddLeft  float64
	AddRight float64
	Factor   int
}

// Default design parameters.
const (
	// DefaultTolerance is the relative error up to which a
	// transformation counts as reproduced (1%).
	DefaultTolerance = 0.01

	defaultRStart = 0
	defaultRStop  = 5
	defaultRCount = 1000

	defaultAddLeft  = 1
	defaultAddRight = 1
	defaultFactor   = 2
)

// Config holds the inputs of one filter design run.
type Config struct {
	// Length is the filter length n.
	Length int

	// Spacing and Shift are the search axes for the two
	// length-independent shape parameters of the filter base.
	Spacing AxisSpec
	Shift   AxisSpec

	// Inversion holds the transform pairs the coefficients are solved
	// from. The joint KernelJ2 pair is not allowed here.
	Inversion []TransformPair

	// Check holds the transform pairs the goodness is evaluated
	// against. Defaults to Inversion.
	Check []TransformPair

	// R holds the evaluation points of the goodness check. Defaults
	// to 1000 log-spaced points in [1, 1e5], which is generous for
	// most transform pairs.
	R []float64

	// EvalRange extends the inversion's evaluation range. The zero
	// value means one decade on each side with 2x oversampling.
	EvalRange EvalRange

	// Part selects the complex component used for the inversion.
	Part Part

	// Objective selects the score reduction. Defaults to
	// MinimizeAmplitude.
	Objective Objective

	// Tolerance is the relative error bound of the goodness check.
	// Defaults to DefaultTolerance.
	Tolerance float64

	// Name names the designed filter. Defaults to "dlf_<n>".
	Name string

	// Refine continues the search from the best grid point with a
	// derivative-free local minimizer.
	Refine bool

	// Method overrides the refinement minimizer. Nil with Refine set
	// selects Nelder-Mead.
	Method optimize.Method

	// Workers > 1 evaluates grid points on that many goroutines. The
	// result is independent of the worker count.
	Workers int

	// Verbosity is one of VerbSilent, VerbWarnings, VerbProgress.
	Verbosity int

	// Output receives progress and result printing. Defaults to
	// os.Stdout.
	Output io.Writer

	// Store, if non-nil, receives the designed filter under Name.
	Store FilterStore

	// Plotter, if non-nil, is handed the final filter and search
	// result for visualization.
	Plotter Plotter
}

// Result is the full outcome of a design run.
type Result struct {
	// Spacing and Shift are the winning parameters.
	Spacing float64 `json:"spacing"`
	Shift   float64 `json:"shift"`

	// Score is the winning candidate's reduction value: the minimal
	// reliable amplitude for MinimizeAmplitude, or 1/r(breakdown) for
	// MaximizeRange.
	Score float64 `json:"score"`

	// SpacingValues and ShiftValues are the materialized grid axes.
	SpacingValues []float64 `json:"spacingValues"`
	ShiftValues   []float64 `json:"shiftValues"`

	// Surface holds the score of every grid point, indexed
	// [spacing][shift].
	Surface [][]float64 `json:"surface"`

	// Evaluations counts all candidate evaluations, refinement
	// included.
	Evaluations int `json:"evaluations"`

	// Refined reports whether local refinement improved on the best
	// grid point.
	Refined bool `json:"refined"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`
}

// Design searches the (spacing, shift) parameter plane for the
// digital linear filter of the configured length that reproduces the
// supplied transform pairs most accurately, and returns the filter
// recomputed at the winning parameters together with the full search
// result.
//
// The search is exhaustive over the configured grid, optionally
// followed by local refinement. The returned filter is a fresh
// full-precision computation at the winning parameters, not one of
// the probe filters built during the search.
func Design(cfg *Config) (*Filter, *Result, error) {
	start := time.Now()

	if cfg == nil {
		return nil, nil, fmt.Errorf("dlf: nil config")
	}
	if cfg.Length < 1 {
		return nil, nil, fmt.Errorf("dlf: filter length must be positive, got %d", cfg.Length)
	}
	if len(cfg.Inversion) == 0 {
		return nil, nil, fmt.Errorf("dlf: at least one inversion pair is required")
	}
	for _, p := range cfg.Inversion {
		if p.Kernel() == KernelJ2 {
			return nil, nil, fmt.Errorf("%w: the joint %q pair is check-only and cannot be inverted",
				ErrInvalidTransform, KernelJ2)
		}
	}

	check := cfg.Check
	if len(check) == 0 {
		check = cfg.Inversion
	}
	if err := validateJointCheck(cfg.Inversion, check); err != nil {
		return nil, nil, err
	}

	spacingAxis, err := axis.Parse("spacing", cfg.Spacing)
	if err != nil {
		return nil, nil, fmt.Errorf("dlf: %w", err)
	}
	shiftAxis, err := axis.Parse("shift", cfg.Shift)
	if err != nil {
		return nil, nil, fmt.Errorf("dlf: %w", err)
	}

	r := cfg.R
	if len(r) == 0 {
		r = mathutil.Logspace(defaultRStart, defaultRStop, defaultRCount)
	}

	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	ext := cfg.EvalRange
	if ext.Factor < 1 {
		ext = EvalRange{AddLeft: defaultAddLeft, AddRight: defaultAddRight, Factor: defaultFactor}
	}
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("dlf_%d", cfg.Length)
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	params := &engine.SearchParams{
		N:             cfg.Length,
		SpacingValues: spacingAxis.Values(),
		ShiftValues:   shiftAxis.Values(),
		Inversion:     enginePairs(cfg.Inversion),
		Check:         engineChecks(check, r),
		R:             r,
		Ext:           engine.RangeExt(ext),
		Tolerance:     tolerance,
		Part:          engine.Part(cfg.Part),
		Objective:     engine.Objective(cfg.Objective),
		Workers:       cfg.Workers,
		Log:           newRunLog(cfg.Verbosity, out, spacingAxis.Count()*shiftAxis.Count(), start),
	}

	var method optimize.Method
	if cfg.Refine {
		method = cfg.Method
		if method == nil {
			method = &optimize.NelderMead{}
		}
	}

	search := engine.Search(params, method)
	if cfg.Verbosity >= VerbProgress {
		fmt.Fprintln(out)
	}

	// The probes built during the search are discarded; the returned
	// filter is recomputed at the winning parameters.
	final := engine.ComputeFilter(cfg.Length, search.Spacing, search.Shift,
		params.Inversion, params.Ext, params.Part)

	filt := &Filter{
		Name:         name,
		Base:         final.Base,
		Factor:       final.Factor,
		Coefficients: make(map[Kernel][]float64, len(final.Coeff)),
	}
	for tag, coeff := range final.Coeff {
		filt.Coefficients[Kernel(tag)] = coeff
	}

	res := &Result{
		Spacing:       search.Spacing,
		Shift:         search.Shift,
		Score:         search.Score,
		SpacingValues: params.SpacingValues,
		ShiftValues:   params.ShiftValues,
		Surface:       search.Surface,
		Evaluations:   search.Evaluations,
		Refined:       search.Refined,
		Elapsed:       time.Since(start),
	}

	if cfg.Verbosity >= VerbProgress {
		PrintResult(out, filt, res, cfg.Objective)
	}
	if cfg.Plotter != nil {
		cfg.Plotter.PlotResult(filt, res, cfg.Objective)
	}
	if cfg.Store != nil {
		if err := cfg.Store.Save(name, filt, res); err != nil {
			return nil, nil, fmt.Errorf("dlf: saving filter %q: %w", name, err)
		}
	}

	return filt, res, nil
}

// validateJointCheck ensures a joint check pair can actually be
// scored: it combines the j0 and j1 coefficient arrays, so both
// kernels must be among the inversion pairs.
func validateJointCheck(inversion, check []TransformPair) error {
	joint := false
	for _, p := range check {
		if p.Kernel() == KernelJ2 {
			joint = true
			break
		}
	}
	if !joint {
		return nil
	}
	var hasJ0, hasJ1 bool
	for _, p := range inversion {
		switch p.Kernel() {
		case KernelJ0:
			hasJ0 = true
		case KernelJ1:
			hasJ1 = true
		}
	}
	if !hasJ0 || !hasJ1 {
		return fmt.Errorf("%w: a joint %q check pair requires %q and %q inversion pairs",
			ErrInvalidTransform, KernelJ2, KernelJ0, KernelJ1)
	}
	return nil
}

func enginePairs(pairs []TransformPair) []engine.Pair {
	out := make([]engine.Pair, len(pairs))
	for i, p := range pairs {
		out[i] = engine.Pair{
			Tag: string(p.Kernel()),
			LHS: p.LHS,
			RHS: p.RHS,
		}
		if jp, ok := p.(JointPair); ok {
			out[i].Joint = jp.JointLHS
		}
	}
	return out
}

// engineChecks converts the check pairs, pre-evaluating every
// reference transform at the check points once per run.
func engineChecks(pairs []TransformPair, r []float64) []engine.CheckPair {
	out := make([]engine.CheckPair, len(pairs))
	for i, p := range pairs {
		out[i] = engine.CheckPair{
			Tag: string(p.Kernel()),
			LHS: p.LHS,
			Ref: p.RHS(r),
		}
		if jp, ok := p.(JointPair); ok {
			out[i].Joint = jp.JointLHS
		}
	}
	return out
}

func newRunLog(verbosity int, out io.Writer, total int, start time.Time) *engine.RunLog {
	log := &engine.RunLog{Total: total}
	if verbosity >= VerbWarnings {
		log.OnWarn = func(msg string) {
			fmt.Fprintf(out, "* WARNING :: %s\n", msg)
		}
	}
	if verbosity >= VerbProgress {
		printer := newProgressPrinter(out, start)
		log.OnEvaluate = printer.report
	}
	return log
}
