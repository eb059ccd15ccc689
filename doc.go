// Package dlf designs digital linear filters (DLFs) for the Hankel
// and Fourier transforms, or any linear transform with a known
// kernel/transform pair.
//
// A DLF approximates an integral transform as a finite dot product: a
// short set of log-spaced base points and matching weights such that
//
//	F(r) ≈ Σ K(base[i]/r) · w[i] / r
//
// reproduces the transform F over a usable range of r. The design
// method is direct matrix inversion (Kong, 2007; Key, 2012): for a
// candidate sample-point geometry the weights follow from a
// least-squares solve against a transform pair whose closed form is
// known, and the geometry itself — the log-spacing and origin shift
// of the base — is found by exhaustive search over a parameter grid,
// optionally refined with a derivative-free local minimizer.
//
// # Quick Start
//
// Design a 201-point Hankel J0 filter over a spacing/shift grid:
//
//	filt, res, err := dlf.Design(&dlf.Config{
//	    Length:    201,
//	    Spacing:   dlf.Span(0.02, 0.1, 20),
//	    Shift:     dlf.Span(-3, 0, 20),
//	    Inversion: []dlf.TransformPair{dlf.J0Pair1(1)},
//	    Refine:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Spacing, res.Shift, filt.Coeff(dlf.KernelJ0))
//
// Or use a convenience designer:
//
//	filt, err := dlf.DesignHankelJ0(201, dlf.Span(0.02, 0.1, 20), dlf.Span(-3, 0, 20))
//
// # Transform Pairs
//
// Filters are calibrated and validated against transform pairs — a
// kernel function and its known transform. The package ships the
// classic analytic catalogue (J0Pair1..5, J1Pair1..5, SinPair1..3,
// CosPair1..3); NewAnalytic and NewNumeric build pairs from
// closed-form functions or from the responses of an external forward
// modeller. The joint j0/j1 pair built by NewJoint validates both
// Hankel kernels at once and is usable for goodness checks only.
//
// # Scoring
//
// A candidate filter is scored by where its approximation breaks
// down: the earliest evaluation point past which the relative error
// exceeds the tolerance (isolated spikes near zero crossings of the
// reference are skipped). MinimizeAmplitude searches for the filter
// recovering the smallest field amplitudes; MaximizeRange for the
// filter with the largest usable range. With several check pairs the
// hardest pair decides.
//
// # Persistence and Observability
//
// Config.Store saves the winning filter under its name; DirStore
// implements the store as one JSON file per filter. Config.Plotter
// receives the final filter and the full score surface for
// visualization. Verbosity levels control warning and progress
// printing.
//
// # Concurrency
//
// Grid points are independent, so Config.Workers > 1 spreads the
// global search over that many goroutines; the outcome is identical
// to the sequential search, including tie-breaking. Local refinement
// is inherently sequential.
package dlf
