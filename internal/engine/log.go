package engine

import (
	"fmt"
	"sync/atomic"
)

// RunLog accumulates progress counters and one-shot warnings for a
// single design run. It is reset by creating a fresh instance per run
// and is safe for concurrent use by parallel grid workers.
type RunLog struct {
	// Total is the number of grid points the global search will visit.
	// Refinement evaluations count past this total.
	Total int

	// OnEvaluate, if non-nil, is called after every candidate
	// evaluation with the running call count.
	OnEvaluate func(done, total int)

	// OnWarn, if non-nil, receives non-fatal warnings.
	OnWarn func(msg string)

	count  atomic.Int64
	warned atomic.Bool
}

// Evaluated records one candidate evaluation.
func (l *RunLog) Evaluated() {
	if l == nil {
		return
	}
	done := l.count.Add(1)
	if l.OnEvaluate != nil {
		l.OnEvaluate(int(done), l.Total)
	}
}

// Evaluations returns the number of candidate evaluations so far.
func (l *RunLog) Evaluations() int {
	if l == nil {
		return 0
	}
	return int(l.count.Load())
}

// WarnShortRange records, once per run, that no breakdown point was
// found within the evaluation range.
func (l *RunLog) WarnShortRange(tolerance float64) {
	if l == nil {
		return
	}
	if l.warned.CompareAndSwap(false, true) && l.OnWarn != nil {
		l.OnWarn(fmt.Sprintf("all data have error < %g; choose larger r or raise the error level", tolerance))
	}
}

// ShortRangeWarned reports whether the short-range warning fired.
func (l *RunLog) ShortRangeWarned() bool {
	if l == nil {
		return false
	}
	return l.warned.Load()
}
