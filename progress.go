package dlf

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Progress printing thresholds.
const (
	// etaMinGrid is the grid size above which percentage and
	// remaining-time estimates are printed.
	etaMinGrid = 100

	percentScale = 100
)

// progressPrinter renders grid-search progress as an in-place updated
// line: call count, percentage and a remaining-time estimate for
// large grids, and a separate counter once refinement evaluations
// run past the grid total.
type progressPrinter struct {
	w     io.Writer
	start time.Time

	mu       sync.Mutex
	lastPct  int
	lastLine int
}

func newProgressPrinter(w io.Writer, start time.Time) *progressPrinter {
	return &progressPrinter{w: w, start: start, lastPct: -1}
}

// report is called after every candidate evaluation. It is safe for
// concurrent use by parallel grid workers.
func (p *progressPrinter) report(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if done > total {
		// Local refinement runs past the grid total.
		fmt.Fprintf(p.w, "   refine fct calls : %d\r", done-total)
		return
	}

	pct := done * percentScale / total
	if pct <= p.lastPct && done != total {
		return
	}
	p.lastPct = pct

	line := fmt.Sprintf("   grid fct calls  : %d/%d", done, total)
	if total > etaMinGrid && pct > 0 {
		sec := time.Since(p.start).Seconds()
		left := time.Duration(sec*float64(percentScale)/float64(pct)-sec) * time.Second
		line += fmt.Sprintf(" (%d %%); est: %s", pct, left)
	}
	// Pad to wipe a longer previous line.
	if pad := p.lastLine - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	p.lastLine = len(line)
	fmt.Fprintf(p.w, "%s\r", line)

	if done == total {
		fmt.Fprintf(p.w, "\n   grid fct calls  : %d\n", total)
	}
}

// PrintResult writes a summary of a designed filter: length, score,
// winning spacing and shift, and the base extent. Without a search
// result the parameters are recovered from the filter's base points.
func PrintResult(w io.Writer, f *Filter, res *Result, objective Objective) {
	fmt.Fprintf(w, "   Filter length   : %d\n", f.Length())
	fmt.Fprintf(w, "   Best filter\n")

	var spacing, shift float64
	if res != nil {
		if objective == MinimizeAmplitude {
			fmt.Fprintf(w, "   > Min field     : %g\n", res.Score)
		} else {
			fmt.Fprintf(w, "   > Max r         : %g\n", 1/res.Score)
		}
		spacing, shift = res.Spacing, res.Shift
	} else {
		spacing, shift = f.SpacingShift()
	}

	fmt.Fprintf(w, "   > Spacing       : %.10g\n", spacing)
	fmt.Fprintf(w, "   > Shift         : %.10g\n", shift)
	fmt.Fprintf(w, "   > Base min/max  : %e / %e\n", f.Base[0], f.Base[len(f.Base)-1])
}
