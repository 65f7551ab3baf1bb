package engine

import (
	"fmt"
	"math"
)

// IRROptions bounds the root finder. The solver never loops unbounded: a
// fixed iteration budget and an explicit bracket keep a single property from
// stalling a worker.
type IRROptions struct {
	BracketLow    float64
	BracketHigh   float64
	Tolerance     float64
	MaxIterations int
}

// DefaultIRROptions brackets annual rates between -99% and +1000%, with an
// NPV tolerance of 1e-6.
func DefaultIRROptions() IRROptions {
	return IRROptions{
		BracketLow:    -0.99,
		BracketHigh:   10.0,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// NPV discounts a cash-flow series at the given annual rate. flows[0] is the
// time-zero flow (the negative initial equity).
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	for t, cf := range flows {
		total += cf / math.Pow(1+rate, float64(t))
	}
	return total
}

// SolveIRR finds the discount rate that zeroes the NPV of flows by bisection.
// Returns (rate, true, nil) on convergence. When the NPV has no sign change
// inside the bracket there is no root to report: the IRR is undefined and the
// second return is false, which is not an error. Exhausting the iteration
// budget with a valid bracket is ErrIRRNotConverged.
func SolveIRR(flows []float64, opts IRROptions) (float64, bool, error) {
	if len(flows) < 2 {
		return 0, false, fmt.Errorf("%w: need at least two cash flows", ErrIRRNotConverged)
	}
	if opts.MaxIterations <= 0 || opts.BracketHigh <= opts.BracketLow {
		return 0, false, fmt.Errorf("%w: malformed solver options", ErrIRRNotConverged)
	}

	lo, hi := opts.BracketLow, opts.BracketHigh
	fLo := NPV(lo, flows)
	fHi := NPV(hi, flows)

	if fLo == 0 {
		return lo, true, nil
	}
	if fHi == 0 {
		return hi, true, nil
	}
	if fLo*fHi > 0 {
		// No sign change: report undefined rather than a spurious root.
		return 0, false, nil
	}

	var mid float64
	for i := 0; i < opts.MaxIterations; i++ {
		mid = (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < opts.Tolerance {
			return mid, true, nil
		}
		if fLo*fMid < 0 {
			hi = mid
			fHi = fMid
		} else {
			lo = mid
			fLo = fMid
		}
	}
	return 0, false, fmt.Errorf("%w: after %d iterations |NPV| still above %.1e", ErrIRRNotConverged, opts.MaxIterations, opts.Tolerance)
}
