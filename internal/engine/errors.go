package engine

import "errors"

// Calculation failures are input-validation style: they are raised
// synchronously by the stage that detects them and are never retried.
// A property that fails any stage is excluded from the audited set and
// reported to the caller with its specific failure kind.
var (
	// ErrInvalidFinancingInput covers bad price, rate, term, or down-payment
	// fraction on the way into the mortgage or projection stages.
	ErrInvalidFinancingInput = errors.New("invalid financing input")

	// ErrInvalidTerm is a zero-period loan; the annuity formula would not
	// produce a finite payment.
	ErrInvalidTerm = errors.New("invalid loan term")

	// ErrInvalidEquity is a non-positive cash basis; cash-on-cash and IRR
	// are meaningless without money in the deal.
	ErrInvalidEquity = errors.New("invalid cash equity")

	// ErrInvalidExitAssumption is a non-positive exit capitalization rate.
	ErrInvalidExitAssumption = errors.New("invalid exit cap rate")

	// ErrIRRNotConverged means the root finder had a bracket but exhausted
	// its iteration budget before the NPV tolerance was met.
	ErrIRRNotConverged = errors.New("irr solver did not converge")

	// ErrIncompleteAudit means an upstream stage output was missing or
	// inconsistent at assembly time. Partial audits are never built.
	ErrIncompleteAudit = errors.New("incomplete audit inputs")
)

// FailureKind maps a calculation error to a stable machine-readable kind for
// run summaries and API payloads. Unknown errors map to "internal".
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFinancingInput):
		return "invalid_financing_input"
	case errors.Is(err, ErrInvalidTerm):
		return "invalid_term"
	case errors.Is(err, ErrInvalidEquity):
		return "invalid_equity"
	case errors.Is(err, ErrInvalidExitAssumption):
		return "invalid_exit_assumption"
	case errors.Is(err, ErrIRRNotConverged):
		return "irr_not_converged"
	case errors.Is(err, ErrIncompleteAudit):
		return "incomplete_audit"
	default:
		return "internal"
	}
}
