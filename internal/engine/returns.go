package engine

import (
	"fmt"
	"math"
)

// ReturnMetrics are the point-in-time ratios and the holding-period returns.
// Percent-based metrics are stored already multiplied (5.6 means 5.6%).
type ReturnMetrics struct {
	CapRate          float64 `json:"cap_rate"`
	CashOnCash       float64 `json:"cash_on_cash"`
	ExitValue        float64 `json:"exit_value"`
	EquityAtExit     float64 `json:"equity_at_exit"`
	UnderwaterAtExit bool    `json:"underwater_at_exit"`
	TotalReturn      float64 `json:"total_return"`
	IRR              float64 `json:"irr"`
	IRRDefined       bool    `json:"irr_defined"`
}

// ComputeReturns derives the return metrics from the projected cash flows and
// the loan balance at exit. exitCapRatePct is a percentage; cashEquity is the
// cash invested at closing (down payment plus transaction costs).
//
// The IRR is solved over {-cashEquity, LCF_1, ..., LCF_n + equityAtExit}.
// An undefined IRR (no root in the bracket) is reported as such, not invented.
func ComputeReturns(listPrice, cashEquity float64, cashFlows []CashFlowYear, finalLoanBalance, exitCapRatePct float64, opts IRROptions) (*ReturnMetrics, error) {
	if len(cashFlows) == 0 {
		return nil, fmt.Errorf("%w: empty cash-flow schedule", ErrIncompleteAudit)
	}
	if listPrice <= 0 {
		return nil, fmt.Errorf("%w: list price must be positive", ErrInvalidFinancingInput)
	}
	if cashEquity <= 0 {
		return nil, fmt.Errorf("%w: cash equity %.2f must be positive", ErrInvalidEquity, cashEquity)
	}
	exitCapRate := percentToDecimal(exitCapRatePct)
	if exitCapRate <= 0 {
		return nil, fmt.Errorf("%w: exit cap rate %.4f must be positive", ErrInvalidExitAssumption, exitCapRatePct)
	}

	first := cashFlows[0]
	last := cashFlows[len(cashFlows)-1]

	m := &ReturnMetrics{
		CapRate:    first.NOI / listPrice * percentDivisor,
		CashOnCash: first.LCF / cashEquity * percentDivisor,
		ExitValue:  last.NOI / exitCapRate,
	}

	// Reported equity is floored at zero; the underwater flag carries the
	// information instead of a silent negative number.
	rawEquity := m.ExitValue - finalLoanBalance
	m.UnderwaterAtExit = rawEquity < 0
	m.EquityAtExit = math.Max(rawEquity, 0)

	lcfSum := 0.0
	flows := make([]float64, 0, len(cashFlows)+1)
	flows = append(flows, -cashEquity)
	for _, cf := range cashFlows {
		lcfSum += cf.LCF
		flows = append(flows, cf.LCF)
	}
	flows[len(flows)-1] += m.EquityAtExit

	m.TotalReturn = (lcfSum + m.EquityAtExit - cashEquity) / cashEquity * percentDivisor

	rate, defined, err := SolveIRR(flows, opts)
	if err != nil {
		return nil, err
	}
	m.IRRDefined = defined
	if defined {
		m.IRR = rate * percentDivisor
	}
	return m, nil
}
