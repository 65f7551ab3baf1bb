package engine

import (
	"fmt"
	"math"
)

const (
	percentDivisor = 100.0
	monthsPerYear  = 12
)

func percentToDecimal(percent float64) float64 {
	return percent / percentDivisor
}

// MortgageSchedule describes a fixed-rate loan sized from the list price and
// down-payment fraction, amortized monthly. Balances are tracked through the
// model's exit horizon, not the full loan term.
type MortgageSchedule struct {
	LoanAmount        float64   `json:"loan_amount"`
	MonthlyPayment    float64   `json:"monthly_payment"`
	AnnualDebtService float64   `json:"annual_debt_service"`
	FinalLoanBalance  float64   `json:"final_loan_balance"`
	TotalPrincipalPaid float64  `json:"total_principal_paid"`
	// PrincipalPaidByYear and BalanceByYear have one entry per horizon year,
	// in ascending year order.
	PrincipalPaidByYear []float64 `json:"principal_paid_by_year"`
	BalanceByYear       []float64 `json:"balance_by_year"`
}

// ComputeMortgage sizes the loan and computes the periodic payment and the
// outstanding balance at each horizon year. annualRatePct is a percentage
// (7.5 means 7.5%); downPaymentPct is a fraction in [0,1].
func ComputeMortgage(listPrice, downPaymentPct, annualRatePct float64, termYears, horizonYears int) (*MortgageSchedule, error) {
	if listPrice <= 0 {
		return nil, fmt.Errorf("%w: list price must be positive, got %.2f", ErrInvalidFinancingInput, listPrice)
	}
	if annualRatePct < 0 {
		return nil, fmt.Errorf("%w: negative interest rate %.4f", ErrInvalidFinancingInput, annualRatePct)
	}
	if termYears < 0 {
		return nil, fmt.Errorf("%w: negative loan term %d", ErrInvalidFinancingInput, termYears)
	}
	if downPaymentPct < 0 || downPaymentPct > 1 {
		return nil, fmt.Errorf("%w: down payment fraction %.4f outside [0,1]", ErrInvalidFinancingInput, downPaymentPct)
	}
	if horizonYears <= 0 {
		return nil, fmt.Errorf("%w: horizon must be at least one year, got %d", ErrInvalidFinancingInput, horizonYears)
	}

	termMonths := termYears * monthsPerYear
	if termMonths == 0 {
		return nil, fmt.Errorf("%w: zero amortization periods", ErrInvalidTerm)
	}

	loanAmount := listPrice * (1 - downPaymentPct)
	monthlyRate := percentToDecimal(annualRatePct) / monthsPerYear

	var monthlyPayment float64
	if monthlyRate == 0 {
		// Zero interest: straight-line principal repayment.
		monthlyPayment = loanAmount / float64(termMonths)
	} else {
		monthlyPayment = loanAmount * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
	}
	if math.IsNaN(monthlyPayment) || math.IsInf(monthlyPayment, 0) {
		return nil, fmt.Errorf("%w: non-finite payment for term %d months", ErrInvalidTerm, termMonths)
	}

	sched := &MortgageSchedule{
		LoanAmount:          loanAmount,
		MonthlyPayment:      monthlyPayment,
		AnnualDebtService:   monthlyPayment * monthsPerYear,
		PrincipalPaidByYear: make([]float64, horizonYears),
		BalanceByYear:       make([]float64, horizonYears),
	}

	prev := loanAmount
	for year := 1; year <= horizonYears; year++ {
		bal := balanceAtPeriod(loanAmount, monthlyPayment, monthlyRate, year*monthsPerYear, termMonths)
		sched.PrincipalPaidByYear[year-1] = prev - bal
		sched.BalanceByYear[year-1] = bal
		prev = bal
	}
	sched.FinalLoanBalance = sched.BalanceByYear[horizonYears-1]
	sched.TotalPrincipalPaid = loanAmount - sched.FinalLoanBalance

	return sched, nil
}

// balanceAtPeriod evaluates the standard amortization-balance closed form
// after k monthly payments, clamped to zero once the loan is repaid.
func balanceAtPeriod(principal, payment, monthlyRate float64, k, termMonths int) float64 {
	if k >= termMonths {
		return 0
	}
	var bal float64
	if monthlyRate == 0 {
		bal = principal - payment*float64(k)
	} else {
		growth := math.Pow(1+monthlyRate, float64(k))
		bal = principal*growth - payment*(growth-1)/monthlyRate
	}
	return math.Max(bal, 0)
}
