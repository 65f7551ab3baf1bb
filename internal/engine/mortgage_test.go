package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMortgage_ReferenceLoan(t *testing.T) {
	// 750k at 40% down, 7.5% over 20 years, five-year hold.
	sched, err := ComputeMortgage(750000, 0.4, 7.5, 20, 5)
	require.NoError(t, err)

	assert.InDelta(t, 450000, sched.LoanAmount, 0.01)
	// Annuity payment for 450k at 0.625%/month over 240 periods.
	assert.InDelta(t, 3624.9, sched.MonthlyPayment, 1.0)
	assert.InDelta(t, sched.MonthlyPayment*12, sched.AnnualDebtService, 1e-9)

	require.Len(t, sched.BalanceByYear, 5)
	require.Len(t, sched.PrincipalPaidByYear, 5)
	prev := sched.LoanAmount
	for i, bal := range sched.BalanceByYear {
		assert.Less(t, bal, prev, "balance must decrease year over year (year %d)", i+1)
		assert.GreaterOrEqual(t, bal, 0.0)
		prev = bal
	}
	assert.Equal(t, sched.BalanceByYear[4], sched.FinalLoanBalance)
	assert.InDelta(t, sched.LoanAmount-sched.FinalLoanBalance, sched.TotalPrincipalPaid, 1e-6)
}

// The closed-form balance must agree with a month-by-month amortization
// simulation, and principal components must conserve the loan amount.
func TestComputeMortgage_ClosedFormMatchesSimulation(t *testing.T) {
	sched, err := ComputeMortgage(300000, 0.25, 6.0, 30, 5)
	require.NoError(t, err)

	monthlyRate := 6.0 / 100 / 12
	balance := sched.LoanAmount
	simPrincipal := 0.0
	for year := 1; year <= 5; year++ {
		for m := 0; m < 12; m++ {
			interest := balance * monthlyRate
			principal := sched.MonthlyPayment - interest
			balance -= principal
			simPrincipal += principal
		}
		assert.InDelta(t, balance, sched.BalanceByYear[year-1], 0.01, "year %d balance", year)
	}
	assert.InDelta(t, simPrincipal, sched.TotalPrincipalPaid, 0.01)
}

func TestComputeMortgage_FullTermConservation(t *testing.T) {
	// Holding to the full term repays the loan exactly: the sum of all
	// principal components equals the original loan amount.
	sched, err := ComputeMortgage(420000, 0.2, 5.25, 15, 15)
	require.NoError(t, err)

	assert.InDelta(t, 0, sched.FinalLoanBalance, 1e-6)
	total := 0.0
	for _, p := range sched.PrincipalPaidByYear {
		total += p
	}
	assert.InDelta(t, sched.LoanAmount, total, 1e-6)
}

func TestComputeMortgage_ZeroRateStraightLine(t *testing.T) {
	sched, err := ComputeMortgage(150000, 0.2, 0, 10, 5)
	require.NoError(t, err)

	// 120k over 120 months with no interest.
	assert.InDelta(t, 1000, sched.MonthlyPayment, 1e-9)
	assert.InDelta(t, 120000-12000, sched.BalanceByYear[0], 1e-6)
	assert.InDelta(t, 120000-60000, sched.FinalLoanBalance, 1e-6)
}

func TestComputeMortgage_InvalidInputs(t *testing.T) {
	cases := []struct {
		name                      string
		price, down, rate         float64
		term, horizon             int
		want                      error
	}{
		{"zero price", 0, 0.3, 6, 30, 5, ErrInvalidFinancingInput},
		{"negative price", -1, 0.3, 6, 30, 5, ErrInvalidFinancingInput},
		{"negative rate", 100000, 0.3, -1, 30, 5, ErrInvalidFinancingInput},
		{"negative term", 100000, 0.3, 6, -1, 5, ErrInvalidFinancingInput},
		{"down payment above one", 100000, 1.2, 6, 30, 5, ErrInvalidFinancingInput},
		{"negative down payment", 100000, -0.1, 6, 30, 5, ErrInvalidFinancingInput},
		{"zero horizon", 100000, 0.3, 6, 30, 0, ErrInvalidFinancingInput},
		{"zero term", 100000, 0.3, 6, 0, 5, ErrInvalidTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeMortgage(tc.price, tc.down, tc.rate, tc.term, tc.horizon)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
