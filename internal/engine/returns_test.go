package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlows() []CashFlowYear {
	flows := make([]CashFlowYear, 5)
	nois := []float64{30000, 30750, 31500, 32250, 33000}
	lcfs := []float64{8000, 8750, 9500, 10250, 11000}
	for i := range flows {
		flows[i] = CashFlowYear{Year: i + 1, AnnualRent: nois[i] + 12000, NOI: nois[i], UCF: nois[i], LCF: lcfs[i]}
	}
	return flows
}

func TestComputeReturns_Ratios(t *testing.T) {
	m, err := ComputeReturns(500000, 130000, testFlows(), 350000, 6.0, DefaultIRROptions())
	require.NoError(t, err)

	assert.InDelta(t, 6.0, m.CapRate, 1e-9)                 // 30000/500000
	assert.InDelta(t, 8000.0/130000*100, m.CashOnCash, 1e-9)
	assert.InDelta(t, 33000/0.06, m.ExitValue, 1e-6)
	assert.InDelta(t, 33000/0.06-350000, m.EquityAtExit, 1e-6)
	assert.False(t, m.UnderwaterAtExit)

	sumLCF := 8000.0 + 8750 + 9500 + 10250 + 11000
	wantTotal := (sumLCF + m.EquityAtExit - 130000) / 130000 * 100
	assert.InDelta(t, wantTotal, m.TotalReturn, 1e-9)
}

func TestComputeReturns_IRRZeroesNPV(t *testing.T) {
	opts := DefaultIRROptions()
	m, err := ComputeReturns(500000, 130000, testFlows(), 350000, 6.0, opts)
	require.NoError(t, err)
	require.True(t, m.IRRDefined)
	assert.Positive(t, m.IRR)

	flows := []float64{-130000, 8000, 8750, 9500, 10250, 11000 + m.EquityAtExit}
	assert.Less(t, absFloat(NPV(m.IRR/100, flows)), opts.Tolerance)
}

func TestComputeReturns_UnderwaterEquityClampedToZero(t *testing.T) {
	// Loan balance exceeds the exit valuation: report zero equity and flag
	// the condition instead of a silent negative number.
	m, err := ComputeReturns(500000, 130000, testFlows(), 600000, 6.0, DefaultIRROptions())
	require.NoError(t, err)
	assert.Zero(t, m.EquityAtExit)
	assert.True(t, m.UnderwaterAtExit)
}

func TestComputeReturns_UndefinedIRRIsNotAnError(t *testing.T) {
	flows := testFlows()
	for i := range flows {
		flows[i].LCF = -20000
	}
	// All-negative series with no exit equity: NPV has no root anywhere in
	// the bracket, so the IRR is reported undefined.
	m, err := ComputeReturns(500000, 130000, flows, 600000, 6.0, DefaultIRROptions())
	require.NoError(t, err)
	assert.False(t, m.IRRDefined)
	assert.Zero(t, m.IRR)
}

// Ratio metrics are dimensionless: rescaling every currency amount by the
// same constant leaves cap rate, cash-on-cash, total return, and IRR
// unchanged, while absolute-dollar fields scale proportionally.
func TestComputeReturns_CurrencyRescalingInvariance(t *testing.T) {
	const k = 3.7
	base, err := ComputeReturns(500000, 130000, testFlows(), 350000, 6.0, DefaultIRROptions())
	require.NoError(t, err)

	scaled := testFlows()
	for i := range scaled {
		scaled[i].AnnualRent *= k
		scaled[i].NOI *= k
		scaled[i].UCF *= k
		scaled[i].LCF *= k
	}
	got, err := ComputeReturns(500000*k, 130000*k, scaled, 350000*k, 6.0, DefaultIRROptions())
	require.NoError(t, err)

	assert.InDelta(t, base.CapRate, got.CapRate, 1e-9)
	assert.InDelta(t, base.CashOnCash, got.CashOnCash, 1e-9)
	assert.InDelta(t, base.TotalReturn, got.TotalReturn, 1e-9)
	assert.InDelta(t, base.IRR, got.IRR, 1e-6)
	assert.InDelta(t, base.ExitValue*k, got.ExitValue, 1e-4)
}

func TestComputeReturns_InvalidAssumptions(t *testing.T) {
	// Zero exit cap rate must fail, not return infinity.
	_, err := ComputeReturns(500000, 130000, testFlows(), 350000, 0, DefaultIRROptions())
	require.ErrorIs(t, err, ErrInvalidExitAssumption)

	_, err = ComputeReturns(500000, 130000, testFlows(), 350000, -2, DefaultIRROptions())
	require.ErrorIs(t, err, ErrInvalidExitAssumption)

	_, err = ComputeReturns(500000, 0, testFlows(), 350000, 6, DefaultIRROptions())
	require.ErrorIs(t, err, ErrInvalidEquity)

	_, err = ComputeReturns(500000, 130000, nil, 350000, 6, DefaultIRROptions())
	require.ErrorIs(t, err, ErrIncompleteAudit)
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
