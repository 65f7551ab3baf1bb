package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCashFlows_Schedule(t *testing.T) {
	flows, err := ProjectCashFlows(3500, 7500, 400, 3.2, 43499, 5)
	require.NoError(t, err)
	require.Len(t, flows, 5)

	baseRent := 3500.0 * 12
	for i, cf := range flows {
		assert.Equal(t, i+1, cf.Year)
		// Year-n rent compounds from year 1 at the growth rate.
		wantRent := baseRent * math.Pow(1.032, float64(i))
		assert.InDelta(t, wantRent, cf.AnnualRent, 1e-6)
		// Tax and HOA held flat across the horizon.
		assert.InDelta(t, cf.AnnualRent-7500-4800, cf.NOI, 1e-6)
		assert.Equal(t, cf.NOI, cf.UCF)
		assert.InDelta(t, cf.UCF-43499, cf.LCF, 1e-6)
	}
}

func TestProjectCashFlows_NOIMonotonicUnderGrowth(t *testing.T) {
	for _, growth := range []float64{0, 1.5, 3.2, 8} {
		flows, err := ProjectCashFlows(2000, 3000, 250, growth, 10000, 7)
		require.NoError(t, err)
		for i := 1; i < len(flows); i++ {
			assert.GreaterOrEqual(t, flows[i].NOI, flows[i-1].NOI,
				"growth %.1f: NOI must be non-decreasing", growth)
		}
	}
}

func TestProjectCashFlows_NegativeNOIPassesThrough(t *testing.T) {
	// Rent does not cover tax and HOA: a valid, reportable loss.
	flows, err := ProjectCashFlows(500, 9000, 300, 2, 5000, 5)
	require.NoError(t, err)
	assert.Negative(t, flows[0].NOI)
	assert.Negative(t, flows[0].LCF)
	assert.InDelta(t, 6000-9000-3600, flows[0].NOI, 1e-6)
}

func TestProjectCashFlows_VariableHorizon(t *testing.T) {
	flows, err := ProjectCashFlows(1800, 2400, 0, 3, 0, 10)
	require.NoError(t, err)
	assert.Len(t, flows, 10)
	assert.Equal(t, 10, flows[9].Year)
}

func TestProjectCashFlows_InvalidInputs(t *testing.T) {
	_, err := ProjectCashFlows(2000, 3000, 250, 3, 10000, 0)
	require.ErrorIs(t, err, ErrInvalidFinancingInput)

	_, err = ProjectCashFlows(-1, 3000, 250, 3, 10000, 5)
	require.ErrorIs(t, err, ErrInvalidFinancingInput)

	_, err = ProjectCashFlows(2000, 3000, 250, -0.5, 10000, 5)
	require.ErrorIs(t, err, ErrInvalidFinancingInput)
}
