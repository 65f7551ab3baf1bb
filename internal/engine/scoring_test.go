package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseMetrics() ReturnMetrics {
	return ReturnMetrics{
		CapRate:     5.0,
		CashOnCash:  4.0,
		IRR:         9.0,
		IRRDefined:  true,
		TotalReturn: 80.0,
	}
}

func TestScore_WeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, WeightCapRate+WeightCashOnCash+WeightIRR+WeightTotalReturn, 1e-12)
}

func TestScore_Bounded(t *testing.T) {
	cfg := DefaultScoringConfig()

	low := cfg.Score(ReturnMetrics{CapRate: -10, CashOnCash: -50, IRR: -80, IRRDefined: true, TotalReturn: -300})
	assert.Equal(t, 0.0, low)

	high := cfg.Score(ReturnMetrics{CapRate: 50, CashOnCash: 80, IRR: 90, IRRDefined: true, TotalReturn: 900})
	assert.Equal(t, MaxScore, high)

	mid := cfg.Score(baseMetrics())
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, MaxScore)
}

// Improving any single metric while holding the others fixed never lowers
// the composite score.
func TestScore_MonotonicInEachMetric(t *testing.T) {
	cfg := DefaultScoringConfig()
	bump := []func(*ReturnMetrics, float64){
		func(m *ReturnMetrics, d float64) { m.CapRate += d },
		func(m *ReturnMetrics, d float64) { m.CashOnCash += d },
		func(m *ReturnMetrics, d float64) { m.IRR += d },
		func(m *ReturnMetrics, d float64) { m.TotalReturn += d },
	}
	names := []string{"cap_rate", "cash_on_cash", "irr", "total_return"}

	for i, apply := range bump {
		prev := cfg.Score(baseMetrics())
		for _, delta := range []float64{0.5, 2, 10, 100} {
			m := baseMetrics()
			apply(&m, delta)
			got := cfg.Score(m)
			assert.GreaterOrEqual(t, got, prev, "%s +%.1f must not lower the score", names[i], delta)
			prev = got
		}
	}
}

func TestScore_UndefinedIRRScoresAtBandFloor(t *testing.T) {
	cfg := DefaultScoringConfig()

	undefined := baseMetrics()
	undefined.IRRDefined = false
	undefined.IRR = 0

	floor := baseMetrics()
	floor.IRR = cfg.IRR.Low

	assert.InDelta(t, cfg.Score(floor), cfg.Score(undefined), 1e-12)
}

func TestNormalize_LinearWithinBand(t *testing.T) {
	b := ScoreBand{Low: 2, High: 8}
	assert.Equal(t, 0.0, b.normalize(2))
	assert.Equal(t, MaxScore, b.normalize(8))
	assert.InDelta(t, 5.0, b.normalize(5), 1e-12)
}
