package engine

// Scoring reference bands and weights. These are tuning constants, not
// derived facts: they were chosen against market-typical ranges and are
// exposed here so behavioral changes are auditable independently of the
// return calculations. Weights sum to 1.0.
const (
	WeightCapRate     = 0.25
	WeightCashOnCash  = 0.25
	WeightIRR         = 0.30
	WeightTotalReturn = 0.20

	// MaxScore bounds the composite ranking.
	MaxScore = 10.0
)

// ScoreBand is the reference range a metric is normalized against. Values at
// or below Low score 0; at or above High score MaxScore; linear in between.
type ScoreBand struct {
	Low  float64
	High float64
}

// ScoringConfig holds the bands for each metric, all in percent terms.
type ScoringConfig struct {
	CapRate     ScoreBand
	CashOnCash  ScoreBand
	IRR         ScoreBand
	TotalReturn ScoreBand
}

// DefaultScoringConfig covers market-typical ranges: cap rates 2-8%,
// cash-on-cash 0-10%, IRR 0-20%, five-year total return 0-200%.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CapRate:     ScoreBand{Low: 2, High: 8},
		CashOnCash:  ScoreBand{Low: 0, High: 10},
		IRR:         ScoreBand{Low: 0, High: 20},
		TotalReturn: ScoreBand{Low: 0, High: 200},
	}
}

// Score combines the return metrics into a single ranking in [0, MaxScore].
// It is monotonically non-decreasing in every input metric: improving any one
// of cap rate, cash-on-cash, IRR, or total return never lowers the score. An
// undefined IRR scores at the band floor. Used for ordering and display only.
func (cfg ScoringConfig) Score(m ReturnMetrics) float64 {
	irr := cfg.IRR.Low
	if m.IRRDefined {
		irr = m.IRR
	}
	score := WeightCapRate*cfg.CapRate.normalize(m.CapRate) +
		WeightCashOnCash*cfg.CashOnCash.normalize(m.CashOnCash) +
		WeightIRR*cfg.IRR.normalize(irr) +
		WeightTotalReturn*cfg.TotalReturn.normalize(m.TotalReturn)
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// normalize maps a metric onto [0, MaxScore] against the band, clamped at
// both ends so outliers cannot dominate the composite.
func (b ScoreBand) normalize(x float64) float64 {
	if x <= b.Low {
		return 0
	}
	if x >= b.High {
		return MaxScore
	}
	return (x - b.Low) / (b.High - b.Low) * MaxScore
}
