package engine

import (
	"fmt"
	"time"
)

// PropertyAudit is the fully-itemized calculation record for one property:
// the input facts plus every intermediate value from the mortgage,
// projection, and return stages. It is created once per calculation run and
// recomputed wholesale when any input fact changes; it is never patched.
type PropertyAudit struct {
	PropertyID      uint             `json:"property_id"`
	Facts           PropertyFacts    `json:"facts"`
	Schedule        MortgageSchedule `json:"schedule"`
	CashFlows       []CashFlowYear   `json:"cash_flows"`
	Returns         ReturnMetrics    `json:"returns"`
	CashEquity      float64          `json:"cash_equity"`
	TransactionCost float64          `json:"transaction_cost"`
	Ranking         float64          `json:"ranking"`
	ComputedAt      time.Time        `json:"computed_at"`
}

// BuildAudit aggregates the stage outputs into one immutable record. It does
// no computation of its own, but it refuses to assemble from missing or
// inconsistent upstream output so a partial audit can never be persisted.
func BuildAudit(propertyID uint, facts PropertyFacts, schedule *MortgageSchedule, cashFlows []CashFlowYear, returns *ReturnMetrics, cashEquity, transactionCost, ranking float64) (*PropertyAudit, error) {
	if schedule == nil {
		return nil, fmt.Errorf("%w: missing mortgage schedule", ErrIncompleteAudit)
	}
	if returns == nil {
		return nil, fmt.Errorf("%w: missing return metrics", ErrIncompleteAudit)
	}
	if len(cashFlows) == 0 {
		return nil, fmt.Errorf("%w: missing cash-flow schedule", ErrIncompleteAudit)
	}
	if len(schedule.BalanceByYear) != len(cashFlows) {
		return nil, fmt.Errorf("%w: mortgage horizon %d does not match projection horizon %d",
			ErrIncompleteAudit, len(schedule.BalanceByYear), len(cashFlows))
	}
	for i, cf := range cashFlows {
		if cf.Year != i+1 {
			return nil, fmt.Errorf("%w: cash-flow years out of order at index %d", ErrIncompleteAudit, i)
		}
	}
	if cashEquity <= 0 {
		return nil, fmt.Errorf("%w: non-positive cash equity", ErrIncompleteAudit)
	}

	return &PropertyAudit{
		PropertyID:      propertyID,
		Facts:           facts,
		Schedule:        *schedule,
		CashFlows:       cashFlows,
		Returns:         *returns,
		CashEquity:      cashEquity,
		TransactionCost: transactionCost,
		Ranking:         ranking,
		ComputedAt:      time.Now().UTC(),
	}, nil
}
