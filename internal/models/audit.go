package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"propvest-backend/internal/engine"
)

// PropertyAudit is the persisted calculation record: one row per property,
// replaced wholesale on every recalculation. Metric columns are flattened for
// filtering and sorting; the full year-by-year schedule rides along as JSON.
type PropertyAudit struct {
	ID         uint `gorm:"column:id;primaryKey" json:"-"`
	PropertyID uint `gorm:"column:property_id;uniqueIndex;not null" json:"property_id"`

	// Mortgage
	LoanAmount         float64 `gorm:"column:loan_amount" json:"loan_amount"`
	MonthlyPayment     float64 `gorm:"column:monthly_payment" json:"monthly_payment"`
	AnnualDebtService  float64 `gorm:"column:annual_debt_service" json:"annual_debt_service"`
	FinalLoanBalance   float64 `gorm:"column:final_loan_balance" json:"final_loan_balance"`
	TotalPrincipalPaid float64 `gorm:"column:total_principal_paid" json:"total_principal_paid"`

	// Cash basis
	CashEquity      float64 `gorm:"column:cash_equity" json:"cash_equity"`
	TransactionCost float64 `gorm:"column:transaction_cost" json:"transaction_cost"`

	// Returns (percent metrics stored already multiplied)
	CapRate          float64 `gorm:"column:cap_rate;index" json:"cap_rate"`
	CashOnCash       float64 `gorm:"column:cash_on_cash;index" json:"cash_on_cash"`
	IRR              float64 `gorm:"column:irr;index" json:"irr"`
	IRRDefined       bool    `gorm:"column:irr_defined" json:"irr_defined"`
	ExitValue        float64 `gorm:"column:exit_value" json:"exit_value"`
	EquityAtExit     float64 `gorm:"column:equity_at_exit" json:"equity_at_exit"`
	UnderwaterAtExit bool    `gorm:"column:underwater_at_exit" json:"underwater_at_exit"`
	TotalReturn      float64 `gorm:"column:total_return;index" json:"total_return"`

	InvestmentRanking float64 `gorm:"column:investment_ranking;index" json:"investment_ranking"`

	CashFlows  datatypes.JSON `gorm:"column:cash_flows" json:"cash_flows"`
	ComputedAt time.Time      `gorm:"column:computed_at" json:"computed_at"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}

func (PropertyAudit) TableName() string {
	return "property_audits"
}

// NewPropertyAudit flattens an engine audit into its persisted form.
func NewPropertyAudit(a *engine.PropertyAudit) (*PropertyAudit, error) {
	flows, err := json.Marshal(a.CashFlows)
	if err != nil {
		return nil, err
	}
	return &PropertyAudit{
		PropertyID:         a.PropertyID,
		LoanAmount:         a.Schedule.LoanAmount,
		MonthlyPayment:     a.Schedule.MonthlyPayment,
		AnnualDebtService:  a.Schedule.AnnualDebtService,
		FinalLoanBalance:   a.Schedule.FinalLoanBalance,
		TotalPrincipalPaid: a.Schedule.TotalPrincipalPaid,
		CashEquity:         a.CashEquity,
		TransactionCost:    a.TransactionCost,
		CapRate:            a.Returns.CapRate,
		CashOnCash:         a.Returns.CashOnCash,
		IRR:                a.Returns.IRR,
		IRRDefined:         a.Returns.IRRDefined,
		ExitValue:          a.Returns.ExitValue,
		EquityAtExit:       a.Returns.EquityAtExit,
		UnderwaterAtExit:   a.Returns.UnderwaterAtExit,
		TotalReturn:        a.Returns.TotalReturn,
		InvestmentRanking:  a.Ranking,
		CashFlows:          datatypes.JSON(flows),
		ComputedAt:         a.ComputedAt,
	}, nil
}

// Projections decodes the stored year-by-year schedule.
func (a *PropertyAudit) Projections() ([]engine.CashFlowYear, error) {
	var flows []engine.CashFlowYear
	if len(a.CashFlows) == 0 {
		return flows, nil
	}
	if err := json.Unmarshal(a.CashFlows, &flows); err != nil {
		return nil, err
	}
	return flows, nil
}
