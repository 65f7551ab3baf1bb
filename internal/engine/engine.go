// Package engine is the investment-return calculation core: a deterministic
// financial model that turns a property's raw facts into audited metrics.
// Every calculation is a pure function of its input facts, so independent
// properties can be analyzed fully in parallel with no shared state; within
// one property the stages run strictly in sequence (mortgage, projection,
// returns, scoring, audit assembly).
package engine

// PropertyFacts are the immutable inputs to one calculation run. Rates are
// percentages (7.5 means 7.5%); DownPaymentPct is a fraction in [0,1].
type PropertyFacts struct {
	ListPrice      float64 `json:"list_price"`
	MonthlyRent    float64 `json:"monthly_rent"`
	AnnualTax      float64 `json:"annual_tax"`
	MonthlyHOA     float64 `json:"monthly_hoa"`
	DownPaymentPct float64 `json:"down_payment_pct"`
	InterestRate   float64 `json:"interest_rate"`
	LoanTermYears  int     `json:"loan_term_years"`
	RentGrowthRate float64 `json:"rent_growth_rate"`
	ExitCapRate    float64 `json:"exit_cap_rate"`
}

// Options tune the model's global assumptions. The five-year horizon and the
// closing-cost rate are configuration, not hard-coded constants, so scenario
// and variable-horizon runs stay testable.
type Options struct {
	HorizonYears        int
	TransactionCostRate float64 // fraction of list price paid at closing
	IRR                 IRROptions
	Scoring             ScoringConfig
}

// DefaultOptions: five-year hold, 1% closing costs.
func DefaultOptions() Options {
	return Options{
		HorizonYears:        5,
		TransactionCostRate: 0.01,
		IRR:                 DefaultIRROptions(),
		Scoring:             DefaultScoringConfig(),
	}
}

// Engine runs the full calculation pipeline. Safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if opts.HorizonYears <= 0 {
		opts.HorizonYears = 5
	}
	if opts.IRR.MaxIterations == 0 {
		opts.IRR = DefaultIRROptions()
	}
	zero := ScoringConfig{}
	if opts.Scoring == zero {
		opts.Scoring = DefaultScoringConfig()
	}
	return &Engine{opts: opts}
}

// Analyze runs one property through every stage and assembles the audit.
// It returns a typed failure instead of default metrics when any stage
// rejects its input; the caller decides how to report the exclusion.
func (e *Engine) Analyze(propertyID uint, facts PropertyFacts) (*PropertyAudit, error) {
	schedule, err := ComputeMortgage(facts.ListPrice, facts.DownPaymentPct, facts.InterestRate, facts.LoanTermYears, e.opts.HorizonYears)
	if err != nil {
		return nil, err
	}

	cashFlows, err := ProjectCashFlows(facts.MonthlyRent, facts.AnnualTax, facts.MonthlyHOA, facts.RentGrowthRate, schedule.AnnualDebtService, e.opts.HorizonYears)
	if err != nil {
		return nil, err
	}

	transactionCost := facts.ListPrice * e.opts.TransactionCostRate
	cashEquity := facts.ListPrice*facts.DownPaymentPct + transactionCost

	returns, err := ComputeReturns(facts.ListPrice, cashEquity, cashFlows, schedule.FinalLoanBalance, facts.ExitCapRate, e.opts.IRR)
	if err != nil {
		return nil, err
	}

	ranking := e.opts.Scoring.Score(*returns)

	return BuildAudit(propertyID, facts, schedule, cashFlows, returns, cashEquity, transactionCost, ranking)
}
