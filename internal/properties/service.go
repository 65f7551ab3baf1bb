package properties

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"propvest-backend/internal/engine"
	"propvest-backend/internal/models"
	"propvest-backend/internal/pkg/response"
)

var (
	ErrPropertyNotFound = errors.New("Property not found")
	ErrAuditNotFound    = errors.New("Audit data not found")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// sortColumns whitelists the sortable fields and their directions. Return
// metrics sort best-first (descending); price-per-sqft cheapest-first.
var sortColumns = map[string]string{
	"investment_ranking": "property_audits.investment_ranking DESC",
	"cap_rate":           "property_audits.cap_rate DESC",
	"cash_on_cash":       "property_audits.cash_on_cash DESC",
	"irr":                "property_audits.irr DESC",
	"total_return":       "property_audits.total_return DESC",
	"list_price":         "properties.list_price DESC",
	"price_per_sqft":     "properties.price_per_sqft ASC",
}

type Service struct {
	DB *gorm.DB
}

// SearchInput carries the list-endpoint filters. Nil price bounds mean
// unbounded; zero-value strings mean no filter.
type SearchInput struct {
	ZipCode  string
	City     string
	State    string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	Page     int
	Limit    int
}

// PropertySummary is one search-result row: listing basics joined with the
// audited return metrics used for ordering.
type PropertySummary struct {
	PropertyID        uint    `gorm:"column:property_id" json:"property_id"`
	FullStreetLine    string  `gorm:"column:full_street_line" json:"full_street_line"`
	City              string  `gorm:"column:city" json:"city"`
	State             string  `gorm:"column:state" json:"state"`
	ZipCode           string  `gorm:"column:zip_code" json:"zip_code"`
	Beds              int     `gorm:"column:beds" json:"beds"`
	Baths             float64 `gorm:"column:baths" json:"baths"`
	Sqft              int     `gorm:"column:sqft" json:"sqft"`
	ListPrice         float64 `gorm:"column:list_price" json:"list_price"`
	PricePerSqft      float64 `gorm:"column:price_per_sqft" json:"price_per_sqft"`
	EstimatedRent     float64 `gorm:"column:estimated_rent" json:"estimated_rent"`
	CapRate           float64 `gorm:"column:cap_rate" json:"cap_rate"`
	CashOnCash        float64 `gorm:"column:cash_on_cash" json:"cash_on_cash"`
	IRR               float64 `gorm:"column:irr" json:"irr"`
	TotalReturn       float64 `gorm:"column:total_return" json:"total_return"`
	InvestmentRanking float64 `gorm:"column:investment_ranking" json:"investment_ranking"`
	PrimaryPhoto      string  `gorm:"column:primary_photo" json:"primary_photo"`
}

const summarySelect = `properties.id AS property_id, properties.full_street_line, properties.city,
properties.state, properties.zip_code, properties.beds, properties.baths, properties.sqft,
properties.list_price, properties.price_per_sqft, properties.estimated_rent, properties.primary_photo,
property_audits.cap_rate, property_audits.cash_on_cash, property_audits.irr,
property_audits.total_return, property_audits.investment_ranking`

// Search returns one page of properties matching the filters, ordered by the
// requested metric (investment ranking by default).
func (s *Service) Search(ctx context.Context, in SearchInput) ([]PropertySummary, *response.Pagination, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	order, ok := sortColumns[in.SortBy]
	if !ok {
		order = sortColumns["investment_ranking"]
	}

	base := s.DB.WithContext(ctx).Model(&models.Property{}).
		Joins("LEFT JOIN property_audits ON property_audits.property_id = properties.id")
	base = applyFilters(base, in)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var rows []PropertySummary
	if err := base.Session(&gorm.Session{}).
		Select(summarySelect).
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	meta := &response.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
	}
	return rows, meta, nil
}

func applyFilters(q *gorm.DB, in SearchInput) *gorm.DB {
	if in.ZipCode != "" {
		q = q.Where("properties.zip_code = ?", in.ZipCode)
	}
	if in.City != "" {
		q = q.Where("LOWER(properties.city) = LOWER(?)", in.City)
	}
	if in.State != "" {
		q = q.Where("LOWER(properties.state) = LOWER(?)", in.State)
	}
	if in.MinPrice != nil {
		q = q.Where("properties.list_price >= ?", *in.MinPrice)
	}
	if in.MaxPrice != nil {
		q = q.Where("properties.list_price <= ?", *in.MaxPrice)
	}
	return q
}

// Detail bundles the full property record with its audited metrics. Metrics
// is nil when the property has not been through a calculation run yet.
type Detail struct {
	Property models.Property       `json:"property"`
	Metrics  *models.PropertyAudit `json:"metrics,omitempty"`
}

func (s *Service) GetProperty(ctx context.Context, propertyID uint) (*Detail, error) {
	var prop models.Property
	if err := s.DB.WithContext(ctx).First(&prop, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	d := &Detail{Property: prop}

	var audit models.PropertyAudit
	err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&audit).Error
	switch {
	case err == nil:
		d.Metrics = &audit
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Listed but not yet audited; detail still serves the raw facts.
	default:
		return nil, err
	}
	return d, nil
}

// AuditTrail is the fully-itemized calculation record served by the audit
// endpoint, structured by pipeline stage.
type AuditTrail struct {
	PropertyID   uint                  `json:"property_id"`
	PropertyInfo AuditPropertyInfo     `json:"property_info"`
	RentalIncome AuditRentalIncome     `json:"rental_income"`
	Expenses     AuditExpenses         `json:"expenses"`
	Mortgage     AuditMortgage         `json:"mortgage"`
	Returns      AuditReturns          `json:"returns"`
	Projections  []engine.CashFlowYear `json:"projections"`
	ComputedAt   string                `json:"computed_at"`
}

type AuditPropertyInfo struct {
	FullStreetLine string `json:"full_street_line"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zip_code"`
}

type AuditRentalIncome struct {
	MonthlyRent    float64 `json:"monthly_rent"`
	AnnualRent     float64 `json:"annual_rent"`
	RentGrowthRate float64 `json:"rent_growth_rate"`
}

type AuditExpenses struct {
	AnnualTax  float64 `json:"annual_tax"`
	MonthlyHOA float64 `json:"monthly_hoa"`
}

type AuditMortgage struct {
	DownPaymentPct     float64 `json:"down_payment_pct"`
	InterestRate       float64 `json:"interest_rate"`
	LoanTermYears      int     `json:"loan_term_years"`
	LoanAmount         float64 `json:"loan_amount"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	AnnualDebtService  float64 `json:"annual_debt_service"`
	FinalLoanBalance   float64 `json:"final_loan_balance"`
	TotalPrincipalPaid float64 `json:"total_principal_paid"`
	CashEquity         float64 `json:"cash_equity"`
	TransactionCost    float64 `json:"transaction_cost"`
}

type AuditReturns struct {
	CapRate           float64 `json:"cap_rate"`
	ExitCapRate       float64 `json:"exit_cap_rate"`
	ExitValue         float64 `json:"exit_value"`
	EquityAtExit      float64 `json:"equity_at_exit"`
	UnderwaterAtExit  bool    `json:"underwater_at_exit"`
	CashOnCash        float64 `json:"cash_on_cash"`
	IRR               float64 `json:"irr"`
	IRRDefined        bool    `json:"irr_defined"`
	TotalReturn       float64 `json:"total_return"`
	InvestmentRanking float64 `json:"investment_ranking"`
}

// GetAuditTrail serves the audit record for one property. A property that
// exists but has no stored audit reports ErrAuditNotFound, never zeros.
func (s *Service) GetAuditTrail(ctx context.Context, propertyID uint) (*AuditTrail, error) {
	var prop models.Property
	if err := s.DB.WithContext(ctx).First(&prop, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	var audit models.PropertyAudit
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&audit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}

	projections, err := audit.Projections()
	if err != nil {
		return nil, err
	}

	return &AuditTrail{
		PropertyID: prop.ID,
		PropertyInfo: AuditPropertyInfo{
			FullStreetLine: prop.FullStreetLine,
			City:           prop.City,
			State:          prop.State,
			ZipCode:        prop.ZipCode,
		},
		RentalIncome: AuditRentalIncome{
			MonthlyRent:    prop.EstimatedRent,
			AnnualRent:     prop.EstimatedRent * 12,
			RentGrowthRate: prop.RentGrowthRate,
		},
		Expenses: AuditExpenses{
			AnnualTax:  prop.AnnualTax,
			MonthlyHOA: prop.MonthlyHOA,
		},
		Mortgage: AuditMortgage{
			DownPaymentPct:     prop.DownPaymentPct,
			InterestRate:       prop.InterestRate,
			LoanTermYears:      prop.LoanTermYears,
			LoanAmount:         audit.LoanAmount,
			MonthlyPayment:     audit.MonthlyPayment,
			AnnualDebtService:  audit.AnnualDebtService,
			FinalLoanBalance:   audit.FinalLoanBalance,
			TotalPrincipalPaid: audit.TotalPrincipalPaid,
			CashEquity:         audit.CashEquity,
			TransactionCost:    audit.TransactionCost,
		},
		Returns: AuditReturns{
			CapRate:           audit.CapRate,
			ExitCapRate:       prop.ExitCapRate,
			ExitValue:         audit.ExitValue,
			EquityAtExit:      audit.EquityAtExit,
			UnderwaterAtExit:  audit.UnderwaterAtExit,
			CashOnCash:        audit.CashOnCash,
			IRR:               audit.IRR,
			IRRDefined:        audit.IRRDefined,
			TotalReturn:       audit.TotalReturn,
			InvestmentRanking: audit.InvestmentRanking,
		},
		Projections: projections,
		ComputedAt:  audit.ComputedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
