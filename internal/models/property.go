package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"propvest-backend/internal/engine"
)

// Property is one catalog listing with the raw facts the calculation engine
// consumes. Rates are percentages; DownPaymentPct is a fraction in [0,1].
type Property struct {
	ID             uint           `gorm:"column:id;primaryKey" json:"property_id"`
	FullStreetLine string         `gorm:"column:full_street_line;not null" json:"full_street_line"`
	City           string         `gorm:"column:city;not null;index" json:"city"`
	State          string         `gorm:"column:state;not null;index" json:"state"`
	ZipCode        string         `gorm:"column:zip_code;not null;index" json:"zip_code"`
	Beds           int            `gorm:"column:beds" json:"beds"`
	Baths          float64        `gorm:"column:baths" json:"baths"`
	Sqft           int            `gorm:"column:sqft" json:"sqft"`
	YearBuilt      int            `gorm:"column:year_built" json:"year_built"`
	Style          string         `gorm:"column:style" json:"style"`
	ListPrice      float64        `gorm:"column:list_price;not null;index" json:"list_price"`
	PricePerSqft   float64        `gorm:"column:price_per_sqft" json:"price_per_sqft"`
	AnnualTax      float64        `gorm:"column:annual_tax" json:"annual_tax"`
	MonthlyHOA     float64        `gorm:"column:monthly_hoa" json:"monthly_hoa"`
	EstimatedRent  float64        `gorm:"column:estimated_rent" json:"estimated_rent"`
	RentGrowthRate float64        `gorm:"column:rent_growth_rate" json:"rent_growth_rate"`
	ExitCapRate    float64        `gorm:"column:exit_cap_rate" json:"exit_cap_rate"`
	DownPaymentPct float64        `gorm:"column:down_payment_pct" json:"down_payment_pct"`
	InterestRate   float64        `gorm:"column:interest_rate" json:"interest_rate"`
	LoanTermYears  int            `gorm:"column:loan_term_years" json:"loan_term_years"`
	PrimaryPhoto   string         `gorm:"column:primary_photo" json:"primary_photo"`
	AltPhotos      datatypes.JSON `gorm:"column:alt_photos" json:"alt_photos"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// Facts snapshots the engine inputs for one calculation run.
func (p *Property) Facts() engine.PropertyFacts {
	return engine.PropertyFacts{
		ListPrice:      p.ListPrice,
		MonthlyRent:    p.EstimatedRent,
		AnnualTax:      p.AnnualTax,
		MonthlyHOA:     p.MonthlyHOA,
		DownPaymentPct: p.DownPaymentPct,
		InterestRate:   p.InterestRate,
		LoanTermYears:  p.LoanTermYears,
		RentGrowthRate: p.RentGrowthRate,
		ExitCapRate:    p.ExitCapRate,
	}
}
