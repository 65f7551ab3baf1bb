package engine

import (
	"fmt"
	"math"
)

// CashFlowYear is one year of the forward cash-flow schedule. UCF equals NOI
// in this model (no pre-financing deductions); LCF subtracts debt service.
type CashFlowYear struct {
	Year       int     `json:"year"`
	AnnualRent float64 `json:"annual_rent"`
	NOI        float64 `json:"noi"`
	UCF        float64 `json:"ucf"`
	LCF        float64 `json:"lcf"`
}

// ProjectCashFlows builds the forward schedule. Rent compounds at
// growthRatePct from year 1; tax and HOA are held flat over the horizon,
// which is a deliberate simplification of the model, not an oversight.
// Negative NOI passes through unmodified: losing money is a reportable
// outcome, not an error.
func ProjectCashFlows(monthlyRent, annualTax, monthlyHOA, growthRatePct, annualDebtService float64, years int) ([]CashFlowYear, error) {
	if years <= 0 {
		return nil, fmt.Errorf("%w: projection horizon must be positive, got %d", ErrInvalidFinancingInput, years)
	}
	if monthlyRent < 0 || annualTax < 0 || monthlyHOA < 0 {
		return nil, fmt.Errorf("%w: negative rent, tax, or HOA", ErrInvalidFinancingInput)
	}
	if growthRatePct < 0 {
		return nil, fmt.Errorf("%w: negative rent growth rate %.4f", ErrInvalidFinancingInput, growthRatePct)
	}

	baseRent := monthlyRent * monthsPerYear
	annualHOA := monthlyHOA * monthsPerYear
	growth := percentToDecimal(growthRatePct)

	flows := make([]CashFlowYear, years)
	for n := 1; n <= years; n++ {
		rent := baseRent * math.Pow(1+growth, float64(n-1))
		noi := rent - annualTax - annualHOA
		flows[n-1] = CashFlowYear{
			Year:       n,
			AnnualRent: rent,
			NOI:        noi,
			UCF:        noi,
			LCF:        noi - annualDebtService,
		}
	}
	return flows, nil
}
