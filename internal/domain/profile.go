package domain

import (
	"github.com/shopspring/decimal"
)

// Profile is the immutable snapshot of a user's financial picture handed
// into each engine call. The engine never holds a reference back into
// caller-owned mutable state; callers pass this by value.
type Profile struct {
	Income IncomeInputs `json:"income" yaml:"income"`
	// PayPeriodsPerYear converts pay-period dollars into monthly dollars
	// (26 for biweekly pay). Zero defaults to 12.
	PayPeriodsPerYear int           `json:"payPeriodsPerYear" yaml:"pay_periods_per_year"`
	Facts             SavingsFacts  `json:"facts" yaml:"facts"`
	Debts             []Debt        `json:"debts" yaml:"debts"`
	Balances          AssetBalances `json:"balances" yaml:"balances"`
	Assumptions       Assumptions   `json:"assumptions" yaml:"assumptions"`
	HorizonMonths     int           `json:"horizonMonths" yaml:"horizon_months"`
}

// MonthlyFactor returns the pay-period-to-month conversion factor
// (periods per year / 12).
func (p Profile) MonthlyFactor() decimal.Decimal {
	periods := p.PayPeriodsPerYear
	if periods <= 0 {
		periods = 12
	}
	return decimal.NewFromInt(int64(periods)).Div(decimal.NewFromInt(12))
}
