package domain

import (
	"github.com/shopspring/decimal"
)

// HighAprThreshold is the APR (in percent) above which a debt qualifies for
// avalanche-style extra paydown.
var HighAprThreshold = decimal.NewFromInt(10)

// Debt is a single liability. APR is expressed in percent (22.5 means
// 22.5% annual), matching how card statements quote it; the simulator
// derives the monthly rate as APR/12/100.
type Debt struct {
	Name       string          `json:"name" yaml:"name"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
	APR        decimal.Decimal `json:"apr" yaml:"apr"`
	MinPayment decimal.Decimal `json:"minPayment" yaml:"min_payment"`
	// HighApr may be set explicitly; otherwise it is derived from APR.
	HighApr *bool `json:"highApr,omitempty" yaml:"high_apr,omitempty"`
}

// IsHighApr reports whether the debt qualifies for extra avalanche paydown.
func (d Debt) IsHighApr() bool {
	if d.HighApr != nil {
		return *d.HighApr
	}
	return d.APR.GreaterThan(HighAprThreshold)
}

// HighAprBalance sums the balances of all high-APR debts.
func HighAprBalance(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d.IsHighApr() {
			total = total.Add(d.Balance)
		}
	}
	return total
}

// TotalMinPayments sums the minimum payments across all debts.
func TotalMinPayments(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.MinPayment)
	}
	return total
}
