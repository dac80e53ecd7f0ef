package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// Policy holds the tunable constants of the waterfall. The 40% shares were
// inherited from the product's original behavior and must keep their exact
// values by default; they are surfaced here so they are configuration, not
// magic numbers.
type Policy struct {
	// EFCapShare caps the emergency-fund stage at this share of the total
	// monthly budget, so EF buildup never starves every other goal.
	EFCapShare decimal.Decimal
	// DebtCapShare caps the high-APR debt stage at this share of the
	// budget remaining after the EF allocation.
	DebtCapShare decimal.Decimal
	// TraditionalIncomeMonthly is the monthly income above which the
	// traditional 401(k) is preferred over Roth even without IDR.
	TraditionalIncomeMonthly decimal.Decimal
	// BaseRetirementWeight is the neutral retirement share of the final
	// split stage; preference levels shift it by WeightStep in each
	// direction, clamped to [MinRetirementWeight, MaxRetirementWeight].
	BaseRetirementWeight decimal.Decimal
	WeightStep           decimal.Decimal
	MinRetirementWeight  decimal.Decimal
	MaxRetirementWeight  decimal.Decimal
}

// DefaultPolicy returns the policy matching the product's original
// constants.
func DefaultPolicy() Policy {
	return Policy{
		EFCapShare:               decimal.NewFromFloat(0.40),
		DebtCapShare:             decimal.NewFromFloat(0.40),
		TraditionalIncomeMonthly: decimal.NewFromInt(12500),
		BaseRetirementWeight:     decimal.NewFromFloat(0.5),
		WeightStep:               decimal.NewFromFloat(0.2),
		MinRetirementWeight:      decimal.NewFromFloat(0.1),
		MaxRetirementWeight:      decimal.NewFromFloat(0.9),
	}
}

// Context carries the inputs shared by every stage of one waterfall run.
// TotalBudget never changes during the fold; EFAllocated is filled in by
// the runner once the emergency-fund stage completes, because the debt cap
// is defined relative to it.
type Context struct {
	TotalBudget decimal.Decimal
	EFAllocated decimal.Decimal
	Facts       domain.SavingsFacts
	Policy      Policy
	Pins        map[domain.Category]decimal.Decimal
}

// pin returns the pinned amount for a category, if any.
func (c Context) pin(cat domain.Category) (decimal.Decimal, bool) {
	if c.Pins == nil {
		return decimal.Zero, false
	}
	v, ok := c.Pins[cat]
	return v, ok
}

// Allocation is the output of a single stage: dollar amounts per category
// (the split stage emits two), the chosen retirement account type when the
// stage decides one, and any informational warnings.
type Allocation struct {
	Amounts  map[domain.Category]decimal.Decimal
	AcctType domain.RetirementAccountType
	Warnings []domain.Warning
}

// Total sums the stage's allocated amounts.
func (a Allocation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a.Amounts {
		total = total.Add(v)
	}
	return total
}

// Stage is one rung of the savings waterfall: a pure function of the
// remaining budget and the shared context. Stages never error; an
// underfunded stage simply allocates less and may attach a warning.
type Stage interface {
	Name() string
	Allocate(remaining decimal.Decimal, ctx Context) Allocation
}

func minOf(values ...decimal.Decimal) decimal.Decimal {
	m := values[0]
	for _, v := range values[1:] {
		if v.LessThan(m) {
			m = v
		}
	}
	return m
}

func clampNonNegative(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}
