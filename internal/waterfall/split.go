package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// SplitStage divides everything left after the hard-priority stages
// between an extra tax-advantaged retirement contribution and a taxable
// brokerage contribution. The retirement share is weighted by the user's
// liquidity and retirement-focus preferences; the retirement portion fills
// IRA room first, then remaining 401(k) room, with leftover spilling into
// brokerage.
type SplitStage struct{}

func NewSplitStage() *SplitStage { return &SplitStage{} }

func (s *SplitStage) Name() string { return "retirement_brokerage_split" }

func (s *SplitStage) Allocate(remaining decimal.Decimal, ctx Context) Allocation {
	roomMonthly := clampNonNegative(ctx.Facts.IRAAnnualRoom).Div(monthsPerYear).
		Add(clampNonNegative(ctx.Facts.Room401kAnnual).Div(monthsPerYear))

	retirement := decimal.Zero
	brokerage := decimal.Zero

	retirementPin, retirementPinned := ctx.pin(domain.CategoryRetirementExtra)
	brokeragePin, brokeragePinned := ctx.pin(domain.CategoryBrokerage)

	switch {
	case brokeragePinned:
		brokerage = minOf(clampNonNegative(brokeragePin), remaining)
		retirement = minOf(remaining.Sub(brokerage), roomMonthly)
	case retirementPinned:
		retirement = minOf(clampNonNegative(retirementPin), roomMonthly, remaining)
		brokerage = remaining.Sub(retirement)
	default:
		weight := s.retirementWeight(ctx)
		retirement = minOf(remaining.Mul(weight).Round(2), roomMonthly, remaining)
		brokerage = remaining.Sub(retirement)
	}

	return Allocation{
		Amounts: map[domain.Category]decimal.Decimal{
			domain.CategoryRetirementExtra: retirement,
			domain.CategoryBrokerage:       brokerage,
		},
		AcctType: s.accountType(ctx),
	}
}

// accountType picks the destination for the retirement portion once per
// run. Pre-tax deferral wins when income-driven repayment keys off AGI or
// when income is high enough that the deduction outweighs Roth's tax-free
// growth at a flat marginal-rate estimate.
func (s *SplitStage) accountType(ctx Context) domain.RetirementAccountType {
	if ctx.Facts.OnIDR {
		return domain.AccountTraditional401
	}
	if ctx.Facts.MonthlyIncome.GreaterThan(ctx.Policy.TraditionalIncomeMonthly) {
		return domain.AccountTraditional401
	}
	return domain.AccountRoth
}

func (s *SplitStage) retirementWeight(ctx Context) decimal.Decimal {
	w := ctx.Policy.BaseRetirementWeight

	switch ctx.Facts.RetirementFocus {
	case domain.PreferenceHigh:
		w = w.Add(ctx.Policy.WeightStep)
	case domain.PreferenceLow:
		w = w.Sub(ctx.Policy.WeightStep)
	}

	switch ctx.Facts.Liquidity {
	case domain.PreferenceHigh:
		w = w.Sub(ctx.Policy.WeightStep)
	case domain.PreferenceLow:
		w = w.Add(ctx.Policy.WeightStep)
	}

	if w.LessThan(ctx.Policy.MinRetirementWeight) {
		return ctx.Policy.MinRetirementWeight
	}
	if w.GreaterThan(ctx.Policy.MaxRetirementWeight) {
		return ctx.Policy.MaxRetirementWeight
	}
	return w
}
