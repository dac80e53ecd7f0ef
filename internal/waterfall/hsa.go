package waterfall

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// HSAStage funds the health savings account after the match. Eligibility
// is signaled by a positive annual contribution room; the baseline is the
// user-specified monthly amount when set, otherwise the full monthly room.
type HSAStage struct{}

func NewHSAStage() *HSAStage { return &HSAStage{} }

func (s *HSAStage) Name() string { return "hsa" }

func (s *HSAStage) Allocate(remaining decimal.Decimal, ctx Context) Allocation {
	room := clampNonNegative(ctx.Facts.HSAAnnualRoom)
	monthlyRoom := room.Div(monthsPerYear)

	baseline := monthlyRoom
	if ctx.Facts.HSAMonthly.GreaterThan(decimal.Zero) {
		baseline = ctx.Facts.HSAMonthly
	}

	amount := decimal.Zero
	if room.GreaterThan(decimal.Zero) {
		amount = minOf(baseline, monthlyRoom, remaining)
	}
	if pin, ok := ctx.pin(domain.CategoryHSA); ok {
		amount = minOf(clampNonNegative(pin), remaining)
	}

	alloc := Allocation{Amounts: map[domain.Category]decimal.Decimal{
		domain.CategoryHSA: amount,
	}}

	if room.GreaterThan(decimal.Zero) && amount.LessThan(monthlyRoom) {
		alloc.Warnings = append(alloc.Warnings, domain.Warning{
			Code: domain.WarnHSAUnderRoom,
			Message: fmt.Sprintf("HSA contribution %s is below the %s monthly room; %s of tax-advantaged space goes unused",
				amount.StringFixed(2), monthlyRoom.StringFixed(2), monthlyRoom.Sub(amount).StringFixed(2)),
		})
	}
	return alloc
}
