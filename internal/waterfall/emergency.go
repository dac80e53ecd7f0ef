package waterfall

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// EmergencyFundStage fills the cash reserve gap, capped at a share of the
// total monthly budget so EF buildup never crowds out every other goal in
// a single month.
type EmergencyFundStage struct{}

func NewEmergencyFundStage() *EmergencyFundStage { return &EmergencyFundStage{} }

func (s *EmergencyFundStage) Name() string { return "emergency_fund" }

func (s *EmergencyFundStage) Allocate(remaining decimal.Decimal, ctx Context) Allocation {
	gap := ctx.Facts.EFGap()
	cap := ctx.TotalBudget.Mul(ctx.Policy.EFCapShare)

	amount := minOf(gap, cap, remaining)
	pinned := false
	if pin, ok := ctx.pin(domain.CategoryEmergencyFund); ok {
		amount = minOf(clampNonNegative(pin), remaining)
		pinned = true
	}

	alloc := Allocation{Amounts: map[domain.Category]decimal.Decimal{
		domain.CategoryEmergencyFund: amount,
	}}

	// The cap binding (rather than the gap or the budget running out) is
	// worth surfacing: the user sees their EF grow slower than a naive
	// gap-first split would suggest.
	if !pinned && gap.GreaterThan(decimal.Zero) && amount.Equal(cap) && cap.LessThan(minOf(gap, remaining)) {
		alloc.Warnings = append(alloc.Warnings, domain.Warning{
			Code: domain.WarnEFCapped,
			Message: fmt.Sprintf("emergency fund contribution capped at %s (%s%% of budget); %s of the gap remains for later months",
				amount.StringFixed(2),
				ctx.Policy.EFCapShare.Mul(decimal.NewFromInt(100)).StringFixed(0),
				gap.Sub(amount).StringFixed(2)),
		})
	}
	return alloc
}
