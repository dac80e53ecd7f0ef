package waterfall

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// MatchStage captures the employer 401(k) match first: free money beats
// every other destination.
type MatchStage struct{}

func NewMatchStage() *MatchStage { return &MatchStage{} }

func (s *MatchStage) Name() string { return "401k_match" }

func (s *MatchStage) Allocate(remaining decimal.Decimal, ctx Context) Allocation {
	need := clampNonNegative(ctx.Facts.MatchNeedPerMonth)

	amount := minOf(need, remaining)
	if pin, ok := ctx.pin(domain.CategoryMatch401k); ok {
		amount = minOf(clampNonNegative(pin), remaining)
	}

	alloc := Allocation{Amounts: map[domain.Category]decimal.Decimal{
		domain.CategoryMatch401k: amount,
	}}

	if amount.LessThan(need) {
		unclaimed := need.Sub(amount)
		alloc.Warnings = append(alloc.Warnings, domain.Warning{
			Code: domain.WarnMatchUnclaimed,
			Message: fmt.Sprintf("budget covers only %s of the %s needed for the full employer match; %s/month of match is unclaimed",
				amount.StringFixed(2), need.StringFixed(2), unclaimed.StringFixed(2)),
		})
	}
	return alloc
}
