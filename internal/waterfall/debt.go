package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// DebtStage sizes the extra high-APR paydown pool. Only balances above the
// high-APR threshold count; with no qualifying balance the allocation is
// exactly zero, never silently rerouted.
type DebtStage struct{}

func NewDebtStage() *DebtStage { return &DebtStage{} }

func (s *DebtStage) Name() string { return "high_apr_debt" }

func (s *DebtStage) Allocate(remaining decimal.Decimal, ctx Context) Allocation {
	balance := clampNonNegative(ctx.Facts.HighAprDebtBalance)
	cap := ctx.TotalBudget.Sub(ctx.EFAllocated).Mul(ctx.Policy.DebtCapShare)

	amount := decimal.Zero
	if balance.GreaterThan(decimal.Zero) {
		amount = minOf(balance, cap, remaining)
	}
	if pin, ok := ctx.pin(domain.CategoryDebt); ok {
		amount = minOf(clampNonNegative(pin), remaining)
	}

	return Allocation{Amounts: map[domain.Category]decimal.Decimal{
		domain.CategoryDebt: amount,
	}}
}
