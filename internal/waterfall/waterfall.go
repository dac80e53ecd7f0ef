// Package waterfall distributes a monthly savings budget across competing
// goals in strict priority order: employer match, HSA, emergency fund,
// high-APR debt, then a retirement/brokerage split. The priority order is
// a data structure — an ordered list of stages folded over the remaining
// budget — so it can be tested rung by rung and re-run with a single
// bucket pinned.
package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// Option adjusts a single waterfall run.
type Option func(*Context)

// WithPins forces the named buckets to fixed amounts; the rest of the
// budget flows through the unchanged priority order.
func WithPins(pins map[domain.Category]decimal.Decimal) Option {
	return func(ctx *Context) { ctx.Pins = pins }
}

// DefaultStages returns the canonical priority order.
func DefaultStages() []Stage {
	return []Stage{
		NewMatchStage(),
		NewHSAStage(),
		NewEmergencyFundStage(),
		NewDebtStage(),
		NewSplitStage(),
	}
}

// Run folds the stage list over the budget and returns the breakdown.
// It is pure and total: a zero or negative budget yields an all-zero
// breakdown, and unmet goals surface as warnings, never errors.
func Run(budget decimal.Decimal, facts domain.SavingsFacts, policy Policy, opts ...Option) domain.SavingsBreakdown {
	ctx := Context{
		TotalBudget: clampNonNegative(budget),
		Facts:       facts,
		Policy:      policy,
	}
	for _, opt := range opts {
		opt(&ctx)
	}

	breakdown := domain.SavingsBreakdown{RetirementAcct: domain.AccountRoth}
	remaining := ctx.TotalBudget

	for _, stage := range DefaultStages() {
		alloc := stage.Allocate(remaining, ctx)
		for cat, amount := range alloc.Amounts {
			apply(&breakdown, cat, amount)
			if cat == domain.CategoryEmergencyFund {
				ctx.EFAllocated = amount
			}
		}
		if alloc.AcctType != "" {
			breakdown.RetirementAcct = alloc.AcctType
		}
		breakdown.Warnings = append(breakdown.Warnings, alloc.Warnings...)
		remaining = remaining.Sub(alloc.Total())
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}
	}

	breakdown.Unallocated = remaining
	return breakdown
}

// ApplyChange re-runs the waterfall with one bucket pinned per the chat
// plan-change contract. TargetMonthly wins over Delta; a delta is applied
// against the unpinned baseline run.
func ApplyChange(budget decimal.Decimal, facts domain.SavingsFacts, policy Policy, change domain.Change) domain.SavingsBreakdown {
	var target decimal.Decimal
	if change.TargetMonthly != nil {
		target = *change.TargetMonthly
	} else {
		base := Run(budget, facts, policy)
		target = base.Amount(change.Category).Add(change.Delta)
	}
	target = clampNonNegative(target)

	return Run(budget, facts, policy, WithPins(map[domain.Category]decimal.Decimal{
		change.Category: target,
	}))
}

func apply(b *domain.SavingsBreakdown, cat domain.Category, amount decimal.Decimal) {
	switch cat {
	case domain.CategoryMatch401k:
		b.Match401k = amount
	case domain.CategoryHSA:
		b.HSA = amount
	case domain.CategoryEmergencyFund:
		b.EmergencyFund = amount
	case domain.CategoryDebt:
		b.Debt = amount
	case domain.CategoryRetirementExtra:
		b.Retirement = amount
	case domain.CategoryBrokerage:
		b.Brokerage = amount
	}
}
