package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// Allocate splits one pay period's net income into Needs/Wants/Savings
// dollars, reconciling the trailing actual mix against the targets under a
// bounded Wants-to-Savings shift. It is pure and total: every numeric edge
// case is clamped, never thrown. Targets and actuals each summing to 1.0
// is a precondition validated at the config boundary.
func Allocate(inputs domain.IncomeInputs) domain.AllocationResult {
	income := inputs.PeriodIncome
	if income.LessThanOrEqual(decimal.Zero) {
		return domain.AllocationResult{
			Needs:   decimal.Zero,
			Wants:   decimal.Zero,
			Savings: decimal.Zero,
		}
	}

	needsActual := income.Mul(inputs.Actuals.Needs)
	wantsActual := income.Mul(inputs.Actuals.Wants)
	savingsActual := income.Mul(inputs.Actuals.Savings)

	gap := income.Mul(inputs.Targets.Savings).Sub(savingsActual)

	// Already at or above the savings target: pass the actuals through.
	if gap.LessThanOrEqual(decimal.Zero) {
		return reconcile(income, needsActual, wantsActual, savingsActual, nil)
	}

	// Wants floor: never push Wants below its own target to fund the
	// savings shortfall.
	if inputs.Actuals.Wants.LessThanOrEqual(inputs.Targets.Wants) {
		notes := []domain.Note{{
			Code: domain.NoteWantsFloor,
			Message: fmt.Sprintf("savings stays %s below target due to Wants floor",
				gap.Round(2).StringFixed(2)),
		}}
		return reconcile(income, needsActual, wantsActual, savingsActual, notes)
	}

	limit := income.Mul(inputs.ShiftLimit)
	surplus := inputs.Actuals.Wants.Sub(inputs.Targets.Wants).Mul(income)

	shift := gap
	if limit.LessThan(shift) {
		shift = limit
	}
	if surplus.LessThan(shift) {
		shift = surplus
	}

	var notes []domain.Note
	if shift.LessThan(gap) && shift.Equal(limit) {
		notes = append(notes, domain.Note{
			Code: domain.NoteShiftLimited,
			Message: fmt.Sprintf("shift capped at %s (%s%% of income); savings remains %s below target",
				shift.Round(2).StringFixed(2),
				inputs.ShiftLimit.Mul(decimal.NewFromInt(100)).StringFixed(0),
				gap.Sub(shift).Round(2).StringFixed(2)),
		})
	} else {
		notes = append(notes, domain.Note{
			Code: domain.NoteShiftApplied,
			Message: fmt.Sprintf("moved %s from Wants to Savings to close the savings gap",
				shift.Round(2).StringFixed(2)),
		})
	}

	return reconcile(income, needsActual, wantsActual.Sub(shift), savingsActual.Add(shift), notes)
}

// reconcile rounds every bucket to cents and pushes rounding drift onto
// savings so the three buckets sum exactly to the period income.
func reconcile(income, needs, wants, savings decimal.Decimal, notes []domain.Note) domain.AllocationResult {
	needs = needs.Round(2)
	wants = wants.Round(2)
	savings = savings.Round(2)

	drift := income.Round(2).Sub(needs).Sub(wants).Sub(savings)
	savings = savings.Add(drift)

	return domain.AllocationResult{
		Needs:   needs,
		Wants:   wants,
		Savings: savings,
		Notes:   notes,
	}
}
