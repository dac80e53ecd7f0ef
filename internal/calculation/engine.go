package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
	"github.com/kmeehan/nestegg/internal/waterfall"
)

// Logger is the minimal logging surface the engine uses. Binaries plug in
// whatever backs it; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// PlanEngine runs the full pipeline — income allocation, savings
// waterfall, net-worth simulation — over one immutable profile snapshot.
// It holds no per-run state, so a single engine is safe for concurrent
// callers.
type PlanEngine struct {
	Policy waterfall.Policy
	Logger Logger
}

// NewPlanEngine creates an engine with the default waterfall policy.
func NewPlanEngine() *PlanEngine {
	return &PlanEngine{
		Policy: waterfall.DefaultPolicy(),
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (e *PlanEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// BuildPlan runs allocator -> waterfall -> simulator and bundles the
// results. A nil change runs the baseline plan; a non-nil change pins that
// bucket per the plan-change contract before simulating.
func (e *PlanEngine) BuildPlan(profile domain.Profile, change *domain.Change) (*domain.PlanResult, error) {
	if profile.HorizonMonths <= 0 {
		return nil, fmt.Errorf("horizon must be at least one month, got %d", profile.HorizonMonths)
	}

	alloc := Allocate(profile.Income)
	factor := profile.MonthlyFactor()
	monthlySavings := alloc.Savings.Mul(factor).Round(2)

	facts := profile.Facts
	if len(profile.Debts) > 0 {
		facts.HighAprDebtBalance = domain.HighAprBalance(profile.Debts)
	}

	var breakdown domain.SavingsBreakdown
	if change != nil {
		e.Logger.Infof("re-running waterfall with %s pinned", change.Category)
		breakdown = waterfall.ApplyChange(monthlySavings, facts, e.Policy, *change)
	} else {
		breakdown = waterfall.Run(monthlySavings, facts, e.Policy)
	}
	for _, w := range breakdown.Warnings {
		e.Logger.Warnf("waterfall: %s", w.Message)
	}

	scenario := e.buildScenario(profile, alloc, breakdown, factor)
	sim := Simulate(scenario)

	return &domain.PlanResult{
		Allocation:     alloc,
		MonthlySavings: monthlySavings,
		Breakdown:      breakdown,
		Simulation:     sim,
	}, nil
}

// buildScenario assembles the simulator input from the upstream stages.
// The monthly plan is constant over the horizon: the recurring breakdown
// amounts plus needs/wants outflows converted from pay-period dollars.
func (e *PlanEngine) buildScenario(profile domain.Profile, alloc domain.AllocationResult, bd domain.SavingsBreakdown, factor decimal.Decimal) domain.ScenarioInput {
	entry := domain.PlanEntry{
		EmergencyFund: bd.EmergencyFund,
		Unallocated:   bd.Unallocated,
		Brokerage:     bd.Brokerage,
		Match401k:     bd.Match401k,
		Retirement:    bd.Retirement,
		HSA:           bd.HSA,
		DebtExtra:     bd.Debt,
		Needs:         alloc.Needs.Mul(factor).Round(2),
		Wants:         alloc.Wants.Mul(factor).Round(2),
	}

	return domain.ScenarioInput{
		HorizonMonths:   profile.HorizonMonths,
		OpeningBalances: profile.Balances,
		Debts:           profile.Debts,
		MonthlyPlan:     []domain.PlanEntry{entry},
		Assumptions:     profile.Assumptions,
		EFTarget:        profile.Facts.EFTarget,
	}
}
