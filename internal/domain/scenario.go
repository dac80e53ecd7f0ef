package domain

import (
	"github.com/shopspring/decimal"
)

// AssetBalances holds one opening balance per asset bucket.
type AssetBalances struct {
	Cash       decimal.Decimal `json:"cash" yaml:"cash"`
	Brokerage  decimal.Decimal `json:"brokerage" yaml:"brokerage"`
	Retirement decimal.Decimal `json:"retirement" yaml:"retirement"`
	HSA        decimal.Decimal `json:"hsa" yaml:"hsa"`
}

// Total returns the sum of all asset buckets.
func (a AssetBalances) Total() decimal.Decimal {
	return a.Cash.Add(a.Brokerage).Add(a.Retirement).Add(a.HSA)
}

// Assumptions are the growth and drag rates driving the simulator. All
// rates are annual fractions (0.05 means 5%); monthly rates are derived by
// dividing by 12 (simple monthly compounding, not effective-rate
// conversion).
type Assumptions struct {
	CashYield        decimal.Decimal `json:"cashYield" yaml:"cash_yield"`
	NominalReturn    decimal.Decimal `json:"nominalReturn" yaml:"nominal_return"`
	TaxDragBrokerage decimal.Decimal `json:"taxDragBrokerage" yaml:"tax_drag_brokerage"`
	InflationRate    decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
}

// PlanEntry is one month's allocation amounts — inflows per asset bucket,
// the extra high-APR debt payment, and the needs/wants cash outflows.
type PlanEntry struct {
	EmergencyFund decimal.Decimal `json:"ef" yaml:"ef"`
	Unallocated   decimal.Decimal `json:"unallocated" yaml:"unallocated"`
	Brokerage     decimal.Decimal `json:"brokerage" yaml:"brokerage"`
	Match401k     decimal.Decimal `json:"match401k" yaml:"match_401k"`
	Retirement    decimal.Decimal `json:"retirement" yaml:"retirement"`
	HSA           decimal.Decimal `json:"hsa" yaml:"hsa"`
	DebtExtra     decimal.Decimal `json:"debtExtra" yaml:"debt_extra"`
	Needs         decimal.Decimal `json:"needs" yaml:"needs"`
	Wants         decimal.Decimal `json:"wants" yaml:"wants"`
}

// ScenarioInput is everything the net-worth simulator consumes. MonthlyPlan
// normally holds a single entry applied every month; a longer sequence is
// indexed by month and the last entry carries forward if the horizon is
// longer.
type ScenarioInput struct {
	HorizonMonths   int             `json:"horizonMonths" yaml:"horizon_months"`
	OpeningBalances AssetBalances   `json:"openingBalances" yaml:"opening_balances"`
	Debts           []Debt          `json:"debts" yaml:"debts"`
	MonthlyPlan     []PlanEntry     `json:"monthlyPlan" yaml:"monthly_plan"`
	Assumptions     Assumptions     `json:"assumptions" yaml:"assumptions"`
	EFTarget        decimal.Decimal `json:"efTarget" yaml:"ef_target"`
}

// EntryFor returns the plan entry for a 0-based month index, carrying the
// last entry forward past the end of the sequence.
func (s ScenarioInput) EntryFor(month int) PlanEntry {
	if len(s.MonthlyPlan) == 0 {
		return PlanEntry{}
	}
	if month >= len(s.MonthlyPlan) {
		return s.MonthlyPlan[len(s.MonthlyPlan)-1]
	}
	return s.MonthlyPlan[month]
}

// KPISnapshot holds the milestone values extracted from a completed
// simulation. Month numbers are 1-based; nil means the milestone was never
// reached within the horizon.
type KPISnapshot struct {
	EFReachedMonth  *int                    `json:"efReachedMonth,omitempty"`
	DebtFreeMonth   *int                    `json:"debtFreeMonth,omitempty"`
	NetWorthAtYears map[int]decimal.Decimal `json:"netWorthAtYears"`
}

// SimulationOutput is the month-indexed time series plus milestone KPIs.
// The four slices are parallel and all have HorizonMonths entries.
type SimulationOutput struct {
	Labels      []string          `json:"labels"`
	NetWorth    []decimal.Decimal `json:"netWorth"`
	Assets      []decimal.Decimal `json:"assets"`
	Liabilities []decimal.Decimal `json:"liabilities"`
	KPIs        KPISnapshot       `json:"kpis"`
}

// FinalNetWorth returns the last recorded net worth, or zero for an empty
// series.
func (s SimulationOutput) FinalNetWorth() decimal.Decimal {
	if len(s.NetWorth) == 0 {
		return decimal.Zero
	}
	return s.NetWorth[len(s.NetWorth)-1]
}

// PlanResult bundles the output of the full pipeline for one profile
// snapshot.
type PlanResult struct {
	Allocation     AllocationResult `json:"allocation"`
	MonthlySavings decimal.Decimal  `json:"monthlySavings"`
	Breakdown      SavingsBreakdown `json:"breakdown"`
	Simulation     SimulationOutput `json:"simulation"`
}
