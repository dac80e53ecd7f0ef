package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmeehan/nestegg/internal/domain"
)

func flatPlan(entry domain.PlanEntry, months int) domain.ScenarioInput {
	return domain.ScenarioInput{
		HorizonMonths: months,
		MonthlyPlan:   []domain.PlanEntry{entry},
	}
}

func TestSimulate_EFAccumulatesIntoCash(t *testing.T) {
	in := flatPlan(domain.PlanEntry{EmergencyFund: decimal.NewFromInt(100)}, 8)
	in.EFTarget = decimal.NewFromInt(500)

	out := Simulate(in)

	require.Len(t, out.NetWorth, 8)
	// Zero rates: net worth is just the accumulated EF contributions.
	assert.Equal(t, "100.00", out.NetWorth[0].StringFixed(2))
	assert.Equal(t, "500.00", out.NetWorth[4].StringFixed(2))
	assert.Equal(t, "800.00", out.NetWorth[7].StringFixed(2))

	require.NotNil(t, out.KPIs.EFReachedMonth)
	assert.Equal(t, 5, *out.KPIs.EFReachedMonth)
	assert.Nil(t, out.KPIs.DebtFreeMonth, "no debts means no debt-free milestone")
}

func TestSimulate_GrowthRatesAreAnnualOverTwelve(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 1,
		OpeningBalances: domain.AssetBalances{
			Cash:       decimal.NewFromInt(1200),
			Brokerage:  decimal.NewFromInt(1000),
			Retirement: decimal.NewFromInt(1000),
			HSA:        decimal.NewFromInt(2000),
		},
		Assumptions: domain.Assumptions{
			CashYield:        decimal.NewFromFloat(0.12),
			NominalReturn:    decimal.NewFromFloat(0.12),
			TaxDragBrokerage: decimal.NewFromFloat(0.012),
		},
		MonthlyPlan: []domain.PlanEntry{{}},
	}

	out := Simulate(in)

	// cash 1200 * 1.01, brokerage 1000 * 1.009, retirement 1000 * 1.01,
	// HSA 2000 * 1.01.
	want := decimal.RequireFromString("1212").
		Add(decimal.RequireFromString("1009")).
		Add(decimal.RequireFromString("1010")).
		Add(decimal.RequireFromString("2020"))
	assert.Equal(t, want.StringFixed(2), out.NetWorth[0].StringFixed(2))
}

func TestSimulate_DebtRetiresAndFreesMinimum(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths:   8,
		OpeningBalances: domain.AssetBalances{Cash: decimal.NewFromInt(1000)},
		Debts: []domain.Debt{
			{Name: "loan", Balance: decimal.NewFromInt(100), APR: decimal.Zero, MinPayment: decimal.NewFromInt(30)},
		},
		MonthlyPlan: []domain.PlanEntry{{}},
	}

	out := Simulate(in)

	// 100 at 30/month with no interest: 70, 40, 10, 0.
	assert.Equal(t, "70.00", out.Liabilities[0].StringFixed(2))
	assert.Equal(t, "10.00", out.Liabilities[2].StringFixed(2))
	assert.Equal(t, "0.00", out.Liabilities[3].StringFixed(2))

	require.NotNil(t, out.KPIs.DebtFreeMonth)
	assert.Equal(t, 4, *out.KPIs.DebtFreeMonth)

	// Month 4 pays only the remaining 10; cash spent totals 100.
	assert.Equal(t, "900.00", out.Assets[3].StringFixed(2))
	// The freed 30/month minimum flows into brokerage starting month 5.
	assert.Equal(t, "930.00", out.Assets[4].StringFixed(2))
	assert.Equal(t, "1020.00", out.Assets[7].StringFixed(2))
}

func TestSimulate_AvalancheTargetsHighestAPR(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 1,
		Debts: []domain.Debt{
			{Name: "A", Balance: decimal.NewFromInt(40), APR: decimal.NewFromInt(12)},
			{Name: "B", Balance: decimal.NewFromInt(100), APR: decimal.NewFromInt(24)},
		},
		MonthlyPlan: []domain.PlanEntry{{DebtExtra: decimal.NewFromInt(10)}},
	}

	out := Simulate(in)

	// A accrues 0.40 interest and is untouched; B accrues 2.00 and takes
	// the full extra payment.
	assert.Equal(t, "132.40", out.Liabilities[0].StringFixed(2))
}

func TestSimulate_ExtraSpillsToNextDebt(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 1,
		Debts: []domain.Debt{
			{Name: "A", Balance: decimal.NewFromInt(40), APR: decimal.NewFromInt(12)},
			{Name: "B", Balance: decimal.NewFromInt(10), APR: decimal.NewFromInt(24)},
		},
		MonthlyPlan: []domain.PlanEntry{{DebtExtra: decimal.NewFromInt(30)}},
	}

	out := Simulate(in)

	// B accrues 0.20 and is wiped by 10.20 of the extra; the remaining
	// 19.80 hits A, which accrued 0.40: 40.40 - 19.80 = 20.60.
	assert.Equal(t, "20.60", out.Liabilities[0].StringFixed(2))
}

func TestSimulate_ExtraWithoutHighAprGoesToBrokerage(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 1,
		Debts: []domain.Debt{
			{Name: "car", Balance: decimal.NewFromInt(5000), APR: decimal.NewFromInt(5), MinPayment: decimal.NewFromInt(100)},
		},
		MonthlyPlan: []domain.PlanEntry{{DebtExtra: decimal.NewFromInt(50)}},
	}

	out := Simulate(in)

	// The low-APR car loan only gets its minimum; the extra is invested.
	// Balance: 5000 * (1 + 5/1200) - 100 = 4920.833...
	assert.Equal(t, "4920.83", out.Liabilities[0].Round(2).StringFixed(2))
	// Assets: brokerage 50 minus the 100 cash payment = -50.
	assert.Equal(t, "-50.00", out.Assets[0].StringFixed(2))
}

func TestSimulate_NetWorthIsAssetsMinusLiabilities(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths:   24,
		OpeningBalances: domain.AssetBalances{Cash: decimal.NewFromInt(500), Brokerage: decimal.NewFromInt(300)},
		Debts: []domain.Debt{
			{Name: "card", Balance: decimal.NewFromInt(2000), APR: decimal.NewFromFloat(19.99), MinPayment: decimal.NewFromInt(60)},
		},
		Assumptions: domain.Assumptions{
			CashYield:     decimal.NewFromFloat(0.04),
			NominalReturn: decimal.NewFromFloat(0.07),
		},
		MonthlyPlan: []domain.PlanEntry{{
			EmergencyFund: decimal.NewFromInt(200),
			DebtExtra:     decimal.NewFromInt(75),
			Brokerage:     decimal.NewFromInt(50),
		}},
	}

	out := Simulate(in)

	for i := range out.NetWorth {
		require.True(t, out.NetWorth[i].Equal(out.Assets[i].Sub(out.Liabilities[i])),
			"month %d: net worth must equal assets minus liabilities", i+1)
	}
	// Liabilities shrink monotonically under avalanche payments.
	for i := 1; i < len(out.Liabilities); i++ {
		require.True(t, out.Liabilities[i].LessThanOrEqual(out.Liabilities[i-1]),
			"month %d: liabilities grew", i+1)
	}
}

func TestSimulate_RetiredDebtStaysRetired(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 12,
		Debts: []domain.Debt{
			{Name: "card", Balance: decimal.NewFromInt(100), APR: decimal.NewFromInt(24)},
		},
		MonthlyPlan: []domain.PlanEntry{{DebtExtra: decimal.NewFromInt(60)}},
	}

	out := Simulate(in)

	require.NotNil(t, out.KPIs.DebtFreeMonth)
	for i := *out.KPIs.DebtFreeMonth; i < len(out.Liabilities); i++ {
		require.True(t, out.Liabilities[i].IsZero(), "month %d: retired debt came back", i+1)
	}
}

func TestSimulate_YearMarksClampToHorizon(t *testing.T) {
	in := flatPlan(domain.PlanEntry{EmergencyFund: decimal.NewFromInt(10)}, 6)

	out := Simulate(in)

	require.Len(t, out.KPIs.NetWorthAtYears, len(NetWorthYearMarks))
	final := out.NetWorth[5]
	for _, year := range NetWorthYearMarks {
		assert.True(t, out.KPIs.NetWorthAtYears[year].Equal(final),
			"year %d mark should clamp to the final month", year)
	}
}

func TestSimulate_YearMarksAtExactMonths(t *testing.T) {
	in := flatPlan(domain.PlanEntry{EmergencyFund: decimal.NewFromInt(10)}, 70)

	out := Simulate(in)

	// Year 1 is month 12, year 5 is month 60; later marks clamp.
	assert.Equal(t, "120.00", out.KPIs.NetWorthAtYears[1].StringFixed(2))
	assert.Equal(t, "600.00", out.KPIs.NetWorthAtYears[5].StringFixed(2))
	assert.Equal(t, "700.00", out.KPIs.NetWorthAtYears[10].StringFixed(2))
}

func TestSimulate_EmptyHorizon(t *testing.T) {
	out := Simulate(domain.ScenarioInput{HorizonMonths: 0})

	assert.Empty(t, out.NetWorth)
	assert.Empty(t, out.KPIs.NetWorthAtYears)
	assert.Nil(t, out.KPIs.EFReachedMonth)
}

func TestSimulate_PlanEntriesCarryForward(t *testing.T) {
	in := domain.ScenarioInput{
		HorizonMonths: 4,
		MonthlyPlan: []domain.PlanEntry{
			{EmergencyFund: decimal.NewFromInt(100)},
			{EmergencyFund: decimal.NewFromInt(50)},
		},
	}

	out := Simulate(in)

	// Month 1 uses the first entry; the second entry then persists.
	assert.Equal(t, "100.00", out.NetWorth[0].StringFixed(2))
	assert.Equal(t, "150.00", out.NetWorth[1].StringFixed(2))
	assert.Equal(t, "250.00", out.NetWorth[3].StringFixed(2))
}

func TestSimulate_LabelsAreOneBased(t *testing.T) {
	out := Simulate(flatPlan(domain.PlanEntry{}, 3))

	assert.Equal(t, []string{"M1", "M2", "M3"}, out.Labels)
}
