package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmeehan/nestegg/internal/domain"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Income: domain.IncomeInputs{
			PeriodIncome: decimal.NewFromInt(4000),
			Targets:      mix(0.50, 0.30, 0.20),
			Actuals:      mix(0.50, 0.35, 0.15),
			ShiftLimit:   decimal.NewFromFloat(0.04),
		},
		PayPeriodsPerYear: 26,
		Facts: domain.SavingsFacts{
			EFTarget:          decimal.NewFromInt(15000),
			EFBalance:         decimal.NewFromInt(2000),
			MatchNeedPerMonth: decimal.NewFromInt(250),
			IRAAnnualRoom:     decimal.NewFromInt(7000),
			Room401kAnnual:    decimal.NewFromInt(23500),
			MonthlyIncome:     decimal.NewFromInt(8600),
			Liquidity:         domain.PreferenceMedium,
			RetirementFocus:   domain.PreferenceMedium,
		},
		Debts: []domain.Debt{
			{Name: "card", Balance: decimal.NewFromInt(4200), APR: decimal.NewFromFloat(23.99), MinPayment: decimal.NewFromInt(120)},
			{Name: "car", Balance: decimal.NewFromInt(11000), APR: decimal.NewFromFloat(6.5), MinPayment: decimal.NewFromInt(310)},
		},
		Balances: domain.AssetBalances{
			Cash:       decimal.NewFromInt(2000),
			Brokerage:  decimal.NewFromInt(5000),
			Retirement: decimal.NewFromInt(24000),
		},
		Assumptions: domain.Assumptions{
			CashYield:        decimal.NewFromFloat(0.04),
			NominalReturn:    decimal.NewFromFloat(0.07),
			TaxDragBrokerage: decimal.NewFromFloat(0.005),
		},
		HorizonMonths: 120,
	}
}

func TestBuildPlan_Pipeline(t *testing.T) {
	engine := NewPlanEngine()
	result, err := engine.BuildPlan(testProfile(), nil)
	require.NoError(t, err)

	// Pay-period allocation: the 4% guardrail caps the shift at $160.
	assert.Equal(t, "1240.00", result.Allocation.Wants.StringFixed(2))
	assert.Equal(t, "760.00", result.Allocation.Savings.StringFixed(2))

	// 760/period at 26 periods/year is 1646.67/month.
	assert.Equal(t, "1646.67", result.MonthlySavings.StringFixed(2))

	// The waterfall spends the whole budget or leaves the rest explicit.
	bd := result.Breakdown
	assert.True(t, bd.Allocated().Add(bd.Unallocated).Equal(result.MonthlySavings))

	require.Len(t, result.Simulation.NetWorth, 120)
	assert.Equal(t, "M120", result.Simulation.Labels[119])
}

func TestBuildPlan_HorizonRequired(t *testing.T) {
	profile := testProfile()
	profile.HorizonMonths = 0

	_, err := NewPlanEngine().BuildPlan(profile, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon")
}

func TestBuildPlan_DerivesHighAprBalanceFromDebts(t *testing.T) {
	profile := testProfile()
	// The facts omit the aggregate; only the debt list carries it.
	profile.Facts.HighAprDebtBalance = decimal.Zero

	result, err := NewPlanEngine().BuildPlan(profile, nil)
	require.NoError(t, err)

	// Only the 23.99% card is high-APR; the 6.5% car loan is not.
	assert.True(t, result.Breakdown.Debt.GreaterThan(decimal.Zero),
		"waterfall should see the high-APR card balance")
}

func TestBuildPlan_ChangePinsBucket(t *testing.T) {
	target := decimal.NewFromInt(100)
	change := &domain.Change{
		Category:      domain.CategoryEmergencyFund,
		TargetMonthly: &target,
	}

	result, err := NewPlanEngine().BuildPlan(testProfile(), change)
	require.NoError(t, err)

	assert.Equal(t, "100.00", result.Breakdown.EmergencyFund.StringFixed(2))
	bd := result.Breakdown
	assert.True(t, bd.Allocated().Add(bd.Unallocated).Equal(result.MonthlySavings))
}

func TestBuildPlan_Deterministic(t *testing.T) {
	engine := NewPlanEngine()

	first, err := engine.BuildPlan(testProfile(), nil)
	require.NoError(t, err)
	second, err := engine.BuildPlan(testProfile(), nil)
	require.NoError(t, err)

	assert.True(t, first.Simulation.FinalNetWorth().Equal(second.Simulation.FinalNetWorth()))
	assert.True(t, first.MonthlySavings.Equal(second.MonthlySavings))
}

func TestBuildPlan_DefaultMonthlyFactor(t *testing.T) {
	profile := testProfile()
	profile.PayPeriodsPerYear = 0 // monthly pay

	result, err := NewPlanEngine().BuildPlan(profile, nil)
	require.NoError(t, err)

	assert.Equal(t, "760.00", result.MonthlySavings.StringFixed(2))
}

func TestSetLogger_NilRestoresNop(t *testing.T) {
	engine := NewPlanEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
