package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
	percentToRate = decimal.NewFromInt(1200) // APR percent -> monthly rate divisor
)

// NetWorthYearMarks are the year marks captured in the KPI snapshot,
// clamped to the horizon when it is shorter.
var NetWorthYearMarks = []int{1, 5, 10, 20, 40}

// debtState tracks one liability through the simulation. A debt is pinned
// at zero once fully amortized; its minimum payment is then permanently
// redirected into brokerage inflow.
type debtState struct {
	debt    domain.Debt
	balance decimal.Decimal
	retired bool
}

// Simulate advances a month-indexed financial state for the scenario's
// horizon: grow balances, apply the month's plan inflows, service debts
// avalanche-style, subtract cash outflows, and record the series. It is a
// plain synchronous loop — pure, deterministic, and safe to call from
// concurrent requests since every invocation owns its own state.
//
// All monthly rates are annual/12, simple compounding; do not replace
// with an effective-rate conversion.
func Simulate(in domain.ScenarioInput) domain.SimulationOutput {
	months := in.HorizonMonths
	if months < 0 {
		months = 0
	}

	out := domain.SimulationOutput{
		Labels:      make([]string, months),
		NetWorth:    make([]decimal.Decimal, months),
		Assets:      make([]decimal.Decimal, months),
		Liabilities: make([]decimal.Decimal, months),
		KPIs:        domain.KPISnapshot{NetWorthAtYears: map[int]decimal.Decimal{}},
	}

	cash := in.OpeningBalances.Cash
	brokerage := in.OpeningBalances.Brokerage
	retirement := in.OpeningBalances.Retirement
	hsa := in.OpeningBalances.HSA

	cashRate := in.Assumptions.CashYield.Div(decimalTwelve)
	brokerageRate := in.Assumptions.NominalReturn.Sub(in.Assumptions.TaxDragBrokerage).Div(decimalTwelve)
	growthRate := in.Assumptions.NominalReturn.Div(decimalTwelve)

	debts := make([]*debtState, len(in.Debts))
	for i, d := range in.Debts {
		debts[i] = &debtState{debt: d, balance: clampBalance(d.Balance)}
		if debts[i].balance.IsZero() {
			debts[i].retired = true
		}
	}

	freedMinimums := decimal.Zero

	for t := 0; t < months; t++ {
		entry := in.EntryFor(t)

		// 1. Growth.
		cash = cash.Mul(decimalOne.Add(cashRate))
		brokerage = brokerage.Mul(decimalOne.Add(brokerageRate))
		retirement = retirement.Mul(decimalOne.Add(growthRate))
		hsa = hsa.Mul(decimalOne.Add(growthRate))

		// 2. Inflows, including minimum payments freed by debts retired
		// in earlier months.
		cash = cash.Add(entry.EmergencyFund).Add(entry.Unallocated)
		brokerage = brokerage.Add(entry.Brokerage).Add(freedMinimums)
		retirement = retirement.Add(entry.Match401k).Add(entry.Retirement)
		hsa = hsa.Add(entry.HSA)

		// 3. Debt service: interest accrual and minimums debt-by-debt,
		// then the month's extra payment avalanche-style.
		payments := decimal.Zero
		for _, ds := range debts {
			if ds.retired {
				continue
			}
			interest := ds.balance.Mul(ds.debt.APR).Div(percentToRate)
			ds.balance = ds.balance.Add(interest)

			payment := ds.debt.MinPayment
			if payment.GreaterThan(ds.balance) {
				payment = ds.balance
			}
			ds.balance = ds.balance.Sub(payment)
			payments = payments.Add(payment)
			settleIfPaid(ds)
		}

		extra := entry.DebtExtra
		for extra.GreaterThan(decimal.Zero) {
			target := highestAprOpen(debts)
			if target == nil {
				// No high-APR balance left to attack: freed cash flow is
				// reinvested rather than left idle.
				brokerage = brokerage.Add(extra)
				break
			}
			payment := extra
			if payment.GreaterThan(target.balance) {
				payment = target.balance
			}
			target.balance = target.balance.Sub(payment)
			payments = payments.Add(payment)
			extra = extra.Sub(payment)
			settleIfPaid(target)
		}

		// Minimums freed this month start flowing next month.
		freedMinimums = decimal.Zero
		for _, ds := range debts {
			if ds.retired {
				freedMinimums = freedMinimums.Add(ds.debt.MinPayment)
			}
		}

		// 4. Cash outflows.
		cash = cash.Sub(entry.Needs).Sub(entry.Wants).Sub(payments)

		// 5. Record.
		assets := cash.Add(brokerage).Add(retirement).Add(hsa)
		liabilities := decimal.Zero
		for _, ds := range debts {
			liabilities = liabilities.Add(ds.balance)
		}

		out.Labels[t] = fmt.Sprintf("M%d", t+1)
		out.Assets[t] = assets
		out.Liabilities[t] = liabilities
		out.NetWorth[t] = assets.Sub(liabilities)

		if out.KPIs.EFReachedMonth == nil && cash.GreaterThanOrEqual(in.EFTarget) {
			month := t + 1
			out.KPIs.EFReachedMonth = &month
		}
		if out.KPIs.DebtFreeMonth == nil && len(in.Debts) > 0 && liabilities.IsZero() {
			month := t + 1
			out.KPIs.DebtFreeMonth = &month
		}
	}

	for _, year := range NetWorthYearMarks {
		idx := year*12 - 1
		if idx >= months {
			idx = months - 1
		}
		if idx < 0 {
			continue
		}
		out.KPIs.NetWorthAtYears[year] = out.NetWorth[idx]
	}

	return out
}

// settleIfPaid pins a fully amortized balance at exactly zero so rounding
// residue can never resurrect a debt.
func settleIfPaid(ds *debtState) {
	if ds.balance.LessThanOrEqual(decimal.Zero) {
		ds.balance = decimal.Zero
		ds.retired = true
	}
}

// highestAprOpen picks the avalanche target: the highest-APR debt still
// carrying a balance, ties broken by original list order.
func highestAprOpen(debts []*debtState) *debtState {
	var target *debtState
	for _, ds := range debts {
		if ds.retired || !ds.debt.IsHighApr() {
			continue
		}
		if target == nil || ds.debt.APR.GreaterThan(target.debt.APR) {
			target = ds
		}
	}
	return target
}

func clampBalance(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}
