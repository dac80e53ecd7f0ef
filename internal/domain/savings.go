package domain

import (
	"github.com/shopspring/decimal"
)

// PreferenceLevel expresses how strongly the user leans toward a concern
// (liquidity, retirement focus).
type PreferenceLevel string

const (
	PreferenceLow    PreferenceLevel = "low"
	PreferenceMedium PreferenceLevel = "medium"
	PreferenceHigh   PreferenceLevel = "high"
)

// RetirementAccountType selects where the extra retirement contribution
// lands.
type RetirementAccountType string

const (
	AccountRoth           RetirementAccountType = "roth"
	AccountTraditional401 RetirementAccountType = "traditional_401k"
)

// Category names a waterfall destination bucket. The chat plan-change
// contract references these same identifiers.
type Category string

const (
	CategoryMatch401k       Category = "401k"
	CategoryHSA             Category = "hsa"
	CategoryEmergencyFund   Category = "ef"
	CategoryDebt            Category = "debt"
	CategoryRetirementExtra Category = "retirementExtra"
	CategoryBrokerage       Category = "brokerage"
)

// WarningCode tags a waterfall warning with a machine-readable reason.
type WarningCode string

const (
	WarnMatchUnclaimed WarningCode = "MATCH_UNCLAIMED"
	WarnEFCapped       WarningCode = "EF_CAPPED"
	WarnHSAUnderRoom   WarningCode = "HSA_UNDER_ROOM"
)

// Warning pairs a machine-readable code with a human-readable message.
// Warnings are informational only; they never block a result.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
}

// SavingsFacts is the read-only snapshot of user financial facts the
// waterfall allocates against. Dollar fields are monthly unless named
// otherwise.
type SavingsFacts struct {
	EFTarget          decimal.Decimal `json:"efTarget" yaml:"ef_target"`
	EFBalance         decimal.Decimal `json:"efBalance" yaml:"ef_balance"`
	MatchNeedPerMonth decimal.Decimal `json:"matchNeedPerMonth" yaml:"match_need_per_month"`
	// HighAprDebtBalance is the sum of balances with APR above the
	// high-APR threshold. Callers holding a full debt list should derive
	// it with HighAprBalance.
	HighAprDebtBalance decimal.Decimal `json:"highAprDebtBalance" yaml:"high_apr_debt_balance"`
	HSAAnnualRoom      decimal.Decimal `json:"hsaAnnualRoom" yaml:"hsa_annual_room"`
	// HSAMonthly optionally overrides the default HSA baseline (full
	// monthly room). Zero means "use the default".
	HSAMonthly     decimal.Decimal `json:"hsaMonthly" yaml:"hsa_monthly"`
	IRAAnnualRoom  decimal.Decimal `json:"iraAnnualRoom" yaml:"ira_annual_room"`
	Room401kAnnual decimal.Decimal `json:"room401kAnnual" yaml:"room_401k_annual"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`

	Liquidity       PreferenceLevel `json:"liquidity" yaml:"liquidity"`
	RetirementFocus PreferenceLevel `json:"retirementFocus" yaml:"retirement_focus"`
	OnIDR           bool            `json:"onIDR" yaml:"on_idr"`
}

// EFGap returns the unfunded portion of the emergency fund target, floored
// at zero.
func (f SavingsFacts) EFGap() decimal.Decimal {
	gap := f.EFTarget.Sub(f.EFBalance)
	if gap.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return gap
}

// SavingsBreakdown is the waterfall's partition of one month's savings
// budget. Allocated amounts plus Unallocated always equal the budget.
type SavingsBreakdown struct {
	Match401k      decimal.Decimal       `json:"match401k"`
	HSA            decimal.Decimal       `json:"hsa"`
	EmergencyFund  decimal.Decimal       `json:"ef"`
	Debt           decimal.Decimal       `json:"debt"`
	Retirement     decimal.Decimal       `json:"retirement"`
	RetirementAcct RetirementAccountType `json:"retirementAcctType"`
	Brokerage      decimal.Decimal       `json:"brokerage"`
	Unallocated    decimal.Decimal       `json:"unallocated"`
	Warnings       []Warning             `json:"warnings,omitempty"`
}

// Allocated returns the sum of every destination bucket, excluding
// Unallocated.
func (b SavingsBreakdown) Allocated() decimal.Decimal {
	return b.Match401k.Add(b.HSA).Add(b.EmergencyFund).Add(b.Debt).
		Add(b.Retirement).Add(b.Brokerage)
}

// Amount returns the allocation for a named category.
func (b SavingsBreakdown) Amount(c Category) decimal.Decimal {
	switch c {
	case CategoryMatch401k:
		return b.Match401k
	case CategoryHSA:
		return b.HSA
	case CategoryEmergencyFund:
		return b.EmergencyFund
	case CategoryDebt:
		return b.Debt
	case CategoryRetirementExtra:
		return b.Retirement
	case CategoryBrokerage:
		return b.Brokerage
	}
	return decimal.Zero
}

// HasWarning reports whether a warning with the given code is present.
func (b SavingsBreakdown) HasWarning(code WarningCode) bool {
	for _, w := range b.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Change is a plan-change request emitted by the chat parser: pin one
// bucket and re-run the waterfall. TargetMonthly, when set, wins over
// Delta.
type Change struct {
	Category      Category         `json:"category"`
	Delta         decimal.Decimal  `json:"delta"`
	TargetMonthly *decimal.Decimal `json:"targetMonthly,omitempty"`
}
