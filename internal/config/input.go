package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kmeehan/nestegg/internal/domain"
)

// mixSumTolerance absorbs representation noise in hand-written YAML
// percentages; anything beyond a tenth of a cent per dollar is a real
// input error.
var mixSumTolerance = decimal.NewFromFloat(0.001)

var (
	decimalOne      = decimal.NewFromInt(1)
	maxHorizon      = 1200 // 100 years of months
	maxAPR          = decimal.NewFromInt(100)
	minShiftLimit   = decimal.Zero
	maxShiftLimit   = decimal.NewFromFloat(0.5)
	validLevels     = map[domain.PreferenceLevel]bool{"": true, domain.PreferenceLow: true, domain.PreferenceMedium: true, domain.PreferenceHigh: true}
	validCategories = map[domain.Category]bool{
		domain.CategoryMatch401k:       true,
		domain.CategoryHSA:             true,
		domain.CategoryEmergencyFund:   true,
		domain.CategoryDebt:            true,
		domain.CategoryRetirementExtra: true,
		domain.CategoryBrokerage:       true,
	}
)

// InputParser loads and validates profile files. Validation happens once
// here at the boundary so the engine itself can stay total over its
// documented input domain.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile validates a full profile snapshot.
func (ip *InputParser) ValidateProfile(p *domain.Profile) error {
	if err := ip.validateIncome(&p.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}
	if err := ip.validateFacts(&p.Facts); err != nil {
		return fmt.Errorf("savings facts validation failed: %w", err)
	}
	for i, d := range p.Debts {
		if err := ip.validateDebt(&d); err != nil {
			return fmt.Errorf("debt %d (%s) validation failed: %w", i, d.Name, err)
		}
	}
	if err := ip.validateBalances(&p.Balances); err != nil {
		return fmt.Errorf("balances validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&p.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if p.HorizonMonths <= 0 || p.HorizonMonths > maxHorizon {
		return fmt.Errorf("horizon months must be between 1 and %d, got %d", maxHorizon, p.HorizonMonths)
	}
	if p.PayPeriodsPerYear < 0 || p.PayPeriodsPerYear > 53 {
		return fmt.Errorf("pay periods per year must be between 0 and 53, got %d", p.PayPeriodsPerYear)
	}
	return nil
}

// ValidateChange validates a plan-change request.
func (ip *InputParser) ValidateChange(c *domain.Change) error {
	if !validCategories[c.Category] {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	if c.TargetMonthly != nil && c.TargetMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("target monthly cannot be negative")
	}
	return nil
}

// ValidateIncome validates allocator inputs alone, for callers invoking
// the allocator outside a full profile.
func (ip *InputParser) ValidateIncome(in *domain.IncomeInputs) error {
	return ip.validateIncome(in)
}

func (ip *InputParser) validateIncome(in *domain.IncomeInputs) error {
	if in.PeriodIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("period income cannot be negative")
	}
	if err := validateMix("targets", in.Targets); err != nil {
		return err
	}
	if err := validateMix("actuals", in.Actuals); err != nil {
		return err
	}
	if in.ShiftLimit.LessThan(minShiftLimit) || in.ShiftLimit.GreaterThan(maxShiftLimit) {
		return fmt.Errorf("shift limit must be between 0 and 0.5, got %s", in.ShiftLimit)
	}
	return nil
}

func validateMix(name string, m domain.Mix) error {
	for field, v := range map[string]decimal.Decimal{"needs": m.Needs, "wants": m.Wants, "savings": m.Savings} {
		if v.LessThan(decimal.Zero) || v.GreaterThan(decimalOne) {
			return fmt.Errorf("%s.%s must be between 0 and 1, got %s", name, field, v)
		}
	}
	if m.Sum().Sub(decimalOne).Abs().GreaterThan(mixSumTolerance) {
		return fmt.Errorf("%s percentages must sum to 1.0, got %s", name, m.Sum())
	}
	return nil
}

func (ip *InputParser) validateFacts(f *domain.SavingsFacts) error {
	nonNegative := map[string]decimal.Decimal{
		"ef_target":             f.EFTarget,
		"ef_balance":            f.EFBalance,
		"match_need_per_month":  f.MatchNeedPerMonth,
		"high_apr_debt_balance": f.HighAprDebtBalance,
		"hsa_annual_room":       f.HSAAnnualRoom,
		"hsa_monthly":           f.HSAMonthly,
		"ira_annual_room":       f.IRAAnnualRoom,
		"room_401k_annual":      f.Room401kAnnual,
		"monthly_income":        f.MonthlyIncome,
	}
	for field, v := range nonNegative {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative, got %s", field, v)
		}
	}
	if !validLevels[f.Liquidity] {
		return fmt.Errorf("liquidity must be low, medium, or high, got %q", f.Liquidity)
	}
	if !validLevels[f.RetirementFocus] {
		return fmt.Errorf("retirement_focus must be low, medium, or high, got %q", f.RetirementFocus)
	}
	return nil
}

func (ip *InputParser) validateDebt(d *domain.Debt) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Balance.LessThan(decimal.Zero) {
		return fmt.Errorf("balance cannot be negative")
	}
	if d.APR.LessThan(decimal.Zero) || d.APR.GreaterThan(maxAPR) {
		return fmt.Errorf("APR must be between 0 and 100 percent, got %s", d.APR)
	}
	if d.MinPayment.LessThan(decimal.Zero) {
		return fmt.Errorf("minimum payment cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateBalances(b *domain.AssetBalances) error {
	for field, v := range map[string]decimal.Decimal{"cash": b.Cash, "brokerage": b.Brokerage, "retirement": b.Retirement, "hsa": b.HSA} {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s balance cannot be negative, got %s", field, v)
		}
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	minRate := decimal.NewFromInt(-1)
	for field, v := range map[string]decimal.Decimal{
		"cash_yield":         a.CashYield,
		"nominal_return":     a.NominalReturn,
		"tax_drag_brokerage": a.TaxDragBrokerage,
	} {
		if v.LessThan(minRate) || v.GreaterThan(decimalOne) {
			return fmt.Errorf("%s must be between -100%% and 100%% as a fraction, got %s", field, v)
		}
	}
	if a.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if a.TaxDragBrokerage.LessThan(decimal.Zero) {
		return fmt.Errorf("tax drag cannot be negative")
	}
	return nil
}
