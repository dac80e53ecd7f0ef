package domain

import (
	"github.com/shopspring/decimal"
)

// NoteCode tags an allocator note with a machine-readable reason so
// downstream consumers do not have to pattern-match message text.
type NoteCode string

const (
	NoteWantsFloor   NoteCode = "WANTS_FLOOR"
	NoteShiftLimited NoteCode = "SHIFT_LIMITED"
	NoteShiftApplied NoteCode = "SHIFT_APPLIED"
)

// Note pairs a machine-readable code with a human-readable explanation.
type Note struct {
	Code    NoteCode `json:"code" yaml:"code"`
	Message string   `json:"message" yaml:"message"`
}

// Mix is a Needs/Wants/Savings percentage split. Each field is a fraction
// (0.50 means 50%); a valid mix sums to 1.0.
type Mix struct {
	Needs   decimal.Decimal `json:"needs" yaml:"needs"`
	Wants   decimal.Decimal `json:"wants" yaml:"wants"`
	Savings decimal.Decimal `json:"savings" yaml:"savings"`
}

// Sum returns needs + wants + savings.
func (m Mix) Sum() decimal.Decimal {
	return m.Needs.Add(m.Wants).Add(m.Savings)
}

// IncomeInputs carries everything the income allocator needs for one pay
// period. Targets and Actuals are expected to each sum to 1.0; that is a
// documented precondition validated at the config boundary, not here.
type IncomeInputs struct {
	PeriodIncome decimal.Decimal `json:"periodIncome" yaml:"period_income"`
	Targets      Mix             `json:"targets" yaml:"targets"`
	Actuals      Mix             `json:"actuals" yaml:"actuals"`
	// ShiftLimit is the maximum fraction of period income that may move
	// from Wants to Savings in a single allocation (e.g. 0.04).
	ShiftLimit decimal.Decimal `json:"shiftLimit" yaml:"shift_limit"`
}

// AllocationResult is the dollar split of one pay period. The three buckets
// always sum to PeriodIncome to the cent; rounding drift is reconciled onto
// Savings.
type AllocationResult struct {
	Needs   decimal.Decimal `json:"needs"`
	Wants   decimal.Decimal `json:"wants"`
	Savings decimal.Decimal `json:"savings"`
	Notes   []Note          `json:"notes,omitempty"`
}

// Total returns the sum of the three buckets.
func (r AllocationResult) Total() decimal.Decimal {
	return r.Needs.Add(r.Wants).Add(r.Savings)
}

// HasNote reports whether a note with the given code is present.
func (r AllocationResult) HasNote(code NoteCode) bool {
	for _, n := range r.Notes {
		if n.Code == code {
			return true
		}
	}
	return false
}
