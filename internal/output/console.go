package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kmeehan/nestegg/internal/domain"
)

// ConsoleFormatter renders the full plan as a human-readable report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil plan result")
	}

	buf := &bytes.Buffer{}
	rule := strings.Repeat("=", 70)

	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf, "FINANCIAL PLAN SUMMARY")
	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PAY PERIOD ALLOCATION")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "Needs:   %s\n", FormatCurrency(result.Allocation.Needs))
	fmt.Fprintf(buf, "Wants:   %s\n", FormatCurrency(result.Allocation.Wants))
	fmt.Fprintf(buf, "Savings: %s\n", FormatCurrency(result.Allocation.Savings))
	for _, n := range result.Allocation.Notes {
		fmt.Fprintf(buf, "Note:    %s\n", n.Message)
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "MONTHLY SAVINGS WATERFALL")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "Budget:           %s\n", FormatCurrency(result.MonthlySavings))
	fmt.Fprintf(buf, "401(k) match:     %s\n", FormatCurrency(result.Breakdown.Match401k))
	fmt.Fprintf(buf, "HSA:              %s\n", FormatCurrency(result.Breakdown.HSA))
	fmt.Fprintf(buf, "Emergency fund:   %s\n", FormatCurrency(result.Breakdown.EmergencyFund))
	fmt.Fprintf(buf, "High-APR debt:    %s\n", FormatCurrency(result.Breakdown.Debt))
	fmt.Fprintf(buf, "Retirement (%s): %s\n", result.Breakdown.RetirementAcct, FormatCurrency(result.Breakdown.Retirement))
	fmt.Fprintf(buf, "Brokerage:        %s\n", FormatCurrency(result.Breakdown.Brokerage))
	fmt.Fprintf(buf, "Unallocated:      %s\n", FormatCurrency(result.Breakdown.Unallocated))
	for _, w := range result.Breakdown.Warnings {
		fmt.Fprintf(buf, "Warning:          %s\n", w.Message)
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PROJECTION MILESTONES")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	kpis := result.Simulation.KPIs
	if kpis.EFReachedMonth != nil {
		fmt.Fprintf(buf, "Emergency fund reached: %s\n", FormatMonth(*kpis.EFReachedMonth))
	} else {
		fmt.Fprintln(buf, "Emergency fund reached: not within horizon")
	}
	if kpis.DebtFreeMonth != nil {
		fmt.Fprintf(buf, "Debt free:              %s\n", FormatMonth(*kpis.DebtFreeMonth))
	} else if len(result.Simulation.Liabilities) > 0 && !result.Simulation.Liabilities[len(result.Simulation.Liabilities)-1].IsZero() {
		fmt.Fprintln(buf, "Debt free:              not within horizon")
	}
	for _, year := range []int{1, 5, 10, 20, 40} {
		if nw, ok := kpis.NetWorthAtYears[year]; ok {
			fmt.Fprintf(buf, "Net worth at year %-2d:    %s\n", year, FormatCurrency(nw))
		}
	}
	fmt.Fprintf(buf, "Final net worth:        %s\n", FormatCurrency(result.Simulation.FinalNetWorth()))
	fmt.Fprintln(buf)

	return buf.Bytes(), nil
}
