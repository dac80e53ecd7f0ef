package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/output"
)

// View renders the active pane.
func (m Model) View() string {
	if m.loadErr != nil {
		return warnStyle.Render(fmt.Sprintf("Failed to load plan: %v\n", m.loadErr)) +
			helpStyle.Render("q to quit")
	}
	if m.result == nil {
		return titleStyle.Render("nestegg") + "\n\nComputing plan…"
	}

	var body string
	switch m.active {
	case paneSummary:
		body = m.viewSummary()
	case paneWaterfall:
		body = m.viewWaterfall()
	case paneChart:
		body = m.viewChart()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("nestegg — financial plan"),
		m.viewTabs(),
		body,
		helpStyle.Render("tab/←→ switch panes • 1-3 jump • q quit"),
	)
}

func (m Model) viewTabs() string {
	names := []string{"Summary", "Waterfall", "Projection"}
	tabs := make([]string, len(names))
	for i, name := range names {
		if pane(i) == m.active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSummary() string {
	alloc := m.result.Allocation
	kpis := m.result.Simulation.KPIs

	allocCard := cardStyle.Render(strings.Join([]string{
		labelStyle.Render("Pay period"),
		fmt.Sprintf("Needs   %s", valueStyle.Render(output.FormatCurrency(alloc.Needs))),
		fmt.Sprintf("Wants   %s", valueStyle.Render(output.FormatCurrency(alloc.Wants))),
		fmt.Sprintf("Savings %s", valueStyle.Render(output.FormatCurrency(alloc.Savings))),
	}, "\n"))

	milestones := []string{labelStyle.Render("Milestones")}
	if kpis.EFReachedMonth != nil {
		milestones = append(milestones, fmt.Sprintf("EF funded   %s", valueStyle.Render(output.FormatMonth(*kpis.EFReachedMonth))))
	} else {
		milestones = append(milestones, "EF funded   beyond horizon")
	}
	if kpis.DebtFreeMonth != nil {
		milestones = append(milestones, fmt.Sprintf("Debt free   %s", valueStyle.Render(output.FormatMonth(*kpis.DebtFreeMonth))))
	}
	milestones = append(milestones, fmt.Sprintf("Final NW    %s", valueStyle.Render(output.FormatCurrency(m.result.Simulation.FinalNetWorth()))))
	kpiCard := cardStyle.Render(strings.Join(milestones, "\n"))

	cards := lipgloss.JoinHorizontal(lipgloss.Top, allocCard, kpiCard)

	// EF progress toward target, from the profile snapshot.
	efLine := ""
	if m.profile != nil && m.profile.Facts.EFTarget.GreaterThan(decimal.Zero) {
		ratio, _ := m.profile.Facts.EFBalance.Div(m.profile.Facts.EFTarget).Float64()
		if ratio > 1 {
			ratio = 1
		}
		efLine = fmt.Sprintf("\n%s\n%s",
			labelStyle.Render("Emergency fund progress"),
			m.efProgress.ViewAs(ratio))
	}

	notes := ""
	for _, n := range alloc.Notes {
		notes += "\n" + warnStyle.Render("• "+n.Message)
	}

	return cards + efLine + notes
}

func (m Model) viewWaterfall() string {
	bd := m.result.Breakdown
	rows := []struct {
		name  string
		value decimal.Decimal
	}{
		{"401(k) match", bd.Match401k},
		{"HSA", bd.HSA},
		{"Emergency fund", bd.EmergencyFund},
		{"High-APR debt", bd.Debt},
		{fmt.Sprintf("Retirement (%s)", bd.RetirementAcct), bd.Retirement},
		{"Brokerage", bd.Brokerage},
		{"Unallocated", bd.Unallocated},
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Monthly savings budget: %s", output.FormatCurrency(m.result.MonthlySavings))))
	b.WriteString("\n\n")
	for _, row := range rows {
		bar := allocationBar(row.value, m.result.MonthlySavings, 30)
		b.WriteString(fmt.Sprintf("%-24s %12s %s\n", row.name, output.FormatCurrency(row.value), bar))
	}
	for _, w := range bd.Warnings {
		b.WriteString("\n" + warnStyle.Render("• "+w.Message))
	}
	return b.String()
}

func (m Model) viewChart() string {
	sim := m.result.Simulation
	width := m.width
	if width == 0 {
		width = 80
	}
	chart := newNetWorthChart(sim.NetWorth, sim.Labels, width-4)
	return chart.render()
}

// allocationBar renders a proportional bar for one waterfall bucket.
func allocationBar(value, total decimal.Decimal, width int) string {
	if total.LessThanOrEqual(decimal.Zero) {
		return ""
	}
	ratio, _ := value.Div(total).Float64()
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(colorAccent).Render(bar)
}
