package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// netWorthChart renders the projected net-worth series as a braille-free
// ASCII line chart with a dollar-scaled Y axis and year ticks on the X
// axis.
type netWorthChart struct {
	points []float64
	labels []string
	width  int
	height int
}

func newNetWorthChart(series []decimal.Decimal, labels []string, width int) netWorthChart {
	points := make([]float64, len(series))
	for i, d := range series {
		points[i], _ = d.Float64()
	}
	if width < 40 {
		width = 40
	}
	return netWorthChart{points: points, labels: labels, width: width, height: 14}
}

func (c netWorthChart) render() string {
	if len(c.points) == 0 {
		return labelStyle.Render("No data to display")
	}

	minVal, maxVal := c.points[0], c.points[0]
	for _, p := range c.points {
		minVal = math.Min(minVal, p)
		maxVal = math.Max(maxVal, p)
	}
	pad := (maxVal - minVal) * 0.1
	if pad == 0 {
		pad = 1
	}
	minVal -= pad
	maxVal += pad

	yAxisWidth := 10
	chartWidth := c.width - yAxisWidth - 3

	grid := make([][]rune, c.height)
	for i := range grid {
		grid[i] = make([]rune, chartWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i, p := range c.points {
		x := 0
		if len(c.points) > 1 {
			x = int(float64(i) / float64(len(c.points)-1) * float64(chartWidth-1))
		}
		y := c.height - 1 - int((p-minVal)/(maxVal-minVal)*float64(c.height-1))
		if x >= 0 && x < chartWidth && y >= 0 && y < c.height {
			grid[y][x] = '•'
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(colorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for i, row := range grid {
		yValue := maxVal - (float64(i)/float64(c.height-1))*(maxVal-minVal)
		out.WriteString(axisStyle.Render(formatAxisValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))
	out.WriteString("\n")

	// X-axis ticks: first and last label.
	if n := len(c.labels); n > 0 {
		tick := lipgloss.NewStyle().Foreground(colorMuted)
		line := fmt.Sprintf("%s%s%s",
			c.labels[0],
			strings.Repeat(" ", maxInt(1, chartWidth/2-len(c.labels[0]))),
			c.labels[n-1])
		out.WriteString(strings.Repeat(" ", yAxisWidth+3))
		out.WriteString(tick.Render(line))
	}

	return out.String()
}

func formatAxisValue(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		return fmt.Sprintf("$%.0fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
