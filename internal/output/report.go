package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kmeehan/nestegg/internal/domain"
)

// Formatter renders a plan result in one output format.
type Formatter interface {
	Name() string
	Format(result *domain.PlanResult) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	}
	return nil
}

// FormatterNames lists the supported format names.
func FormatterNames() []string {
	return []string{"console", "json", "csv"}
}

// FormatCurrency renders a decimal as $X,XXX.XX with a leading minus for
// negative amounts.
func FormatCurrency(d decimal.Decimal) string {
	neg := d.LessThan(decimal.Zero)
	s := d.Abs().StringFixed(2)

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	out := fmt.Sprintf("$%s.%s", grouped.String(), parts[1])
	if neg {
		return "-" + out
	}
	return out
}

// FormatMonth renders a 1-based month number as "year y, month m".
func FormatMonth(month int) string {
	year := (month-1)/12 + 1
	m := (month-1)%12 + 1
	return fmt.Sprintf("year %d, month %d", year, m)
}
