package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/kmeehan/nestegg/internal/domain"
)

// CSVFormatter emits one row per simulated month: label, net worth,
// assets, liabilities.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil plan result")
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Month", "Label", "NetWorth", "Assets", "Liabilities"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	sim := result.Simulation
	for i := range sim.NetWorth {
		row := []string{
			strconv.Itoa(i + 1),
			sim.Labels[i],
			sim.NetWorth[i].StringFixed(2),
			sim.Assets[i].StringFixed(2),
			sim.Liabilities[i].StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
