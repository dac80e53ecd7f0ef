package output

import (
	"encoding/json"
	"fmt"

	"github.com/kmeehan/nestegg/internal/domain"
)

// JSONFormatter emits the plan result verbatim as indented JSON — the
// exact serializable structures the UI contract reads.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil plan result")
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan result: %w", err)
	}
	return append(data, '\n'), nil
}
