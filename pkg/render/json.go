package render

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/silo/pkg/core"
)

// JSONEntries renders a listing as an indented JSON object carrying the
// entry count alongside the entries themselves.
func JSONEntries(entries []core.Entry) (string, error) {
	if entries == nil {
		entries = []core.Entry{}
	}
	payload := struct {
		TotalEntries int          `json:"total_entries"`
		Entries      []core.Entry `json:"entries"`
	}{len(entries), entries}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render entries: %w", err)
	}
	return string(data), nil
}

// StatsJSON renders a statistics report as indented JSON.
func StatsJSON(s *core.Stats) (string, error) {
	payload := struct {
		Success bool `json:"success"`
		*core.Stats
	}{true, s}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render stats: %w", err)
	}
	return string(data), nil
}

// HealthJSON renders a health report as indented JSON.
func HealthJSON(h *core.Health) (string, error) {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render health report: %w", err)
	}
	return string(data), nil
}
