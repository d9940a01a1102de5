package synth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cioinsight/deckgen/internal/model"
)

// ReportFileName is the on-disk name of a synthesized report.
const ReportFileName = "final_investment_report.json"

// SaveReport writes the report as indented JSON.
func SaveReport(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// LoadReport reads a previously synthesized report.
func LoadReport(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &report, nil
}
