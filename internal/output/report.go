package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dealerdesk/vehtax/internal/domain"
	"gopkg.in/yaml.v3"
)

// ReportGenerator renders calculation results in the supported formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes a result to w in the specified format.
func GenerateReport(w io.Writer, result *domain.TaxCalculationResult, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.GenerateConsoleReport(w, result)
	case "json":
		return generator.GenerateJSONReport(w, result)
	case "yaml":
		return generator.GenerateYAMLReport(w, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateJSONReport writes the result as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, result *domain.TaxCalculationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// GenerateYAMLReport writes the result as YAML.
func (rg *ReportGenerator) GenerateYAMLReport(w io.Writer, result *domain.TaxCalculationResult) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return nil
}
