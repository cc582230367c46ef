// Package report renders import results for the terminal or for other tools.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator renders an ImportResult in one of the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{
		logger: logging.OrDefault(logger).WithField(logging.FieldOperation, "report"),
	}
}

// GenerateReport renders result as text, json or yaml. An empty format
// means text.
func (g *ReportGenerator) GenerateReport(result models.ImportResult, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return g.generateTextReport(result), nil
	case FormatJSON:
		return g.generateJSONReport(result)
	case FormatYAML:
		return g.generateYAMLReport(result)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateTextReport writes a short human-readable summary.
func (g *ReportGenerator) generateTextReport(result models.ImportResult) []byte {
	var b bytes.Buffer
	if !result.Success {
		fmt.Fprintf(&b, "Import failed: %s\n", result.Error)
		return b.Bytes()
	}
	fmt.Fprintf(&b, "Imported: credit=%d deposit=%d cash=%d\n",
		len(result.CreditData), len(result.DepositData), len(result.CashData))
	s := result.SkippedDuplicates
	fmt.Fprintf(&b, "Skipped duplicates: credit=%d deposit=%d cash=%d\n", s.Credit, s.Deposit, s.Cash)
	if len(result.DetectedCategories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(result.DetectedCategories, ", "))
	}
	return b.Bytes()
}

// generateJSONReport renders the result with its wire field names.
func (g *ReportGenerator) generateJSONReport(result models.ImportResult) ([]byte, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

// generateYAMLReport renders the result the way the record store is written.
func (g *ReportGenerator) generateYAMLReport(result models.ImportResult) ([]byte, error) {
	out, err := yaml.Marshal(result)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}
