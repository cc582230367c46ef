// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/report"
	"fjacquet/stmt-csv/internal/store"
)

// ImportFunc runs one import against the existing records.
type ImportFunc func(ctx context.Context, existing models.Existing) models.ImportResult

// Exporter writes an import result to CSV files.
type Exporter interface {
	ExportResult(result models.ImportResult, prefix string) ([]string, error)
}

// Options control what happens to accepted records.
type Options struct {
	// OutputPrefix, when set, exports each record family to <prefix>-<family>.csv.
	OutputPrefix string
	// DryRun leaves the record store untouched.
	DryRun bool
}

// RunImport loads the record store, runs the import, appends the accepted
// records to the store and exports them.
func RunImport(ctx context.Context, records store.RecordStore, run ImportFunc, exporter Exporter, opts Options, log logging.Logger) (models.ImportResult, error) {
	log = logging.OrDefault(log)

	existing, err := records.LoadRecords()
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("error loading record store: %w", err)
	}

	res := run(ctx, existing)
	if !res.Success {
		return res, fmt.Errorf("import failed: %s", res.Error)
	}

	accepted := len(res.CreditData) + len(res.DepositData) + len(res.CashData)
	if accepted > 0 && !opts.DryRun {
		merged := reconcile.Merge(existing, reconcile.Result{
			Credit:  res.CreditData,
			Deposit: res.DepositData,
			Cash:    res.CashData,
		})
		if err := records.SaveRecords(merged); err != nil {
			return res, fmt.Errorf("error saving record store: %w", err)
		}
		log.Info("Saved accepted records", logging.Field{Key: logging.FieldCount, Value: accepted})
	}

	if opts.OutputPrefix != "" && exporter != nil {
		files, err := exporter.ExportResult(res, opts.OutputPrefix)
		if err != nil {
			return res, fmt.Errorf("error exporting CSV: %w", err)
		}
		for _, f := range files {
			log.Info("Wrote CSV file", logging.Field{Key: logging.FieldOutputFile, Value: f})
		}
	}

	return res, nil
}

// ReadInput returns the contents of path, or of stdin when path is empty
// or "-".
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading input file: %w", err)
	}
	return string(data), nil
}

// WriteReport renders res to w as text, json or yaml.
func WriteReport(w io.Writer, res models.ImportResult, format string, log logging.Logger) error {
	out, err := report.NewReportGenerator(log).GenerateReport(res, format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
