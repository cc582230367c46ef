// Package batch imports every statement file of a directory in one run
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/stmt-csv/internal/dateutils"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/sheetparser"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// include widens dr to cover a YYYY/MM/DD date. Other dates are ignored.
func (dr DateRange) include(date string) DateRange {
	if !dateutils.IsFullDate(date) {
		return dr
	}
	t, err := dateutils.ParseDate(date)
	if err != nil {
		return dr
	}
	return dr.Merge(DateRange{Start: t, End: t})
}

// FileKind is how a file is read.
type FileKind string

const (
	KindText  FileKind = "text"
	KindSheet FileKind = "sheet"
)

// KindOf classifies path by its extension.
func KindOf(path string) FileKind {
	if sheetparser.IsSpreadsheetFile(path) {
		return KindSheet
	}
	return KindText
}

// FileGroup represents the files of one kind
type FileGroup struct {
	Kind  FileKind
	Files []string
}

// ImportFileFunc imports one file against the records known so far.
type ImportFileFunc func(ctx context.Context, path string, existing models.Existing) models.ImportResult

// FileResult is the outcome of one file.
type FileResult struct {
	File   string
	Result models.ImportResult
}

// Summary is the outcome of a batch.
type Summary struct {
	Files  []FileResult
	Failed []string
	// Combined holds every accepted record of the batch.
	Combined  models.ImportResult
	DateRange DateRange
}

// BatchAggregator imports a set of files as one batch
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	return &BatchAggregator{
		logger: logging.OrDefault(logger),
	}
}

// GroupFilesByKind groups files by how they are read, text before sheet.
func (ba *BatchAggregator) GroupFilesByKind(files []string) []FileGroup {
	groups := make(map[FileKind]*FileGroup)

	for _, file := range files {
		kind := KindOf(file)
		ba.logger.Debug("File mapped to kind",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldParser, Value: string(kind)})

		group, exists := groups[kind]
		if !exists {
			group = &FileGroup{Kind: kind}
			groups[kind] = group
		}
		group.Files = append(group.Files, file)
	}

	var out []FileGroup
	for _, group := range groups {
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Kind > out[j].Kind
	})
	return out
}

// ImportFiles imports files in order. Each file is reconciled against
// existing plus everything the earlier files accepted, so overlapping
// statements converge. A file that fails is logged and skipped. It returns
// the summary and the grown record set.
func (ba *BatchAggregator) ImportFiles(ctx context.Context, files []string, existing models.Existing, importFile ImportFileFunc) (Summary, models.Existing) {
	summary := Summary{Combined: emptyResult()}
	seen := make(map[string]bool)

	ba.logger.Info("Importing files", logging.Field{Key: logging.FieldCount, Value: len(files)})

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			ba.logger.WithError(err).Warn("Batch import cancelled")
			break
		}

		res := importFile(ctx, file, existing)
		summary.Files = append(summary.Files, FileResult{File: file, Result: res})
		if !res.Success {
			ba.logger.Error("Failed to import file",
				logging.Field{Key: logging.FieldFile, Value: file},
				logging.Field{Key: logging.FieldError, Value: res.Error})
			summary.Failed = append(summary.Failed, file)
			continue
		}

		ba.logger.Debug("Imported file",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: logging.FieldCount, Value: len(res.CreditData) + len(res.DepositData) + len(res.CashData)})

		accepted := reconcile.Result{Credit: res.CreditData, Deposit: res.DepositData, Cash: res.CashData}
		existing = reconcile.Merge(existing, accepted)
		addResult(&summary.Combined, res, seen)
	}

	summary.DateRange = CalculateDateRange(summary.Combined)
	ba.logger.Info("Batch import finished",
		logging.Field{Key: logging.FieldCount, Value: len(summary.Files) - len(summary.Failed)},
		logging.Field{Key: logging.FieldStatus, Value: fmt.Sprintf("failed=%d", len(summary.Failed))})
	return summary, existing
}

// GenerateOutputPrefix returns the CSV prefix for a batch export in dir:
// statements_{start}_{end}, or statements when no date is known.
func (ba *BatchAggregator) GenerateOutputPrefix(dir string, dateRange DateRange) string {
	if s := dateRange.String(); s != "" {
		return filepath.Join(dir, "statements_"+s)
	}
	return filepath.Join(dir, "statements")
}

// CalculateDateRange spans the full dates of the records in res. Credit
// records dated MM/DD carry no year and are left out.
func CalculateDateRange(res models.ImportResult) DateRange {
	var dr DateRange
	for _, r := range res.CreditData {
		dr = dr.include(r.TransactionDate)
	}
	for _, r := range res.DepositData {
		dr = dr.include(r.Date)
	}
	for _, r := range res.CashData {
		dr = dr.include(r.Date)
	}
	return dr
}

func emptyResult() models.ImportResult {
	return models.ImportResult{
		Success:            true,
		CreditData:         []models.CreditRecord{},
		DepositData:        []models.DepositRecord{},
		CashData:           []models.CashRecord{},
		DetectedCategories: []string{},
	}
}

func addResult(total *models.ImportResult, res models.ImportResult, seen map[string]bool) {
	total.CreditData = append(total.CreditData, res.CreditData...)
	total.DepositData = append(total.DepositData, res.DepositData...)
	total.CashData = append(total.CashData, res.CashData...)
	total.SkippedDuplicates.Credit += res.SkippedDuplicates.Credit
	total.SkippedDuplicates.Deposit += res.SkippedDuplicates.Deposit
	total.SkippedDuplicates.Cash += res.SkippedDuplicates.Cash
	for _, c := range res.DetectedCategories {
		if !seen[c] {
			seen[c] = true
			total.DetectedCategories = append(total.DetectedCategories, c)
		}
	}
}
