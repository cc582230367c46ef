// Package common provides CSV export of processed records.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// CreditRow is the CSV layout of a credit-card record.
type CreditRow struct {
	ID              string `csv:"ID"`
	TransactionDate string `csv:"TransactionDate"`
	PostingDate     string `csv:"PostingDate"`
	Description     string `csv:"Description"`
	Amount          string `csv:"Amount"`
	BankCode        string `csv:"BankCode"`
	Category        string `csv:"Category"`
}

// DepositRow is the CSV layout of a deposit-account record.
type DepositRow struct {
	ID          string `csv:"ID"`
	Date        string `csv:"Date"`
	Time        string `csv:"Time"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	BankCode    string `csv:"BankCode"`
	Category    string `csv:"Category"`
}

// CashRow is the CSV layout of a cash record.
type CashRow struct {
	ID          string `csv:"ID"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Notes       string `csv:"Notes"`
}

// CreditRows converts records to CSV rows.
func CreditRows(records []models.CreditRecord) []CreditRow {
	rows := make([]CreditRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, CreditRow{
			ID:              r.ID,
			TransactionDate: r.TransactionDate,
			PostingDate:     r.PostingDate,
			Description:     r.Description,
			Amount:          r.Amount.String(),
			BankCode:        r.BankCode,
			Category:        r.Category,
		})
	}
	return rows
}

// DepositRows converts records to CSV rows.
func DepositRows(records []models.DepositRecord) []DepositRow {
	rows := make([]DepositRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, DepositRow{
			ID:          r.ID,
			Date:        r.Date,
			Time:        r.Time,
			Description: r.Description,
			Amount:      r.Amount.String(),
			BankCode:    r.BankCode,
			Category:    r.Category,
		})
	}
	return rows
}

// CashRows converts records to CSV rows.
func CashRows(records []models.CashRecord) []CashRow {
	rows := make([]CashRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, CashRow{
			ID:          r.ID,
			Date:        r.Date,
			Description: r.Description,
			Amount:      r.Amount.String(),
			Category:    r.Category,
			Notes:       r.Notes,
		})
	}
	return rows
}

// CSVWriter writes record rows with a configured delimiter.
type CSVWriter struct {
	Delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a writer. A zero delimiter means a comma.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVWriter{Delimiter: delimiter, logger: logging.OrDefault(logger)}
}

// WriteRows marshals rows to csvFile, creating its directory when needed.
func WriteRows[TCSVRow any](w *CSVWriter, rows []TCSVRow, csvFile string) error {
	logger := w.logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	logger.Info("Writing records to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.Delimiter

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ExportFiles names the per-family output files of an export.
type ExportFiles struct {
	Credit  string
	Deposit string
	Cash    string
}

// ExportPaths derives the per-family file names from prefix, e.g.
// "out/2024-05" gives "out/2024-05-credit.csv".
func ExportPaths(prefix string) ExportFiles {
	return ExportFiles{
		Credit:  prefix + "-" + string(models.FamilyCredit) + ".csv",
		Deposit: prefix + "-" + string(models.FamilyDeposit) + ".csv",
		Cash:    prefix + "-" + string(models.FamilyCash) + ".csv",
	}
}

// ExportResult writes the non-empty families of result next to prefix and
// returns the files written.
func (w *CSVWriter) ExportResult(result models.ImportResult, prefix string) ([]string, error) {
	paths := ExportPaths(prefix)
	var written []string

	if len(result.CreditData) > 0 {
		if err := WriteRows(w, CreditRows(result.CreditData), paths.Credit); err != nil {
			return written, err
		}
		written = append(written, paths.Credit)
	}
	if len(result.DepositData) > 0 {
		if err := WriteRows(w, DepositRows(result.DepositData), paths.Deposit); err != nil {
			return written, err
		}
		written = append(written, paths.Deposit)
	}
	if len(result.CashData) > 0 {
		if err := WriteRows(w, CashRows(result.CashData), paths.Cash); err != nil {
			return written, err
		}
		written = append(written, paths.Cash)
	}
	return written, nil
}

// ReadCSVFile reads CSV data into a slice of row structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}
