// Package sheetparser maps a spreadsheet cell grid onto the three record
// families. Rows are never dropped for imperfect fields: an unreadable date
// is carried through as written and an unreadable amount becomes zero.
package sheetparser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/dateutils"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// ParserName identifies this parser in logs and errors.
const ParserName = "sheet"

// Column positions of the grid.
const (
	ColDate = iota
	ColCategory
	ColDescription
	ColAmount
	ColType
	ColNotes
	columnCount
)

// maxSerial is the last day spreadsheets can represent (9999-12-31).
const maxSerial = 2958465

// Parser converts cell grids into raw entries.
type Parser struct {
	tags   classifier.TypeTags
	logger logging.Logger
}

// New creates a Parser that routes rows with tags.
func New(tags classifier.TypeTags, logger logging.Logger) *Parser {
	return &Parser{
		tags:   tags,
		logger: logging.OrDefault(logger).WithField(logging.FieldParser, ParserName),
	}
}

// Name returns the parser name.
func (p *Parser) Name() string { return ParserName }

// row is one grid row with every cell read.
type row struct {
	date        string
	clock       string
	category    string
	description string
	amount      decimal.Decimal
	tag         string
	notes       string
}

// ParseGrid converts grid. Blank rows are ignored, and the first non-blank
// row is skipped when it is a header. Cells of a type no spreadsheet reader produces make the grid
// malformed.
func (p *Parser) ParseGrid(grid [][]any) (models.Batch, error) {
	var batch models.Batch

	first := true
	for i, cells := range grid {
		if isBlankRow(cells) {
			continue
		}
		if first {
			first = false
			if classifier.IsHeaderRow(stringCells(cells)) {
				p.logger.Debug("Skipping header row", logging.Field{Key: logging.FieldRow, Value: i + 1})
				continue
			}
		}

		r, err := readRow(cells)
		if err != nil {
			return models.Batch{}, &parsererror.InvalidFormatError{
				Source:               ParserName,
				ExpectedFormat:       "cells of type string, number, date or empty",
				ActualContentSnippet: fmt.Sprintf("row %d", i+1),
				Msg:                  err.Error(),
			}
		}

		switch p.tags.Family(r.tag) {
		case models.FamilyCredit:
			batch.Credit = append(batch.Credit, models.RawCreditEntry{
				TransactionDate: r.date,
				PostingDate:     r.date,
				Description:     r.description,
				Amount:          r.amount,
				BankCode:        r.notes,
				Category:        r.category,
			})
		case models.FamilyCash:
			batch.Cash = append(batch.Cash, models.RawCashEntry{
				Date:        r.date,
				Description: r.description,
				Amount:      r.amount,
				Category:    r.category,
				Notes:       r.notes,
			})
		default:
			batch.Deposit = append(batch.Deposit, models.RawDepositEntry{
				Date:        r.date,
				Time:        r.clock,
				Description: r.description,
				Amount:      r.amount,
				BankCode:    r.notes,
				Category:    r.category,
			})
		}
	}

	p.logger.Debug("Parsed cell grid",
		logging.Field{Key: logging.FieldCount, Value: batch.Len()},
		logging.Field{Key: logging.FieldRow, Value: len(grid)})
	return batch, nil
}

func readRow(cells []any) (row, error) {
	padded := make([]any, columnCount)
	copy(padded, cells)

	var r row
	var err error
	if r.date, r.clock, err = readDate(padded[ColDate]); err != nil {
		return row{}, err
	}
	if r.amount, err = readAmount(padded[ColAmount]); err != nil {
		return row{}, err
	}
	for _, f := range []struct {
		dst *string
		col int
	}{
		{&r.category, ColCategory},
		{&r.description, ColDescription},
		{&r.tag, ColType},
		{&r.notes, ColNotes},
	} {
		if *f.dst, err = cellString(padded[f.col]); err != nil {
			return row{}, err
		}
	}
	return r, nil
}

// readDate returns the date as YYYY/MM/DD and the time of day. A value that
// cannot be read as a date is returned as written.
func readDate(v any) (string, string, error) {
	switch d := v.(type) {
	case time.Time:
		return fromTime(d)
	case float64:
		return fromTime(dateutils.ExcelSerialToTime(d))
	case float32:
		return fromTime(dateutils.ExcelSerialToTime(float64(d)))
	case int:
		return fromTime(dateutils.ExcelSerialToTime(float64(d)))
	case int64:
		return fromTime(dateutils.ExcelSerialToTime(float64(d)))
	}

	s, err := cellString(v)
	if err != nil {
		return "", "", err
	}
	if s == "" {
		return models.UnknownDate, models.DefaultTime, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial <= maxSerial {
		return fromTime(dateutils.ExcelSerialToTime(serial))
	}
	if t, err := dateutils.ParseDate(s); err == nil {
		return fromTime(t)
	}
	return s, models.DefaultTime, nil
}

func fromTime(t time.Time) (string, string, error) {
	clock := models.DefaultTime
	if dateutils.HasClock(t) {
		clock = t.Format(dateutils.TimeLayout)
	}
	return t.Format(dateutils.DateLayoutSlash), clock, nil
}

func readAmount(v any) (decimal.Decimal, error) {
	switch a := v.(type) {
	case float64:
		return decimal.NewFromFloat(a), nil
	case float32:
		return decimal.NewFromFloat32(a), nil
	case int:
		return decimal.NewFromInt(int64(a)), nil
	case int64:
		return decimal.NewFromInt(a), nil
	}
	s, err := cellString(v)
	if err != nil {
		return decimal.Zero, err
	}
	return models.ParseAmountOrZero(s), nil
}

// cellString renders a scalar cell as trimmed text.
func cellString(v any) (string, error) {
	switch c := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(c), nil
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(c), nil
	case int64:
		return strconv.FormatInt(c, 10), nil
	case bool:
		return strconv.FormatBool(c), nil
	case time.Time:
		return c.Format(dateutils.DateLayoutSlash), nil
	default:
		return "", fmt.Errorf("unsupported cell type %T", v)
	}
}

func stringCells(cells []any) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		s, _ := cellString(c)
		out = append(out, s)
	}
	return out
}

func isBlankRow(cells []any) bool {
	for _, c := range cells {
		if s, err := cellString(c); err != nil || s != "" {
			return false
		}
	}
	return true
}
