// Package depositparser turns deposit-account ledger text into entries.
//
// A ledger groups transactions under date headers. Each transaction line
// starts with its time, and a following line that matches no other shape
// (typically a wrapped account number or memo) is appended to the remark:
//
//	2024/05/01
//	09:15:00	提款	2000			ATM888
//	10:02:11 轉帳 - 5,000 53,000
//	0012345678901
//
// Tab-delimited lines are split into columns using a layout picked by column
// count. Other lines are read from the tail: an optional remark, then
// balance, deposit and withdrawal.
package depositparser

import (
	"strings"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/dateutils"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/shopspring/decimal"
)

// ParserName identifies this parser in logs and errors.
const ParserName = "deposit"

// maxNumericColumns is how many numeric columns (withdrawal, deposit,
// balance) a whitespace line carries at most.
const maxNumericColumns = 3

// Options configure the deposit parser.
type Options struct {
	// DefaultTime stamps entries from layouts without a time column.
	DefaultTime string
	// Layouts are tried by column count for tab-delimited lines.
	Layouts []Layout
	// RemarkOverrides lists descriptions whose numeric suffix is a remark.
	RemarkOverrides []string
	// DatedLines accepts transaction lines that start with their own date
	// and carry no time ("05/03 薪資 - 50,000 98,000"). Off by default since
	// that is also the shape of a credit-card line; a dated line followed by
	// HH:MM:SS is always accepted.
	DatedLines bool
}

// DefaultOptions returns the built-in layouts and time default.
func DefaultOptions() Options {
	return Options{DefaultTime: models.DefaultTime, Layouts: DefaultLayouts()}
}

// Parser parses deposit-account ledgers.
type Parser struct {
	defaultTime string
	layouts     []Layout
	overrides   Overrides
	datedLines  bool
	logger      logging.Logger
}

// New creates a Parser. Missing options fall back to DefaultOptions.
func New(opts Options, logger logging.Logger) *Parser {
	if opts.DefaultTime == "" {
		opts.DefaultTime = models.DefaultTime
	}
	if len(opts.Layouts) == 0 {
		opts.Layouts = DefaultLayouts()
	}
	return &Parser{
		defaultTime: opts.DefaultTime,
		layouts:     opts.Layouts,
		overrides:   NewOverrides(opts.RemarkOverrides),
		datedLines:  opts.DatedLines,
		logger:      logging.OrDefault(logger).WithField(logging.FieldParser, ParserName),
	}
}

// Name returns the parser name.
func (p *Parser) Name() string { return ParserName }

// Parse implements the common text parser contract.
func (p *Parser) Parse(text string) models.Batch {
	return models.Batch{Deposit: p.ParseText(text)}
}

// ParseText runs the ledger state machine over text.
func (p *Parser) ParseText(text string) []models.RawDepositEntry {
	m := newMachine(p)
	for i, line := range classifier.SplitLines(text) {
		m.feed(i+1, line)
	}
	entries := m.finish()

	p.logger.Debug("Parsed deposit text", logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries
}

// parseTimeLine reads a line starting with HH:MM:SS.
func (p *Parser) parseTimeLine(date, line string) models.RawDepositEntry {
	if strings.Contains(line, "\t") {
		values := strings.Split(line, "\t")
		if dateutils.IsTime(strings.TrimSpace(values[0])) {
			if entry, ok := p.fromColumns(date, values); ok {
				return entry
			}
		}
	}

	tokens := strings.Fields(line)
	return p.fromTokens(date, tokens[0], tokens[1:])
}

// parseDatedLine reads a line that carries its own date and, optionally, a
// time. Short MM/DD dates take their year from the current date header.
func (p *Parser) parseDatedLine(currentDate, line string) models.RawDepositEntry {
	if strings.Contains(line, "\t") {
		values := strings.Split(line, "\t")
		head := strings.Fields(values[0])
		if len(head) > 0 && dateutils.IsDateToken(head[0]) {
			date := p.resolveDate(currentDate, head[0])
			values[0] = p.defaultTime
			if len(head) > 1 && dateutils.IsTime(head[1]) {
				values[0] = head[1]
			}
			if entry, ok := p.fromColumns(date, values); ok {
				return entry
			}
		}
	}

	tokens := strings.Fields(line)
	date := p.resolveDate(currentDate, tokens[0])
	rest := tokens[1:]
	clock := p.defaultTime
	if len(rest) > 0 && dateutils.IsTime(rest[0]) {
		clock, rest = rest[0], rest[1:]
	}
	return p.fromTokens(date, clock, rest)
}

// acceptsDatedLine reports whether a line starting with a date is a ledger
// transaction rather than something else, such as a credit-card line.
func (p *Parser) acceptsDatedLine(line string) bool {
	if p.datedLines {
		return true
	}
	fields := strings.Fields(line)
	return len(fields) > 1 && dateutils.IsTime(fields[1])
}

// fromColumns maps tab-separated values through the matching layout.
func (p *Parser) fromColumns(date string, values []string) (models.RawDepositEntry, bool) {
	layout, ok := selectLayout(p.layouts, len(values))
	if !ok {
		p.logger.Debug("No deposit layout for column count",
			logging.Field{Key: logging.FieldCount, Value: len(values)})
		return models.RawDepositEntry{}, false
	}

	c := layout.split(values)
	desc := strings.Join(c.description, " ")
	remark := c.remark
	if key, suffix, ok := p.overrides.Split(desc); ok {
		desc = key
		remark = joinRemark(suffix, remark)
	}

	clock := c.time
	if clock == "" {
		clock = p.defaultTime
	}
	return models.RawDepositEntry{
		Date:        date,
		Time:        clock,
		Description: desc,
		Amount:      signedAmount(c.withdrawal, c.deposit),
		BankCode:    remark,
	}, true
}

// fromTokens reverse-parses whitespace-separated fields.
func (p *Parser) fromTokens(date, clock string, tokens []string) models.RawDepositEntry {
	tokens, remark := p.overrides.splitTokens(tokens)

	end := len(tokens)
	if end >= 2 && !isColumnValue(tokens[end-1]) && isColumnValue(tokens[end-2]) {
		remark = joinRemark(remark, tokens[end-1])
		end--
	}

	// balance, deposit, withdrawal, reading right to left
	var numeric [maxNumericColumns]string
	n := 0
	for n < maxNumericColumns && end > 0 && isColumnValue(tokens[end-1]) {
		numeric[n] = tokens[end-1]
		n++
		end--
	}

	return models.RawDepositEntry{
		Date:        date,
		Time:        clock,
		Description: strings.Join(tokens[:end], " "),
		Amount:      signedAmount(numeric[2], numeric[1]),
		BankCode:    remark,
	}
}

func (p *Parser) resolveDate(currentDate, tok string) string {
	if dateutils.IsShortDate(tok) && len(currentDate) >= 4 {
		tok = currentDate[:4] + "/" + tok
	}
	if normalized, err := dateutils.NormalizeDate(tok); err == nil {
		return normalized
	}
	return tok
}

func normalizeHeader(line string) string {
	if normalized, err := dateutils.NormalizeDate(line); err == nil {
		return normalized
	}
	return line
}

// signedAmount applies the ledger sign convention: withdrawals are positive,
// deposits negative.
func signedAmount(withdrawal, deposit string) decimal.Decimal {
	if w := columnAmount(withdrawal); w.IsPositive() {
		return w
	}
	if d := columnAmount(deposit); d.IsPositive() {
		return d.Neg()
	}
	return decimal.Zero
}

func columnAmount(s string) decimal.Decimal {
	if s == "" || models.IsPlaceholderToken(s) {
		return decimal.Zero
	}
	amount, ok := models.ParseAmount(s)
	if !ok {
		return decimal.Zero
	}
	return amount
}

// isColumnValue reports whether tok can fill a numeric column.
func isColumnValue(tok string) bool {
	return models.IsNumericToken(tok) || models.IsPlaceholderToken(tok)
}
