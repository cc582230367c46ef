// Package creditparser extracts credit-card transactions from pasted
// statement text.
//
// A credit-card line starts with a transaction date (MM/DD or YYYY/MM/DD),
// optionally followed by a posting date, an optional single-token category
// printed by some banks, the description, the amount and, in some layouts, a
// trailing card or reference code:
//
//	11/14 11/15 吃 摩斯漢堡 150 12345
//	2024/11/14 全家便利商店 -85
package creditparser

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/dateutils"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parsererror"
)

// ParserName identifies this parser in logs and errors.
const ParserName = "credit"

const (
	// minCodeDigits is the shortest trailing digit run read as a
	// card/reference code rather than as the amount. Four-digit amounts
	// printed without a separator are common, so a code needs five.
	minCodeDigits = 5
	// maxBareAmountDigits bounds an amount printed without separators when it
	// sits in front of a code.
	maxBareAmountDigits = 6
)

var (
	errNoDate        = errors.New("line does not start with a date")
	errNoAmount      = errors.New("no numeric amount at end of line")
	errNoDescription = errors.New("description is empty")
)

// Options tune dialect-specific behavior.
type Options struct {
	// StripRemark enables the TrailingRemark refinement. Off by default: it
	// corrupts multi-word descriptions on some statements.
	StripRemark bool
	// CategoryHintMaxRunes is the longest all-Han token accepted as a printed
	// category right after the dates. Zero disables the shape test.
	CategoryHintMaxRunes int
	// KnownCategories are always accepted as a printed category.
	KnownCategories []string
	// Refinements run after positional extraction, in order.
	Refinements []Refinement
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{CategoryHintMaxRunes: 1}
}

// Parser parses credit-card statement lines.
type Parser struct {
	opts        Options
	known       map[string]bool
	refinements []Refinement
	logger      logging.Logger
}

// New creates a Parser.
func New(opts Options, logger logging.Logger) *Parser {
	known := make(map[string]bool, len(opts.KnownCategories))
	for _, c := range opts.KnownCategories {
		if c = strings.TrimSpace(c); c != "" {
			known[c] = true
		}
	}

	refinements := append([]Refinement(nil), opts.Refinements...)
	if opts.StripRemark {
		refinements = append(refinements, TrailingRemark{})
	}

	return &Parser{
		opts:        opts,
		known:       known,
		refinements: refinements,
		logger:      logging.OrDefault(logger).WithField(logging.FieldParser, ParserName),
	}
}

// Name returns the parser name.
func (p *Parser) Name() string { return ParserName }

// Parse implements the common text parser contract.
func (p *Parser) Parse(text string) models.Batch {
	return models.Batch{Credit: p.ParseText(text)}
}

// ParseText parses every credit-card line in text. Lines that do not parse
// are skipped.
func (p *Parser) ParseText(text string) []models.RawCreditEntry {
	var entries []models.RawCreditEntry
	for i, line := range classifier.SplitLines(text) {
		if classifier.ClassifyLine(line) != classifier.LineDated {
			continue
		}
		entry, err := p.ParseLine(line)
		if err != nil {
			p.logger.WithError(err).Debug("Skipping credit-card line",
				logging.Field{Key: logging.FieldLine, Value: i + 1})
			continue
		}
		entries = append(entries, entry)
	}

	p.logger.Debug("Parsed credit-card text", logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries
}

// ParseLine parses a single normalized line. The returned error is a
// *parsererror.ParseError describing why the line was rejected.
func (p *Parser) ParseLine(line string) (models.RawCreditEntry, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || !dateutils.IsDateToken(tokens[0]) {
		return models.RawCreditEntry{}, p.reject("transactionDate", line, errNoDate)
	}

	entry := models.RawCreditEntry{TransactionDate: tokens[0], PostingDate: tokens[0]}
	rest := tokens[1:]
	if dateutils.IsDateToken(rest[0]) {
		entry.PostingDate = rest[0]
		rest = rest[1:]
	}

	rest, ok := p.takeAmount(rest, &entry)
	if !ok {
		return models.RawCreditEntry{}, p.reject("amount", line, errNoAmount)
	}

	rest = p.takeCategoryHint(rest, &entry)

	for _, r := range p.refinements {
		rest = r.Refine(rest, &entry)
	}

	entry.Description = strings.Join(rest, " ")
	if entry.Description == "" {
		return models.RawCreditEntry{}, p.reject("description", line, errNoDescription)
	}
	return entry, nil
}

// takeAmount strips the amount (and a trailing code, when two numeric tokens
// end the line) from the tail of tokens.
func (p *Parser) takeAmount(tokens []string, entry *models.RawCreditEntry) ([]string, bool) {
	n := len(tokens)
	if n == 0 {
		return tokens, false
	}

	if n >= 2 && isCodeAfterAmount(tokens[n-2], tokens[n-1]) {
		amount, ok := models.ParseAmount(tokens[n-2])
		if ok {
			entry.Amount = amount
			entry.BankCode = tokens[n-1]
			return tokens[:n-2], true
		}
	}

	amount, ok := models.ParseAmount(tokens[n-1])
	if !ok {
		return tokens, false
	}
	entry.Amount = amount
	return tokens[:n-1], true
}

// takeCategoryHint consumes a printed category directly after the dates when
// at least one non-numeric description token follows it.
func (p *Parser) takeCategoryHint(tokens []string, entry *models.RawCreditEntry) []string {
	if len(tokens) < 2 || !p.isCategoryHint(tokens[0]) {
		return tokens
	}
	for _, t := range tokens[1:] {
		if !models.IsNumericToken(t) {
			entry.InitialCategory = tokens[0]
			return tokens[1:]
		}
	}
	return tokens
}

func (p *Parser) isCategoryHint(tok string) bool {
	if p.known[tok] {
		return true
	}
	max := p.opts.CategoryHintMaxRunes
	if max <= 0 || utf8.RuneCountInString(tok) > max {
		return false
	}
	for _, r := range tok {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}

func (p *Parser) reject(field, value string, err error) error {
	return &parsererror.ParseError{Parser: ParserName, Field: field, Value: value, Err: err}
}

// isCodeAfterAmount reports whether the line ends "amount code": code is a
// long bare digit run, amount reads as a printed amount and is shorter than
// the code. A long or zero-padded number in front is a phone or account
// number that belongs to the description.
func isCodeAfterAmount(amount, code string) bool {
	if !isCodeToken(code) || !models.IsNumericToken(amount) {
		return false
	}
	digits := strings.TrimLeft(amount, "+-")
	if strings.ContainsAny(digits, ",.") {
		return true
	}
	if len(digits) > maxBareAmountDigits || (len(digits) > 1 && digits[0] == '0') {
		return false
	}
	return len(digits) < len(code)
}

// isCodeToken reports whether tok is a bare run of digits long enough to be a
// card or reference number.
func isCodeToken(tok string) bool {
	if len(tok) < minCodeDigits {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
