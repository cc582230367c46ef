// Package classifier decides which statement dialect a piece of text belongs
// to, line by line and for a whole paste, and which record family a
// spreadsheet row's type tag selects.
package classifier

import (
	"strings"

	"fjacquet/stmt-csv/internal/dateutils"
)

// Dialect is the statement family a block of text is printed in.
type Dialect string

const (
	DialectUnknown Dialect = ""
	DialectCredit  Dialect = "credit"
	DialectDeposit Dialect = "deposit"
)

// Other returns the dialect to fall back to when d produced nothing.
func (d Dialect) Other() Dialect {
	switch d {
	case DialectCredit:
		return DialectDeposit
	case DialectDeposit:
		return DialectCredit
	default:
		return DialectUnknown
	}
}

// LineKind is the shape of a single statement line.
type LineKind int

const (
	// LineBlank is empty or whitespace only.
	LineBlank LineKind = iota
	// LineDateHeader is a line holding nothing but YYYY/MM/DD.
	LineDateHeader
	// LineTime starts with HH:MM:SS (deposit transaction line).
	LineTime
	// LineDated starts with an MM/DD or YYYY/MM/DD token followed by content.
	LineDated
	// LineOther matches no primary shape; inside a deposit entry it is a continuation.
	LineOther
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineDateHeader:
		return "date-header"
	case LineTime:
		return "time"
	case LineDated:
		return "dated"
	default:
		return "other"
	}
}

// NormalizeLine folds full-width characters and trims surrounding space.
// Interior tabs are kept because deposit layouts depend on them.
func NormalizeLine(line string) string {
	return strings.TrimSpace(dateutils.FoldWidth(strings.TrimRight(line, "\r")))
}

// ClassifyLine returns the shape of a normalized line.
func ClassifyLine(line string) LineKind {
	if line == "" {
		return LineBlank
	}
	if dateutils.IsFullDate(line) {
		return LineDateHeader
	}
	if dateutils.StartsWithTime(line) {
		return LineTime
	}
	fields := strings.Fields(line)
	if len(fields) > 1 && dateutils.IsDateToken(fields[0]) {
		return LineDated
	}
	return LineOther
}

// SplitLines splits text on newlines and normalizes each line.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, NormalizeLine(l))
	}
	return lines
}

// LineStats counts line shapes over a block of text. A dated line that
// carries HH:MM:SS after its date counts as a time line.
type LineStats struct {
	DateHeaders int
	TimeLines   int
	DatedLines  int
	Other       int
}

// Stats classifies every line of text.
func Stats(text string) LineStats {
	var s LineStats
	for _, l := range SplitLines(text) {
		switch ClassifyLine(l) {
		case LineDateHeader:
			s.DateHeaders++
		case LineTime:
			s.TimeLines++
		case LineDated:
			if fields := strings.Fields(l); dateutils.IsTime(fields[1]) {
				s.TimeLines++
			} else {
				s.DatedLines++
			}
		case LineOther:
			s.Other++
		}
	}
	return s
}

// DetectDialect guesses the dialect from line shapes alone. Time lines and
// bare date headers vote for a deposit ledger, leading-date lines for a
// credit-card statement; a tie goes to credit.
func DetectDialect(text string) Dialect {
	s := Stats(text)
	deposit := s.TimeLines + s.DateHeaders
	switch {
	case deposit > s.DatedLines:
		return DialectDeposit
	case s.DatedLines > 0:
		return DialectCredit
	default:
		return DialectUnknown
	}
}
