// Package dateutils provides the date, time and text-width helpers shared by
// the statement parsers.
package dateutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Layouts used by Taiwanese statements and by the record store.
const (
	DateLayoutSlash = "2006/01/02"
	DateLayoutISO   = "2006-01-02"
	TimeLayout      = "15:04:05"
)

// CommonFormats is a list of formats tried, in order, when normalizing a
// free-form date string.
var CommonFormats = []string{
	DateLayoutSlash,
	"2006/1/2",
	DateLayoutISO,
	"2006-1-2",
	"2006.01.02",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"20060102",
}

var (
	shortDatePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	fullDatePattern  = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	timePattern      = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	timePrefix       = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:\s|$)`)
	spaceRun         = regexp.MustCompile(`[ \t\x{3000}]+`)
)

// excelEpoch is day zero of the 1900 date system as spreadsheets count it.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FoldWidth maps full-width digits, letters and punctuation to their ASCII
// forms so "１１／１４" and "11/14" tokenize the same way. CJK ideographs are
// left untouched.
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// IsShortDate reports whether tok is an MM/DD date token.
func IsShortDate(tok string) bool {
	return shortDatePattern.MatchString(tok)
}

// IsFullDate reports whether tok is a YYYY/MM/DD date token.
func IsFullDate(tok string) bool {
	return fullDatePattern.MatchString(tok)
}

// IsDateToken reports whether tok is either date shape.
func IsDateToken(tok string) bool {
	return IsShortDate(tok) || IsFullDate(tok)
}

// IsTime reports whether tok is exactly HH:MM:SS.
func IsTime(tok string) bool {
	return timePattern.MatchString(tok)
}

// StartsWithTime reports whether line begins with an HH:MM:SS token.
func StartsWithTime(line string) bool {
	return timePrefix.MatchString(line)
}

// NormalizeDate parses s with CommonFormats and renders it as YYYY/MM/DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayoutSlash), nil
}

// ParseDate attempts each of CommonFormats in turn.
func ParseDate(s string) (time.Time, error) {
	s = CleanDateString(s)
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// CleanDateString folds width and collapses runs of spaces.
func CleanDateString(s string) string {
	s = strings.TrimSpace(FoldWidth(s))
	return spaceRun.ReplaceAllString(s, " ")
}

// ExcelSerialToTime converts a spreadsheet serial day number (1900 system) to
// a UTC time. The fractional part is the time of day, rounded to the second.
func ExcelSerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	secs := math.Round((serial - days) * 86400)
	return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// HasClock reports whether t carries a non-midnight time of day.
func HasClock(t time.Time) bool {
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0
}
