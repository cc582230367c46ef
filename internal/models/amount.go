package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numericToken   = regexp.MustCompile(`^[-+]?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)
	placeholderSet = map[string]bool{"-": true, "--": true, "－": true}
)

// IsNumericToken reports whether s is a plain decimal number, optionally signed
// and with comma thousands separators ("1,234.50", "-150").
func IsNumericToken(s string) bool {
	return numericToken.MatchString(strings.TrimSpace(s))
}

// IsPlaceholderToken reports whether s is a dash standing in for an empty
// numeric column.
func IsPlaceholderToken(s string) bool {
	return placeholderSet[strings.TrimSpace(s)]
}

// ParseAmount parses a numeric token. It strips thousands separators and
// accepts a leading sign. The second return is false when s is not numeric.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !IsNumericToken(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}

// ParseAmountOrZero parses a spreadsheet amount cell. Currency marks and
// separators are removed; anything still unparseable yields zero.
func ParseAmountOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	for _, junk := range []string{",", "NT$", "$", "元", " "} {
		s = strings.ReplaceAll(s, junk, "")
	}
	if s == "" {
		return decimal.Zero
	}
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
