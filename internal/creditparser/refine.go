package creditparser

import (
	"fjacquet/stmt-csv/internal/models"
)

// Refinement adjusts an entry after positional extraction. It receives the
// description tokens and returns the tokens that remain the description.
type Refinement interface {
	Name() string
	Refine(desc []string, entry *models.RawCreditEntry) []string
}

// TrailingRemark moves an alphanumeric token at the end of the description
// (e.g. "ATM888") into the bank code, when no code was found already and the
// description keeps at least one token.
type TrailingRemark struct{}

// Name implements Refinement.
func (TrailingRemark) Name() string { return "trailing-remark" }

// Refine implements Refinement.
func (TrailingRemark) Refine(desc []string, entry *models.RawCreditEntry) []string {
	n := len(desc)
	if n < 2 || entry.BankCode != "" {
		return desc
	}
	last := desc[n-1]
	if models.IsNumericToken(last) || !isRemarkToken(last) {
		return desc
	}
	entry.BankCode = last
	return desc[:n-1]
}

// isRemarkToken accepts ASCII letters and digits with at least one digit.
func isRemarkToken(tok string) bool {
	hasDigit := false
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '-':
		default:
			return false
		}
	}
	return hasDigit
}
