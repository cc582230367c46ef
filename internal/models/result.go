package models

// SkipCounts reports how many parsed records per family were dropped because
// their ID already existed in the store.
type SkipCounts struct {
	Credit  int `json:"credit" yaml:"credit"`
	Deposit int `json:"deposit" yaml:"deposit"`
	Cash    int `json:"cash" yaml:"cash"`
}

// Total returns the sum over all families.
func (s SkipCounts) Total() int {
	return s.Credit + s.Deposit + s.Cash
}

// ImportResult is the single value an import returns. On failure Success is
// false, Error carries a human-readable message and every collection is empty.
type ImportResult struct {
	Success            bool            `json:"success" yaml:"success"`
	CreditData         []CreditRecord  `json:"creditData" yaml:"credit_data"`
	DepositData        []DepositRecord `json:"depositData" yaml:"deposit_data"`
	CashData           []CashRecord    `json:"cashData" yaml:"cash_data"`
	DetectedCategories []string        `json:"detectedCategories" yaml:"detected_categories"`
	SkippedDuplicates  SkipCounts      `json:"skippedDuplicates" yaml:"skipped_duplicates"`
	Error              string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewFailedResult returns the failure shape of ImportResult.
func NewFailedResult(message string) ImportResult {
	return ImportResult{
		Success:            false,
		CreditData:         []CreditRecord{},
		DepositData:        []DepositRecord{},
		CashData:           []CashRecord{},
		DetectedCategories: []string{},
		SkippedDuplicates:  SkipCounts{},
		Error:              message,
	}
}
