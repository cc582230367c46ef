// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// Family names one of the three output record sets.
type Family string

const (
	FamilyCredit  Family = "credit"
	FamilyDeposit Family = "deposit"
	FamilyCash    Family = "cash"
)

// RawCreditEntry is a credit-card line as extracted by a parser, before rules run.
//
// InitialCategory is the category printed on the statement line, used only as a
// fallback. Category is a category fixed by the source itself (spreadsheet
// import) and wins over rules.
type RawCreditEntry struct {
	ID              string          `json:"id" yaml:"id"`
	TransactionDate string          `json:"transactionDate" yaml:"transaction_date"`
	PostingDate     string          `json:"postingDate" yaml:"posting_date"`
	Description     string          `json:"description" yaml:"description"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	BankCode        string          `json:"bankCode,omitempty" yaml:"bank_code,omitempty"`
	InitialCategory string          `json:"initialCategory,omitempty" yaml:"initial_category,omitempty"`
	Category        string          `json:"category,omitempty" yaml:"category,omitempty"`
}

// IdentityFields returns the stable fields the record ID is derived from.
// Category and bank code never take part.
func (e RawCreditEntry) IdentityFields() []string {
	return []string{e.TransactionDate, e.PostingDate, e.Description, e.Amount.String()}
}

// CreditRecord is a credit-card transaction after rule processing.
type CreditRecord struct {
	ID              string          `json:"id" yaml:"id"`
	TransactionDate string          `json:"transactionDate" yaml:"transaction_date"`
	PostingDate     string          `json:"postingDate" yaml:"posting_date"`
	Description     string          `json:"description" yaml:"description"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	BankCode        string          `json:"bankCode,omitempty" yaml:"bank_code,omitempty"`
	Category        string          `json:"category" yaml:"category"`
}

// RawDepositEntry is a deposit-account ledger entry as extracted by a parser.
// Amount is positive for withdrawals and negative for deposits.
type RawDepositEntry struct {
	ID          string          `json:"id" yaml:"id"`
	Date        string          `json:"date" yaml:"date"`
	Time        string          `json:"time" yaml:"time"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	BankCode    string          `json:"bankCode,omitempty" yaml:"bank_code,omitempty"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
}

// IdentityFields returns the stable fields the record ID is derived from.
// The remark is excluded: continuation lines may add to it independently.
func (e RawDepositEntry) IdentityFields() []string {
	return []string{e.Date, e.Time, e.Description, e.Amount.String()}
}

// DepositRecord is a deposit-account transaction after rule processing.
type DepositRecord struct {
	ID          string          `json:"id" yaml:"id"`
	Date        string          `json:"date" yaml:"date"`
	Time        string          `json:"time" yaml:"time"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	BankCode    string          `json:"bankCode,omitempty" yaml:"bank_code,omitempty"`
	Category    string          `json:"category" yaml:"category"`
}

// RawCashEntry is a cash row from a spreadsheet import.
type RawCashEntry struct {
	ID          string          `json:"id" yaml:"id"`
	Date        string          `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
	Notes       string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IdentityFields returns the stable fields the record ID is derived from.
func (e RawCashEntry) IdentityFields() []string {
	return []string{e.Date, e.Description, e.Amount.String()}
}

// CashRecord is a manually entered or imported cash transaction.
type CashRecord struct {
	ID          string          `json:"id" yaml:"id"`
	Date        string          `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Notes       string          `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Batch holds the raw entries produced by one parse invocation.
type Batch struct {
	Credit  []RawCreditEntry
	Deposit []RawDepositEntry
	Cash    []RawCashEntry
}

// Len returns the number of entries across all families.
func (b Batch) Len() int {
	return len(b.Credit) + len(b.Deposit) + len(b.Cash)
}

// Existing is the caller-owned record store an import reconciles against.
// It is read-only input.
type Existing struct {
	Credit  []CreditRecord  `json:"credit" yaml:"credit"`
	Deposit []DepositRecord `json:"deposit" yaml:"deposit"`
	Cash    []CashRecord    `json:"cash" yaml:"cash"`
}
