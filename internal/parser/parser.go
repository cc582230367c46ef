// Package parser defines the contract shared by the statement text parsers
// and the factory that selects one per dialect.
package parser

import (
	"fjacquet/stmt-csv/internal/models"
)

// TextParser turns statement text of one dialect into raw entries. Lines the
// parser does not recognize are skipped, never reported as errors.
type TextParser interface {
	// Name identifies the parser in logs.
	Name() string
	// Parse returns the entries found in text, in input order.
	Parse(text string) models.Batch
}
