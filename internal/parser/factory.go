package parser

import (
	"fmt"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/creditparser"
	"fjacquet/stmt-csv/internal/depositparser"
	"fjacquet/stmt-csv/internal/logging"
)

// Options bundles the per-dialect parser options.
type Options struct {
	Credit  creditparser.Options
	Deposit depositparser.Options
}

// DefaultOptions returns the default options of every parser.
func DefaultOptions() Options {
	return Options{Credit: creditparser.DefaultOptions(), Deposit: depositparser.DefaultOptions()}
}

// Factory hands out the parser for a dialect.
type Factory struct {
	parsers map[classifier.Dialect]TextParser
}

// NewFactory builds one parser per dialect.
func NewFactory(opts Options, logger logging.Logger) *Factory {
	return &Factory{parsers: map[classifier.Dialect]TextParser{
		classifier.DialectCredit:  creditparser.New(opts.Credit, logger),
		classifier.DialectDeposit: depositparser.New(opts.Deposit, logger),
	}}
}

// GetParser returns the parser for dialect.
func (f *Factory) GetParser(dialect classifier.Dialect) (TextParser, error) {
	p, ok := f.parsers[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown statement dialect: %q", dialect)
	}
	return p, nil
}
