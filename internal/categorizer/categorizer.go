// Package categorizer resolves the category of a processed record by trying
// strategies in order:
//  1. the category already held in the record store for the same ID
//  2. a category fixed by the source row
//  3. keyword category rules on the processed description
//  4. the category printed on the statement line
//
// and falling back to the default category.
package categorizer

import (
	"context"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/rules"
)

// Categorizer runs the strategy chain.
type Categorizer struct {
	strategies      []CategorizationStrategy
	defaultCategory string
	logger          logging.Logger
}

// NewCategorizer builds the standard chain over the store index and rule
// engine. Either may be nil.
func NewCategorizer(index *reconcile.Index, engine *rules.Engine, logger logging.Logger) *Categorizer {
	def := models.DefaultCategory
	if engine != nil {
		def = engine.DefaultCategory()
	}
	return NewCategorizerWithStrategies(def, logger,
		NewStoreStrategy(index),
		SourceStrategy{},
		NewRuleStrategy(engine),
		StatementStrategy{},
	)
}

// NewCategorizerWithStrategies builds a custom chain.
func NewCategorizerWithStrategies(defaultCategory string, logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if defaultCategory == "" {
		defaultCategory = models.DefaultCategory
	}
	return &Categorizer{
		strategies:      strategies,
		defaultCategory: defaultCategory,
		logger:          logging.OrDefault(logger),
	}
}

// Categorize returns the category for s and the attempts made. Strategy
// errors are logged and the next strategy is tried.
func (c *Categorizer) Categorize(ctx context.Context, s Subject) (string, StrategyResults) {
	var results StrategyResults
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, s)
		results.Results = append(results.Results, StrategyResult{
			Strategy: strategy.Name(),
			Category: category,
			Found:    found,
			Error:    err,
		})
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: logging.FieldOperation, Value: strategy.Name()},
				logging.Field{Key: logging.FieldRecordID, Value: s.ID})
			continue
		}
		if found {
			c.logger.Debug("Record categorized",
				logging.Field{Key: logging.FieldRecordID, Value: s.ID},
				logging.Field{Key: logging.FieldCategory, Value: category},
				logging.Field{Key: logging.FieldOperation, Value: strategy.Name()})
			return category, results
		}
	}
	return c.defaultCategory, results
}
