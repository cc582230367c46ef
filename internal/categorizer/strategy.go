package categorizer

import (
	"context"

	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/rules"
)

// CategorizationStrategy is one way of finding a record's category.
type CategorizationStrategy interface {
	// Categorize returns the category and whether this strategy decided it.
	Categorize(ctx context.Context, s Subject) (string, bool, error)

	// Name returns the name of this strategy for logging.
	Name() string
}

// StoreStrategy reuses the category of a record already in the store, so a
// re-import never overwrites a manual re-categorization.
type StoreStrategy struct {
	index *reconcile.Index
}

// NewStoreStrategy creates a StoreStrategy over index.
func NewStoreStrategy(index *reconcile.Index) *StoreStrategy {
	return &StoreStrategy{index: index}
}

// Name implements CategorizationStrategy.
func (s *StoreStrategy) Name() string { return "Store" }

// Categorize implements CategorizationStrategy. The stored category is used
// verbatim, even when empty.
func (s *StoreStrategy) Categorize(_ context.Context, subj Subject) (string, bool, error) {
	if s.index == nil {
		return "", false, nil
	}
	c, ok := s.index.Category(subj.Family, subj.ID)
	return c, ok, nil
}

// SourceStrategy keeps a category fixed by the source, e.g. a spreadsheet
// category cell.
type SourceStrategy struct{}

// Name implements CategorizationStrategy.
func (SourceStrategy) Name() string { return "Source" }

// Categorize implements CategorizationStrategy.
func (SourceStrategy) Categorize(_ context.Context, subj Subject) (string, bool, error) {
	return subj.SourceCategory, subj.SourceCategory != "", nil
}

// RuleStrategy applies keyword category rules to the processed description.
type RuleStrategy struct {
	engine *rules.Engine
}

// NewRuleStrategy creates a RuleStrategy.
func NewRuleStrategy(engine *rules.Engine) *RuleStrategy {
	return &RuleStrategy{engine: engine}
}

// Name implements CategorizationStrategy.
func (s *RuleStrategy) Name() string { return "Rules" }

// Categorize implements CategorizationStrategy.
func (s *RuleStrategy) Categorize(_ context.Context, subj Subject) (string, bool, error) {
	if s.engine == nil {
		return "", false, nil
	}
	c, ok := s.engine.Match(subj.Description)
	return c, ok, nil
}

// StatementStrategy falls back to the category printed on the statement line.
type StatementStrategy struct{}

// Name implements CategorizationStrategy.
func (StatementStrategy) Name() string { return "Statement" }

// Categorize implements CategorizationStrategy.
func (StatementStrategy) Categorize(_ context.Context, subj Subject) (string, bool, error) {
	return subj.InitialCategory, subj.InitialCategory != "", nil
}

// compile-time checks
var (
	_ CategorizationStrategy = (*StoreStrategy)(nil)
	_ CategorizationStrategy = SourceStrategy{}
	_ CategorizationStrategy = (*RuleStrategy)(nil)
	_ CategorizationStrategy = StatementStrategy{}
)

// Subject is what a strategy sees of a record.
type Subject struct {
	Family          models.Family
	ID              string
	Description     string
	SourceCategory  string
	InitialCategory string
}
