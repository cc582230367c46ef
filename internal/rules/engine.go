package rules

import (
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
)

// Engine holds a compiled rule set.
type Engine struct {
	replacements    []CompiledRule
	categories      []models.CategoryRule
	defaultCategory string
	logger          logging.Logger
}

// NewEngine compiles set. Patterns that fall back to literal matching are
// logged as warnings.
func NewEngine(set models.RuleSet, defaultCategory string, logger logging.Logger) *Engine {
	logger = logging.OrDefault(logger)
	if defaultCategory == "" {
		defaultCategory = models.DefaultCategory
	}

	compiled, errs := CompileAll(set.Replacements)
	for _, err := range errs {
		logger.WithError(err).Warn("Replacement rule uses literal match")
	}

	return &Engine{
		replacements:    compiled,
		categories:      append([]models.CategoryRule(nil), set.Categories...),
		defaultCategory: defaultCategory,
		logger:          logger,
	}
}

// Replace runs the replacement rules over text.
func (e *Engine) Replace(text string) Result {
	return ApplyReplacementRules(text, e.replacements)
}

// Categorize runs the category rules, falling back to the default category.
func (e *Engine) Categorize(description string) string {
	return ApplyCategoryRules(description, e.categories, e.defaultCategory)
}

// Match runs the category rules without a default.
func (e *Engine) Match(description string) (string, bool) {
	return MatchCategory(description, e.categories)
}

// DefaultCategory returns the category used when nothing matches.
func (e *Engine) DefaultCategory() string { return e.defaultCategory }

// Categories returns the distinct categories named by the category rules,
// in rule order.
func (e *Engine) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range e.categories {
		if r.Category != "" && !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}
