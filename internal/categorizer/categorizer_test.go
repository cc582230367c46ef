package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *rules.Engine {
	return rules.NewEngine(models.RuleSet{Categories: []models.CategoryRule{
		{Keyword: "全家", Category: "吃"},
		{Keyword: "摩斯", Category: "家"},
	}}, "", logging.NewMockLogger())
}

func TestCategorizer_StrategyOrder(t *testing.T) {
	index := reconcile.NewIndex(models.Existing{
		Credit: []models.CreditRecord{{ID: "abc", Category: "蘇"}},
	})
	c := NewCategorizer(index, testEngine(), logging.NewMockLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		subject  Subject
		want     string
		strategy string
	}{
		{
			name:     "store wins over rules and statement",
			subject:  Subject{Family: models.FamilyCredit, ID: "abc", Description: "摩斯漢堡", InitialCategory: "吃"},
			want:     "蘇",
			strategy: "Store",
		},
		{
			name:     "store lookup is per family",
			subject:  Subject{Family: models.FamilyDeposit, ID: "abc", Description: "摩斯漢堡"},
			want:     "家",
			strategy: "Rules",
		},
		{
			name:     "source category beats rules",
			subject:  Subject{Family: models.FamilyCash, ID: "x", Description: "全家", SourceCategory: "樂"},
			want:     "樂",
			strategy: "Source",
		},
		{
			name:     "rules beat statement category",
			subject:  Subject{Family: models.FamilyCredit, ID: "y", Description: "全家便利商店", InitialCategory: "家"},
			want:     "吃",
			strategy: "Rules",
		},
		{
			name:     "statement category as fallback",
			subject:  Subject{Family: models.FamilyCredit, ID: "z", Description: "台灣高鐵", InitialCategory: "行"},
			want:     "行",
			strategy: "Statement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, results := c.Categorize(ctx, tt.subject)
			assert.Equal(t, tt.want, got)

			best, ok := results.GetBestResult()
			require.True(t, ok)
			assert.Equal(t, tt.strategy, best.Strategy)
		})
	}
}

func TestCategorizer_Default(t *testing.T) {
	c := NewCategorizer(nil, testEngine(), logging.NewMockLogger())

	got, results := c.Categorize(context.Background(), Subject{ID: "n", Description: "台灣高鐵"})
	assert.Equal(t, models.DefaultCategory, got)

	_, ok := results.GetBestResult()
	assert.False(t, ok)
	assert.Equal(t, "Store:no_match, Source:no_match, Rules:no_match, Statement:no_match", results.Summary())
}

func TestCategorizer_StoredEmptyCategoryIsKept(t *testing.T) {
	index := reconcile.NewIndex(models.Existing{Credit: []models.CreditRecord{{ID: "abc"}}})
	c := NewCategorizer(index, testEngine(), logging.NewMockLogger())

	got, _ := c.Categorize(context.Background(), Subject{Family: models.FamilyCredit, ID: "abc", Description: "全家"})
	assert.Empty(t, got)
}

type failingStrategy struct{}

func (failingStrategy) Name() string { return "Failing" }

func (failingStrategy) Categorize(context.Context, Subject) (string, bool, error) {
	return "", false, errors.New("boom")
}

func TestCategorizer_StrategyErrorFallsThrough(t *testing.T) {
	logger := logging.NewMockLogger()
	c := NewCategorizerWithStrategies("其他", logger, failingStrategy{}, StatementStrategy{})

	got, results := c.Categorize(context.Background(), Subject{ID: "q", InitialCategory: "吃"})
	assert.Equal(t, "吃", got)
	require.Len(t, results.GetErrors(), 1)
	assert.Contains(t, results.GetErrors()[0].Error(), "Failing strategy")
	assert.True(t, logger.HasEntry("WARN", "Categorization strategy failed"))

	got, _ = c.Categorize(context.Background(), Subject{ID: "q"})
	assert.Equal(t, "其他", got)
}
