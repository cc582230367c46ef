package rules_test

import (
	"bytes"
	"testing"

	"fjacquet/stmt-csv/cmd/rules"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	internalrules "fjacquet/stmt-csv/internal/rules"

	"github.com/stretchr/testify/assert"
)

func testEngine() *internalrules.Engine {
	set := models.RuleSet{
		Replacements: []models.ReplacementRule{
			{Find: `案號(\d+)`, Replace: ""},
			{Find: "廣告", DeleteRow: true},
		},
		Categories: []models.CategoryRule{{Keyword: "全家", Category: "吃"}},
	}
	return internalrules.NewEngine(set, models.DefaultCategory, logging.NewMockLogger())
}

func TestRulesCommand_Metadata(t *testing.T) {
	assert.Equal(t, "rules", rules.Cmd.Use)
	names := []string{}
	for _, c := range rules.Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"test", "categories"}, names)
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"category rule", "全家便利商店", []string{"Description: 全家便利商店", "Category: 吃"}},
		{"default category", "加油站", []string{"Category: " + models.DefaultCategory}},
		{"captured remark", "罰單案號9876", []string{"Description: 罰單", "Remark: 9876"}},
		{"delete", "廣告回饋", []string{"Deleted:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rules.Explain(&buf, testEngine(), tt.text)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}
