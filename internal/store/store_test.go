package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func newTestStore(dir string) *Store {
	return NewStore(filepath.Join(dir, DefaultRulesFile), filepath.Join(dir, DefaultRecordsFile), logging.NewMockLogger())
}

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore("", "", nil)
	assert.Equal(t, DefaultRulesFile, s.RulesFile)
	assert.Equal(t, DefaultRecordsFile, s.RecordsFile)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "x: 1")

	s := newTestStore(dir)

	file, err := s.FindConfigFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRules_Standard(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)
	writeFile(t, s.RulesFile, `replacement_rules:
  - find: "股份有限公司"
    replace: ""
  - find: "信用卡繳款"
    delete_row: true
    notes: 自動扣繳不記帳
category_rules:
  - keyword: 全家
    category: 吃
  - keyword: 台電
    category: 家
`)

	set, err := s.LoadRules()
	require.NoError(t, err)
	require.Len(t, set.Replacements, 2)
	assert.True(t, set.Replacements[1].DeleteRow)
	assert.Equal(t, "自動扣繳不記帳", set.Replacements[1].Notes)
	assert.Equal(t, []models.CategoryRule{{Keyword: "全家", Category: "吃"}, {Keyword: "台電", Category: "家"}}, set.Categories)
}

func TestLoadRules_KeywordMap(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)
	writeFile(t, s.RulesFile, "全家: 吃\n台電: 家\n")

	set, err := s.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, set.Replacements)
	assert.ElementsMatch(t, []models.CategoryRule{{Keyword: "全家", Category: "吃"}, {Keyword: "台電", Category: "家"}}, set.Categories)
}

func TestLoadRules_EmptyLists(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)
	writeFile(t, s.RulesFile, "replacement_rules: []\ncategory_rules: []\n")

	set, err := s.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, set.Replacements)
	assert.Empty(t, set.Categories)
}

func TestLoadRules_MissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)

	set, err := s.LoadRules()
	require.NoError(t, err)
	assert.Empty(t, set.Categories)

	writeFile(t, s.RulesFile, "category_rules: [unclosed")
	_, err = s.LoadRules()
	assert.Error(t, err)
}

func TestRulesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)

	want := models.RuleSet{
		Replacements: []models.ReplacementRule{{Find: `案號(\d+)`, Replace: ""}},
		Categories:   []models.CategoryRule{{Keyword: "全家", Category: "吃"}},
	}
	require.NoError(t, s.SaveRules(want))

	got, err := s.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "rules.yaml"), filepath.Join(dir, "nested", "records.yaml"), logging.NewMockLogger())

	empty, err := s.LoadRecords()
	require.NoError(t, err)
	assert.Empty(t, empty.Credit)

	want := models.Existing{
		Credit: []models.CreditRecord{{
			ID: "abc", TransactionDate: "11/14", PostingDate: "11/15", Description: "摩斯漢堡",
			Amount: decimal.NewFromInt(150), BankCode: "12345", Category: "蘇",
		}},
		Deposit: []models.DepositRecord{{
			ID: "def", Date: "2024/05/01", Time: "09:15:00", Description: "提款",
			Amount: decimal.RequireFromString("-2000.50"), Category: models.DefaultCategory,
		}},
		Cash: []models.CashRecord{{ID: "ghi", Date: "2024/05/03", Description: "菜市場", Amount: decimal.NewFromInt(320), Category: "吃"}},
	}
	require.NoError(t, s.SaveRecords(want))

	got, err := s.LoadRecords()
	require.NoError(t, err)
	require.Len(t, got.Credit, 1)
	require.Len(t, got.Deposit, 1)
	require.Len(t, got.Cash, 1)
	assert.Equal(t, "蘇", got.Credit[0].Category)
	assert.True(t, want.Credit[0].Amount.Equal(got.Credit[0].Amount))
	assert.True(t, want.Deposit[0].Amount.Equal(got.Deposit[0].Amount))
	assert.Equal(t, "09:15:00", got.Deposit[0].Time)
	assert.Equal(t, "ghi", got.Cash[0].ID)
}

func TestLoadRecords_Invalid(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir)
	writeFile(t, s.RecordsFile, "credit: {not: [a list")

	_, err := s.LoadRecords()
	assert.Error(t, err)
}

func TestMockStore(t *testing.T) {
	m := &MockStore{Rules: models.RuleSet{Categories: []models.CategoryRule{{Keyword: "a", Category: "b"}}}}

	set, err := m.LoadRules()
	require.NoError(t, err)
	assert.Len(t, set.Categories, 1)

	require.NoError(t, m.SaveRecords(models.Existing{Cash: []models.CashRecord{{ID: "x"}}}))
	assert.Equal(t, 1, m.Saves)

	got, err := m.LoadRecords()
	require.NoError(t, err)
	assert.Len(t, got.Cash, 1)
}
