package store

import (
	"fjacquet/stmt-csv/internal/models"
)

// MockStore is an in-memory RuleSource and RecordStore for tests.
type MockStore struct {
	Rules   models.RuleSet
	Records models.Existing
	Saves   int

	// Error flags for testing error conditions
	LoadRulesError   error
	LoadRecordsError error
	SaveRecordsError error
}

// LoadRules returns the mock rules.
func (m *MockStore) LoadRules() (models.RuleSet, error) {
	if m.LoadRulesError != nil {
		return models.RuleSet{}, m.LoadRulesError
	}
	return m.Rules, nil
}

// LoadRecords returns the mock records.
func (m *MockStore) LoadRecords() (models.Existing, error) {
	if m.LoadRecordsError != nil {
		return models.Existing{}, m.LoadRecordsError
	}
	return m.Records, nil
}

// SaveRecords replaces the mock records.
func (m *MockStore) SaveRecords(existing models.Existing) error {
	if m.SaveRecordsError != nil {
		return m.SaveRecordsError
	}
	m.Records = existing
	m.Saves++
	return nil
}

var (
	_ RuleSource  = (*MockStore)(nil)
	_ RecordStore = (*MockStore)(nil)
)
