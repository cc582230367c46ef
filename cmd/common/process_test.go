package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/stmt-csv/cmd/common"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordStore implements store.RecordStore for testing
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) LoadRecords() (models.Existing, error) {
	args := m.Called()
	return args.Get(0).(models.Existing), args.Error(1)
}

func (m *MockRecordStore) SaveRecords(existing models.Existing) error {
	args := m.Called(existing)
	return args.Error(0)
}

// MockExporter implements common.Exporter for testing
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportResult(result models.ImportResult, prefix string) ([]string, error) {
	args := m.Called(result, prefix)
	return args.Get(0).([]string), args.Error(1)
}

var storedDeposit = models.DepositRecord{ID: "old", Date: "2024/04/30", Time: "10:00:00", Description: "薪資", Amount: decimal.NewFromInt(-50000), Category: "收入"}

func successfulImport(credit ...models.CreditRecord) common.ImportFunc {
	return func(_ context.Context, _ models.Existing) models.ImportResult {
		return models.ImportResult{
			Success:            true,
			CreditData:         credit,
			DepositData:        []models.DepositRecord{},
			CashData:           []models.CashRecord{},
			DetectedCategories: []string{"吃"},
		}
	}
}

func TestRunImport_SavesMergedRecords(t *testing.T) {
	existing := models.Existing{Deposit: []models.DepositRecord{storedDeposit}}
	rec := models.CreditRecord{ID: "new", Description: "摩斯漢堡", Amount: decimal.NewFromInt(150), Category: "吃"}

	records := new(MockRecordStore)
	records.On("LoadRecords").Return(existing, nil)
	records.On("SaveRecords", mock.MatchedBy(func(e models.Existing) bool {
		return len(e.Credit) == 1 && e.Credit[0].ID == "new" && len(e.Deposit) == 1 && e.Deposit[0].ID == "old"
	})).Return(nil)

	res, err := common.RunImport(context.Background(), records, successfulImport(rec), nil, common.Options{}, logging.NewMockLogger())
	require.NoError(t, err)
	assert.True(t, res.Success)
	records.AssertExpectations(t)
}

func TestRunImport_DryRunDoesNotSave(t *testing.T) {
	records := new(MockRecordStore)
	records.On("LoadRecords").Return(models.Existing{}, nil)

	rec := models.CreditRecord{ID: "new", Category: "吃"}
	_, err := common.RunImport(context.Background(), records, successfulImport(rec), nil, common.Options{DryRun: true}, logging.NewMockLogger())
	require.NoError(t, err)
	records.AssertNotCalled(t, "SaveRecords", mock.Anything)
}

func TestRunImport_NothingAcceptedDoesNotSave(t *testing.T) {
	records := new(MockRecordStore)
	records.On("LoadRecords").Return(models.Existing{}, nil)

	_, err := common.RunImport(context.Background(), records, successfulImport(), nil, common.Options{}, logging.NewMockLogger())
	require.NoError(t, err)
	records.AssertNotCalled(t, "SaveRecords", mock.Anything)
}

func TestRunImport_Exports(t *testing.T) {
	records := new(MockRecordStore)
	records.On("LoadRecords").Return(models.Existing{}, nil)
	records.On("SaveRecords", mock.Anything).Return(nil)

	exporter := new(MockExporter)
	exporter.On("ExportResult", mock.Anything, "out/may").Return([]string{"out/may-credit.csv"}, nil)

	logger := logging.NewMockLogger()
	rec := models.CreditRecord{ID: "new", Category: "吃"}
	_, err := common.RunImport(context.Background(), records, successfulImport(rec), exporter, common.Options{OutputPrefix: "out/may"}, logger)
	require.NoError(t, err)
	exporter.AssertExpectations(t)
	assert.True(t, logger.HasEntry("INFO", "Wrote CSV file"))
}

func TestRunImport_Errors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		records := new(MockRecordStore)
		records.On("LoadRecords").Return(models.Existing{}, errors.New("disk on fire"))

		_, err := common.RunImport(context.Background(), records, successfulImport(), nil, common.Options{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error loading record store")
	})

	t.Run("failed import", func(t *testing.T) {
		records := new(MockRecordStore)
		records.On("LoadRecords").Return(models.Existing{}, nil)
		failing := func(context.Context, models.Existing) models.ImportResult {
			return models.NewFailedResult("import failed during sheet: bad grid")
		}

		res, err := common.RunImport(context.Background(), records, failing, nil, common.Options{}, nil)
		require.Error(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, err.Error(), "bad grid")
		records.AssertNotCalled(t, "SaveRecords", mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		records := new(MockRecordStore)
		records.On("LoadRecords").Return(models.Existing{}, nil)
		records.On("SaveRecords", mock.Anything).Return(errors.New("read-only"))

		_, err := common.RunImport(context.Background(), records, successfulImport(models.CreditRecord{ID: "x"}), nil, common.Options{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error saving record store")
	})
}

func TestReadInput(t *testing.T) {
	text, err := common.ReadInput("-", strings.NewReader("11/14 11/15 摩斯漢堡 150"))
	require.NoError(t, err)
	assert.Equal(t, "11/14 11/15 摩斯漢堡 150", text)

	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("2024/05/01\n"), 0600))
	text, err = common.ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024/05/01\n", text)

	_, err = common.ReadInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	res := models.ImportResult{
		Success:            true,
		CreditData:         make([]models.CreditRecord, 2),
		DetectedCategories: []string{"吃", "家"},
		SkippedDuplicates:  models.SkipCounts{Deposit: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, common.WriteReport(&buf, res, "", logging.NewMockLogger()))
	out := buf.String()
	assert.Contains(t, out, "Imported: credit=2 deposit=0 cash=0")
	assert.Contains(t, out, "Skipped duplicates: credit=0 deposit=3 cash=0")
	assert.Contains(t, out, "Categories: 吃, 家")

	buf.Reset()
	require.NoError(t, common.WriteReport(&buf, res, "json", nil))
	assert.Contains(t, buf.String(), `"skippedDuplicates"`)

	assert.Error(t, common.WriteReport(&buf, res, "xml", nil))
}
