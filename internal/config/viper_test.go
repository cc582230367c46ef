package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-csv/internal/depositparser"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.Delimiter())
	assert.Equal(t, "rules.yaml", config.Data.RulesFile)
	assert.Equal(t, "records.yaml", config.Data.RecordsFile)
	assert.Equal(t, models.DefaultCategory, config.Categorization.DefaultCategory)
	assert.False(t, config.Parsers.Credit.StripRemark)
	assert.Equal(t, 1, config.Parsers.Credit.CategoryHintMaxRunes)
	assert.Equal(t, models.DefaultTime, config.Parsers.Deposit.DefaultTime)
	assert.False(t, config.Parsers.Deposit.DatedLines)
	assert.Nil(t, config.DepositLayouts())
	assert.Contains(t, config.Sheet.CreditTags, "信用卡")
	assert.Contains(t, config.Sheet.CashTags, "現金")
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"STMT_LOG_LEVEL":                    "debug",
		"STMT_LOG_FORMAT":                   "json",
		"STMT_CSV_DELIMITER":                ";",
		"STMT_PARSERS_CREDIT_STRIP_REMARK":  "true",
		"STMT_PARSERS_DEPOSIT_DEFAULT_TIME": "12:00:00",
		"STMT_PARSERS_DEPOSIT_DATED_LINES":  "true",
		"STMT_AI_ENABLED":                   "true",
		"STMT_AI_MODEL":                     "gemini-1.5-pro",
		"GEMINI_API_KEY":                    "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.True(t, config.Parsers.Credit.StripRemark)
	assert.Equal(t, "12:00:00", config.Parsers.Deposit.DefaultTime)
	assert.True(t, config.Parsers.Deposit.DatedLines)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
data:
  rules_file: "my-rules.yaml"
categorization:
  default_category: "其他"
parsers:
  credit:
    category_hint_max_runes: 2
    known_categories: ["交通", "娛樂"]
  deposit:
    remark_overrides: ["國泰人壽保費"]
    layouts:
      - name: bank-a
        columns: [time, description, deposit, withdrawal, balance]
sheet:
  credit_tags: ["VISA"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, '|', config.Delimiter())
	assert.Equal(t, "my-rules.yaml", config.Data.RulesFile)
	assert.Equal(t, "其他", config.Categorization.DefaultCategory)
	assert.Equal(t, 2, config.Parsers.Credit.CategoryHintMaxRunes)
	assert.Equal(t, []string{"交通", "娛樂"}, config.Parsers.Credit.KnownCategories)
	assert.Equal(t, []string{"國泰人壽保費"}, config.Parsers.Deposit.RemarkOverrides)
	assert.Equal(t, []string{"VISA"}, config.Sheet.CreditTags)

	layouts := config.DepositLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, "bank-a", layouts[0].Name)
	assert.Equal(t, []depositparser.Column{
		depositparser.ColTime, depositparser.ColDescription, depositparser.ColDeposit,
		depositparser.ColWithdrawal, depositparser.ColBalance,
	}, layouts[0].Columns)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	t.Setenv("STMT_LOG_LEVEL", "error")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
}

func TestInitializeConfig_InvalidFileFailsValidation(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
parsers:
  deposit:
    layouts:
      - name: broken
        columns: [time, amount]
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsers.deposit.layouts")
}

func validConfig() *Config {
	return &Config{
		Log:            LogConfig{Level: "info", Format: "text"},
		CSV:            CSVConfig{Delimiter: ","},
		Categorization: CategorizationConfig{DefaultCategory: models.DefaultCategory},
		Parsers: ParsersConfig{
			Credit:  CreditParserConfig{CategoryHintMaxRunes: 1},
			Deposit: DepositParserConfig{DefaultTime: models.DefaultTime},
		},
		AI: AIConfig{TimeoutSeconds: 30},
	}
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	require.NoError(t, validateConfig(validConfig()))

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multi-char delimiter", func(c *Config) { c.CSV.Delimiter = "ab" }, "CSV delimiter must be a single character"},
		{"empty default category", func(c *Config) { c.Categorization.DefaultCategory = " " }, "default_category"},
		{"negative hint runes", func(c *Config) { c.Parsers.Credit.CategoryHintMaxRunes = -1 }, "category_hint_max_runes"},
		{"bad default time", func(c *Config) { c.Parsers.Deposit.DefaultTime = "9:00" }, "default_time"},
		{
			"layout without description",
			func(c *Config) {
				c.Parsers.Deposit.Layouts = []LayoutConfig{{Name: "x", Columns: []string{"time", "withdrawal"}}}
			},
			"parsers.deposit.layouts",
		},
		{"AI enabled without API key", func(c *Config) { c.AI.Enabled = true }, "GEMINI_API_KEY required when AI is enabled"},
		{
			"invalid timeout seconds",
			func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			"ai.timeout_seconds must be between 1 and 300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_MultiByteDelimiter(t *testing.T) {
	config := validConfig()
	config.CSV.Delimiter = "、"
	require.NoError(t, validateConfig(config))
	assert.Equal(t, '、', config.Delimiter())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validConfig()
	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())

	config.Log = LogConfig{Level: "debug", Format: "json"}
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "debug", logger.GetLevel().String())

	config.Log.Level = "nonsense"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())
}

func TestLoadEnv(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STMT_TEST_FROM_DOTENV=yes\n"), 0600))
	chdir(t, dir)
	t.Cleanup(func() { _ = os.Unsetenv("STMT_TEST_FROM_DOTENV") })

	logger := logging.NewMockLogger()
	assert.Equal(t, ".env", LoadEnv(logger))
	assert.Equal(t, "yes", GetEnv("STMT_TEST_FROM_DOTENV", "no"))
	assert.Equal(t, "fallback", GetEnv("STMT_TEST_NOT_SET", "fallback"))
}

func TestLoadEnv_NoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, os.MkdirAll(dir, 0750))
	chdir(t, dir)

	logger := logging.NewMockLogger()
	assert.Empty(t, LoadEnv(logger))
	assert.True(t, logger.HasEntry("DEBUG", "No .env file found, using environment variables"))
}

// clearTestEnvVars unsets the variables these tests read, restoring them
// afterwards.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"STMT_LOG_LEVEL",
		"STMT_LOG_FORMAT",
		"STMT_CSV_DELIMITER",
		"STMT_DATA_RULES_FILE",
		"STMT_DATA_RECORDS_FILE",
		"STMT_CATEGORIZATION_DEFAULT_CATEGORY",
		"STMT_PARSERS_CREDIT_STRIP_REMARK",
		"STMT_PARSERS_CREDIT_CATEGORY_HINT_MAX_RUNES",
		"STMT_PARSERS_DEPOSIT_DEFAULT_TIME",
		"STMT_PARSERS_DEPOSIT_DATED_LINES",
		"STMT_AI_ENABLED",
		"STMT_AI_MODEL",
		"STMT_AI_TIMEOUT_SECONDS",
		"GEMINI_API_KEY",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		_ = os.Unsetenv(envVar)
	}
}
