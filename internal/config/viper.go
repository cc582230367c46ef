// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"fjacquet/stmt-csv/internal/dateutils"
	"fjacquet/stmt-csv/internal/depositparser"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// STMT_LOG_LEVEL for log.level.
const EnvPrefix = "STMT"

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig holds the CSV export settings.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DataConfig names the rules file and the record store.
type DataConfig struct {
	RulesFile   string `mapstructure:"rules_file" yaml:"rules_file"`
	RecordsFile string `mapstructure:"records_file" yaml:"records_file"`
}

// CategorizationConfig holds categorization settings.
type CategorizationConfig struct {
	DefaultCategory string `mapstructure:"default_category" yaml:"default_category"`
}

// CreditParserConfig tunes the credit-card parser.
type CreditParserConfig struct {
	StripRemark          bool     `mapstructure:"strip_remark" yaml:"strip_remark"`
	CategoryHintMaxRunes int      `mapstructure:"category_hint_max_runes" yaml:"category_hint_max_runes"`
	KnownCategories      []string `mapstructure:"known_categories" yaml:"known_categories"`
}

// LayoutConfig is a named tab-delimited deposit column layout.
type LayoutConfig struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Columns []string `mapstructure:"columns" yaml:"columns"`
}

// DepositParserConfig tunes the deposit-account parser. No layouts means
// the built-in ones.
type DepositParserConfig struct {
	DefaultTime     string         `mapstructure:"default_time" yaml:"default_time"`
	Layouts         []LayoutConfig `mapstructure:"layouts" yaml:"layouts"`
	RemarkOverrides []string       `mapstructure:"remark_overrides" yaml:"remark_overrides"`
	DatedLines      bool           `mapstructure:"dated_lines" yaml:"dated_lines"`
}

// ParsersConfig groups the per-dialect settings.
type ParsersConfig struct {
	Credit  CreditParserConfig  `mapstructure:"credit" yaml:"credit"`
	Deposit DepositParserConfig `mapstructure:"deposit" yaml:"deposit"`
}

// SheetConfig lists the spreadsheet type tags per family.
type SheetConfig struct {
	CreditTags []string `mapstructure:"credit_tags" yaml:"credit_tags"`
	CashTags   []string `mapstructure:"cash_tags" yaml:"cash_tags"`
}

// AIConfig configures the optional Gemini statement-type hint.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	Data           DataConfig           `mapstructure:"data" yaml:"data"`
	Categorization CategorizationConfig `mapstructure:"categorization" yaml:"categorization"`
	Parsers        ParsersConfig        `mapstructure:"parsers" yaml:"parsers"`
	Sheet          SheetConfig          `mapstructure:"sheet" yaml:"sheet"`
	AI             AIConfig             `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.stmt-csv")
	v.AddConfigPath(".stmt-csv")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is read from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.records_file", "records.yaml")

	v.SetDefault("categorization.default_category", models.DefaultCategory)

	v.SetDefault("parsers.credit.strip_remark", false)
	v.SetDefault("parsers.credit.category_hint_max_runes", 1)
	v.SetDefault("parsers.credit.known_categories", []string{})
	v.SetDefault("parsers.deposit.default_time", models.DefaultTime)
	v.SetDefault("parsers.deposit.remark_overrides", []string{})
	v.SetDefault("parsers.deposit.dated_lines", false)

	v.SetDefault("sheet.credit_tags", []string{"信用卡", "credit", "creditcard", "cc"})
	v.SetDefault("sheet.cash_tags", []string{"現金", "cash"})

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.Categorization.DefaultCategory) == "" {
		return fmt.Errorf("categorization.default_category must not be empty")
	}

	if config.Parsers.Credit.CategoryHintMaxRunes < 0 {
		return fmt.Errorf("parsers.credit.category_hint_max_runes must not be negative, got: %d",
			config.Parsers.Credit.CategoryHintMaxRunes)
	}

	if !dateutils.IsTime(config.Parsers.Deposit.DefaultTime) {
		return fmt.Errorf("parsers.deposit.default_time must be HH:MM:SS, got: %s", config.Parsers.Deposit.DefaultTime)
	}

	for _, l := range config.DepositLayouts() {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("parsers.deposit.layouts: %w", err)
		}
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// DepositLayouts converts the configured layouts. It returns nil when none
// are configured.
func (c *Config) DepositLayouts() []depositparser.Layout {
	if len(c.Parsers.Deposit.Layouts) == 0 {
		return nil
	}
	layouts := make([]depositparser.Layout, 0, len(c.Parsers.Deposit.Layouts))
	for _, l := range c.Parsers.Deposit.Layouts {
		layouts = append(layouts, depositparser.Layout{Name: l.Name, Columns: depositparser.ParseColumns(l.Columns)})
	}
	return layouts
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrusLogger(config.Log.Level, config.Log.Format)
}
