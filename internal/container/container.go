// Package container provides dependency injection for the stmt-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/common"
	"fjacquet/stmt-csv/internal/config"
	"fjacquet/stmt-csv/internal/creditparser"
	"fjacquet/stmt-csv/internal/depositparser"
	"fjacquet/stmt-csv/internal/importer"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/parser"
	"fjacquet/stmt-csv/internal/rules"
	"fjacquet/stmt-csv/internal/sheetparser"
	"fjacquet/stmt-csv/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.Store
	engine     *rules.Engine
	factory    *parser.Factory
	sheet      *sheetparser.Parser
	classifier classifier.Classifier
	writer     *common.CSVWriter
	importer   *importer.Importer
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return newContainer(cfg, logger)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return newContainer(cfg, logging.OrDefault(logger))
}

func newContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	st := store.NewStore(cfg.Data.RulesFile, cfg.Data.RecordsFile, logger)

	set, err := st.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	engine := rules.NewEngine(set, cfg.Categorization.DefaultCategory, logger)

	factory := parser.NewFactory(parser.Options{
		Credit: creditparser.Options{
			StripRemark:          cfg.Parsers.Credit.StripRemark,
			CategoryHintMaxRunes: cfg.Parsers.Credit.CategoryHintMaxRunes,
			KnownCategories:      cfg.Parsers.Credit.KnownCategories,
		},
		Deposit: depositparser.Options{
			DefaultTime:     cfg.Parsers.Deposit.DefaultTime,
			Layouts:         cfg.DepositLayouts(),
			RemarkOverrides: cfg.Parsers.Deposit.RemarkOverrides,
			DatedLines:      cfg.Parsers.Deposit.DatedLines,
		},
	}, logger)

	sheet := sheetparser.New(classifier.NewTypeTags(cfg.Sheet.CreditTags, cfg.Sheet.CashTags), logger)

	// Create the statement classifier (if enabled)
	var hint classifier.Classifier = classifier.HeuristicClassifier{}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := classifier.NewGeminiClassifier(context.Background(), cfg.AI.APIKey, cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create statement classifier: %w", err)
		}
		hint = gemini
		logger.Info("AI statement classification enabled")
	} else {
		logger.Debug("AI statement classification disabled, using line shapes")
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		store:      st,
		engine:     engine,
		factory:    factory,
		sheet:      sheet,
		classifier: hint,
		writer:     common.NewCSVWriter(cfg.Delimiter(), logger),
		importer:   importer.New(factory, sheet, engine, hint, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled},
		logging.Field{Key: logging.FieldOperation, Value: hint.Name()})
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the rules and record store.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetRules returns the compiled rule engine.
func (c *Container) GetRules() *rules.Engine {
	return c.engine
}

// GetParser returns the text parser for a dialect.
func (c *Container) GetParser(d classifier.Dialect) (parser.TextParser, error) {
	return c.factory.GetParser(d)
}

// GetSheetParser returns the spreadsheet grid parser.
func (c *Container) GetSheetParser() *sheetparser.Parser {
	return c.sheet
}

// GetClassifier returns the advisory statement classifier.
// Returns nil if AI is not enabled.
func (c *Container) GetClassifier() classifier.Classifier {
	return c.classifier
}

// GetCSVWriter returns the CSV exporter.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.writer
}

// GetImporter returns the import pipeline.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// Close releases the classifier client, if any.
func (c *Container) Close() error {
	if closer, ok := c.classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close statement classifier: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
