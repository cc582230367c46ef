// Package importer runs the whole statement import: dialect selection,
// parsing, identity, replacement rules, categorization and reconciliation
// against the existing record store.
//
// The public entry points never return an error or panic. Any failure is
// reported as a failed models.ImportResult.
package importer

import (
	"context"
	"fmt"
	"time"

	"fjacquet/stmt-csv/internal/categorizer"
	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parser"
	"fjacquet/stmt-csv/internal/parsererror"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/rules"
	"fjacquet/stmt-csv/internal/sheetparser"

	"github.com/google/uuid"
)

// Pipeline stages, as reported in ImportError.Stage.
const (
	StageClassify   = "classify"
	StageParse      = "parse"
	StageSheet      = "sheet"
	StageIdentity   = "identity"
	stageUnexpected = "import"
)

// Importer turns statement text or spreadsheet grids into reconciled records.
type Importer struct {
	factory *parser.Factory
	sheet   *sheetparser.Parser
	engine  *rules.Engine
	hint    classifier.Classifier
	logger  logging.Logger
}

// New creates an Importer. hint may be nil, in which case the dialect is
// detected from line shapes. A nil engine applies no rules.
func New(factory *parser.Factory, sheet *sheetparser.Parser, engine *rules.Engine, hint classifier.Classifier, logger logging.Logger) *Importer {
	logger = logging.OrDefault(logger)
	if engine == nil {
		engine = rules.NewEngine(models.RuleSet{}, models.DefaultCategory, logger)
	}
	return &Importer{
		factory: factory,
		sheet:   sheet,
		engine:  engine,
		hint:    hint,
		logger:  logger,
	}
}

// ImportText imports pasted statement text, choosing the dialect itself.
func (im *Importer) ImportText(ctx context.Context, text string, existing models.Existing) models.ImportResult {
	return im.ImportTextAs(ctx, text, classifier.DialectUnknown, existing)
}

// ImportTextAs imports statement text in the given dialect. DialectUnknown
// lets the importer choose. Either way, when the chosen parser finds nothing
// the other parser is tried.
func (im *Importer) ImportTextAs(ctx context.Context, text string, dialect classifier.Dialect, existing models.Existing) models.ImportResult {
	return im.run(ctx, func(ctx context.Context, logger logging.Logger) (models.ImportResult, error) {
		batch, err := im.parseText(ctx, text, dialect, logger)
		if err != nil {
			return models.ImportResult{}, err
		}
		return im.finish(ctx, batch, existing, logger)
	})
}

// ImportGrid imports a spreadsheet cell grid.
func (im *Importer) ImportGrid(ctx context.Context, grid [][]any, existing models.Existing) models.ImportResult {
	return im.run(ctx, func(ctx context.Context, logger logging.Logger) (models.ImportResult, error) {
		if im.sheet == nil {
			return models.ImportResult{}, &parsererror.ImportError{Stage: StageSheet, Err: fmt.Errorf("no spreadsheet parser configured")}
		}
		batch, err := im.sheet.ParseGrid(grid)
		if err != nil {
			return models.ImportResult{}, &parsererror.ImportError{Stage: StageSheet, Err: err}
		}
		logger.Debug("Parsed spreadsheet grid",
			logging.Field{Key: logging.FieldParser, Value: im.sheet.Name()},
			logging.Field{Key: logging.FieldCount, Value: batch.Len()})
		return im.finish(ctx, batch, existing, logger)
	})
}

// run is the public boundary: it tags the run, recovers panics and turns
// every error into a failed result.
func (im *Importer) run(ctx context.Context, fn func(context.Context, logging.Logger) (models.ImportResult, error)) (result models.ImportResult) {
	start := time.Now()
	logger := im.logger.WithFields(logging.Field{Key: logging.FieldRunID, Value: uuid.New().String()})

	defer func() {
		if r := recover(); r != nil {
			err := &parsererror.ImportError{Stage: stageUnexpected, Err: fmt.Errorf("panic: %v", r)}
			logger.WithError(err).Error("Import aborted")
			result = models.NewFailedResult(err.Error())
		}
	}()

	result, err := fn(ctx, logger)
	if err != nil {
		logger.WithError(err).Error("Import failed")
		return models.NewFailedResult(err.Error())
	}

	logger.Info("Import completed",
		logging.Field{Key: logging.FieldCount, Value: len(result.CreditData) + len(result.DepositData) + len(result.CashData)},
		logging.Field{Key: logging.FieldStatus, Value: fmt.Sprintf("skipped=%d", result.SkippedDuplicates.Total())},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return result
}

// finish runs the stages shared by text and grid imports.
func (im *Importer) finish(ctx context.Context, batch models.Batch, existing models.Existing, logger logging.Logger) (models.ImportResult, error) {
	ix := reconcile.NewIndex(existing)
	records, err := im.process(ctx, batch, ix, logger)
	if err != nil {
		return models.ImportResult{}, err
	}

	merged := reconcile.Reconcile(records, ix)
	if merged.Skipped.Total() > 0 {
		logger.Info("Skipped records already in the store",
			logging.Field{Key: logging.FieldCount, Value: merged.Skipped.Total()})
	}

	return models.ImportResult{
		Success:            true,
		CreditData:         merged.Credit,
		DepositData:        merged.Deposit,
		CashData:           merged.Cash,
		DetectedCategories: merged.DetectedCategories,
		SkippedDuplicates:  merged.Skipped,
	}, nil
}

// Process assigns IDs, applies the rules and resolves categories for every
// entry of batch without reconciling. Records already in existing keep their
// stored category.
func (im *Importer) Process(ctx context.Context, batch models.Batch, existing models.Existing) (reconcile.Records, error) {
	return im.process(ctx, batch, reconcile.NewIndex(existing), im.logger)
}

func (im *Importer) process(ctx context.Context, batch models.Batch, ix *reconcile.Index, logger logging.Logger) (reconcile.Records, error) {
	if err := assignIDs(ctx, &batch, logger); err != nil {
		return reconcile.Records{}, err
	}
	p := &processor{
		engine:      im.engine,
		categorizer: categorizer.NewCategorizer(ix, im.engine, logger),
		logger:      logger,
	}
	return p.run(ctx, batch), nil
}
