package importer

import (
	"context"
	"fmt"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parsererror"
)

// chooseDialect returns the dialect to try first. A forced dialect wins,
// then the advisory hint, then line-shape detection. Text nobody recognizes
// is tried as credit-card first.
func (im *Importer) chooseDialect(ctx context.Context, text string, forced classifier.Dialect, logger logging.Logger) classifier.Dialect {
	if forced != classifier.DialectUnknown {
		return forced
	}

	if im.hint != nil {
		d, err := im.hint.Classify(ctx, text)
		switch {
		case err != nil:
			logger.WithError(err).Warn("Statement classifier failed, detecting dialect from line shapes",
				logging.Field{Key: logging.FieldOperation, Value: im.hint.Name()})
		case d != classifier.DialectUnknown:
			logger.Debug("Statement classifier suggested a dialect",
				logging.Field{Key: logging.FieldOperation, Value: im.hint.Name()},
				logging.Field{Key: logging.FieldDialect, Value: string(d)})
			return d
		}
	}

	if d := classifier.DetectDialect(text); d != classifier.DialectUnknown {
		return d
	}
	return classifier.DialectCredit
}

// parseText parses text with the chosen dialect's parser and falls back to
// the other parser when the first finds no records.
func (im *Importer) parseText(ctx context.Context, text string, forced classifier.Dialect, logger logging.Logger) (models.Batch, error) {
	if im.factory == nil {
		return models.Batch{}, &parsererror.ImportError{Stage: StageParse, Err: fmt.Errorf("no text parsers configured")}
	}

	dialect := im.chooseDialect(ctx, text, forced, logger)
	batch, err := im.parseAs(text, dialect, logger)
	if err != nil {
		return models.Batch{}, err
	}
	if batch.Len() > 0 {
		return batch, nil
	}

	other := dialect.Other()
	if other == classifier.DialectUnknown {
		return batch, nil
	}
	logger.Info("No records found, trying the other statement dialect",
		logging.Field{Key: logging.FieldDialect, Value: string(other)})
	return im.parseAs(text, other, logger)
}

func (im *Importer) parseAs(text string, dialect classifier.Dialect, logger logging.Logger) (models.Batch, error) {
	p, err := im.factory.GetParser(dialect)
	if err != nil {
		return models.Batch{}, &parsererror.ImportError{Stage: StageClassify, Err: err}
	}
	batch := p.Parse(text)
	logger.Debug("Parsed statement text",
		logging.Field{Key: logging.FieldParser, Value: p.Name()},
		logging.Field{Key: logging.FieldDialect, Value: string(dialect)},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()})
	return batch, nil
}
