package store

import (
	"fmt"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// LoadRecords reads the record store. A missing file yields an empty store.
func (s *Store) LoadRecords() (models.Existing, error) {
	data, path, err := s.readFile(s.RecordsFile)
	if err != nil {
		return models.Existing{}, fmt.Errorf("error reading record store: %w", err)
	}
	if data == nil {
		s.logger.Debug("Record store not found, starting empty",
			logging.Field{Key: logging.FieldFile, Value: s.RecordsFile})
		return models.Existing{}, nil
	}

	var existing models.Existing
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return models.Existing{}, fmt.Errorf("error parsing record store %s: %w", path, err)
	}

	s.logger.Debug("Loaded record store",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(existing.Credit) + len(existing.Deposit) + len(existing.Cash)})
	return existing, nil
}

// SaveRecords replaces the record store with existing.
func (s *Store) SaveRecords(existing models.Existing) error {
	path, err := s.writeYAML(s.RecordsFile, existing)
	if err != nil {
		return fmt.Errorf("error writing record store: %w", err)
	}
	s.logger.Info("Saved record store",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(existing.Credit) + len(existing.Deposit) + len(existing.Cash)})
	return nil
}
