// Package store loads and saves the YAML rules file and the YAML record
// store that imports reconcile against.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// Default file names.
const (
	DefaultRulesFile   = "rules.yaml"
	DefaultRecordsFile = "records.yaml"
)

// RuleSource provides the user's rule set.
type RuleSource interface {
	LoadRules() (models.RuleSet, error)
}

// RecordStore holds the records of previous imports.
type RecordStore interface {
	LoadRecords() (models.Existing, error)
	SaveRecords(models.Existing) error
}

// Store is the file-backed RuleSource and RecordStore.
type Store struct {
	RulesFile   string
	RecordsFile string
	logger      logging.Logger
}

// NewStore creates a store. Empty names fall back to the defaults.
func NewStore(rulesFile, recordsFile string, logger logging.Logger) *Store {
	if rulesFile == "" {
		rulesFile = DefaultRulesFile
	}
	if recordsFile == "" {
		recordsFile = DefaultRecordsFile
	}
	return &Store{
		RulesFile:   rulesFile,
		RecordsFile: recordsFile,
		logger:      logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a data file in standard locations.
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "stmt-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// writePath returns where filename is saved: its current location if it
// exists, else the database directory for relative names.
func (s *Store) writePath(filename string) string {
	if path, err := s.FindConfigFile(filename); err == nil {
		return path
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join("database", filename)
}

// readFile returns the contents of filename, or nil when it does not exist.
func (s *Store) readFile(filename string) ([]byte, string, error) {
	path, err := s.FindConfigFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}

func (s *Store) writeYAML(filename string, v interface{}) (string, error) {
	path := s.writePath(filename)
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return "", fmt.Errorf("error creating directory: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return "", err
	}
	return path, nil
}

// compile-time checks
var (
	_ RuleSource  = (*Store)(nil)
	_ RecordStore = (*Store)(nil)
)
