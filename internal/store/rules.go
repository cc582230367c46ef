package store

import (
	"fmt"
	"sort"

	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// LoadRules reads the rules file. A missing file yields an empty set.
//
// Besides the standard layout
//
//	replacement_rules:
//	  - find: "股份有限公司"
//	    replace: ""
//	category_rules:
//	  - keyword: 全家
//	    category: 吃
//
// a bare keyword-to-category map is accepted as category rules, sorted by
// keyword since maps carry no order.
func (s *Store) LoadRules() (models.RuleSet, error) {
	data, path, err := s.readFile(s.RulesFile)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("error reading rules file: %w", err)
	}
	if data == nil {
		s.logger.Warn("Rules file not found", logging.Field{Key: logging.FieldFile, Value: s.RulesFile})
		return models.RuleSet{}, nil
	}

	var set models.RuleSet
	structErr := yaml.Unmarshal(data, &set)
	if structErr == nil && (len(set.Replacements) > 0 || len(set.Categories) > 0) {
		s.logger.Debug("Loaded rules",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(set.Replacements) + len(set.Categories)})
		return set, nil
	}

	legacy, err := s.parseKeywordMap(data, path)
	if err != nil {
		if structErr == nil {
			// standard layout with both lists empty
			return set, nil
		}
		return models.RuleSet{}, err
	}
	return legacy, nil
}

// parseKeywordMap reads the flat keyword: category layout.
func (s *Store) parseKeywordMap(data []byte, path string) (models.RuleSet, error) {
	var mapping map[string]string
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return models.RuleSet{}, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	keywords := make([]string, 0, len(mapping))
	for k := range mapping {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	var set models.RuleSet
	for _, k := range keywords {
		set.Categories = append(set.Categories, models.CategoryRule{Keyword: k, Category: mapping[k]})
	}

	s.logger.Debug("Loaded keyword map rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(set.Categories)})
	return set, nil
}

// SaveRules writes set to the rules file.
func (s *Store) SaveRules(set models.RuleSet) error {
	path, err := s.writeYAML(s.RulesFile, set)
	if err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}
	s.logger.Debug("Saved rules", logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}
