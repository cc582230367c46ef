package models

// ReplacementRule rewrites description or remark text. Rules apply in order to
// the running text; a matching DeleteRow rule drops the whole record.
type ReplacementRule struct {
	Find      string `json:"find" yaml:"find"`
	Replace   string `json:"replace" yaml:"replace"`
	DeleteRow bool   `json:"deleteRow" yaml:"delete_row"`
	Notes     string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CategoryRule assigns Category when Keyword is a substring of the description.
// The first matching rule wins.
type CategoryRule struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	Category string `json:"category" yaml:"category"`
}

// RuleSet bundles both rule lists as stored in the rules file.
type RuleSet struct {
	Replacements []ReplacementRule `json:"replacementRules" yaml:"replacement_rules"`
	Categories   []CategoryRule    `json:"categoryRules" yaml:"category_rules"`
}
