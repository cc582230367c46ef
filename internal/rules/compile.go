// Package rules applies user-defined replacement and category rules and
// disambiguates duplicate IDs within one import batch.
package rules

import (
	"regexp"

	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parsererror"
)

// Kind says how a replacement rule matches.
type Kind int

const (
	// KindRegex matches Find as a regular expression.
	KindRegex Kind = iota
	// KindLiteral matches Find as a plain substring.
	KindLiteral
)

func (k Kind) String() string {
	if k == KindRegex {
		return "regex"
	}
	return "literal"
}

// CompiledRule is a replacement rule with its matcher chosen once.
type CompiledRule struct {
	Rule models.ReplacementRule
	Kind Kind
	re   *regexp.Regexp
}

// Compile prepares rule. A pattern that is not a valid regular expression
// falls back to a literal match; the returned error is then a
// *parsererror.RuleCompileError and the rule is still usable.
func Compile(rule models.ReplacementRule) (CompiledRule, error) {
	re, err := regexp.Compile(rule.Find)
	if err != nil {
		return CompiledRule{Rule: rule, Kind: KindLiteral},
			&parsererror.RuleCompileError{Pattern: rule.Find, Err: err}
	}
	return CompiledRule{Rule: rule, Kind: KindRegex, re: re}, nil
}

// CompileAll compiles every rule, keeping their order. Fallback errors are
// collected, not fatal.
func CompileAll(rules []models.ReplacementRule) ([]CompiledRule, []error) {
	compiled := make([]CompiledRule, 0, len(rules))
	var errs []error
	for _, r := range rules {
		c, err := Compile(r)
		if err != nil {
			errs = append(errs, err)
		}
		compiled = append(compiled, c)
	}
	return compiled, errs
}
