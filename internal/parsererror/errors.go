// Package parsererror defines the typed errors raised while turning statement
// text and spreadsheet grids into records.
package parsererror

import "fmt"

// ParseError represents a row-level failure. Parsers return it internally and
// then skip the row; it never reaches the caller of an import.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents input that does not have the shape a parser
// needs at all, e.g. a spreadsheet grid with no usable rows.
type InvalidFormatError struct {
	Source               string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in '%s': %s. Expected: %s. Content snippet: '%s'",
			e.Source, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}

// RuleCompileError records that a replacement rule's pattern is not a valid
// regular expression. The rule still applies, as a literal match.
type RuleCompileError struct {
	Pattern string
	Err     error
}

func (e *RuleCompileError) Error() string {
	return fmt.Sprintf("rule pattern %q is not a valid regular expression, using literal match: %v", e.Pattern, e.Err)
}

func (e *RuleCompileError) Unwrap() error {
	return e.Err
}

// ImportError is the single error kind that crosses the import boundary.
// Stage names the pipeline step that failed.
type ImportError struct {
	Stage string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import failed during %s: %v", e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
