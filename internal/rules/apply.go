package rules

import (
	"strconv"
	"strings"

	"fjacquet/stmt-csv/internal/models"
)

// Result is the outcome of running replacement rules over one text.
type Result struct {
	Text         string
	ShouldDelete bool
	// Captured holds the first capture group of the last regex rule that
	// matched with a non-empty group.
	Captured string
}

// ApplyReplacementRules runs rules in order over the running text. A
// matching delete rule stops processing immediately.
func ApplyReplacementRules(text string, rules []CompiledRule) Result {
	var res Result
	for _, r := range rules {
		if r.Rule.Find == "" {
			continue
		}

		switch r.Kind {
		case KindRegex:
			m := r.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if r.Rule.DeleteRow {
				return Result{Text: strings.TrimSpace(text), ShouldDelete: true, Captured: res.Captured}
			}
			if len(m) > 1 && m[1] != "" {
				res.Captured = m[1]
			}
			text = r.re.ReplaceAllString(text, r.Rule.Replace)
		default:
			if !strings.Contains(text, r.Rule.Find) {
				continue
			}
			if r.Rule.DeleteRow {
				return Result{Text: strings.TrimSpace(text), ShouldDelete: true, Captured: res.Captured}
			}
			text = strings.ReplaceAll(text, r.Rule.Find, r.Rule.Replace)
		}
	}

	res.Text = strings.TrimSpace(text)
	return res
}

// ApplyCategoryRules returns the category of the first rule whose keyword
// occurs in description, or def when none does.
func ApplyCategoryRules(description string, rules []models.CategoryRule, def string) string {
	if category, ok := MatchCategory(description, rules); ok {
		return category
	}
	return def
}

// MatchCategory is ApplyCategoryRules without the default.
func MatchCategory(description string, rules []models.CategoryRule) (string, bool) {
	for _, r := range rules {
		if r.Keyword == "" || r.Category == "" {
			continue
		}
		if strings.Contains(description, r.Keyword) {
			return r.Category, true
		}
	}
	return "", false
}

// DeduplicateBatchIDs gives repeated IDs a "-dup-N" suffix, numbering the
// repeats of each ID from 1 in encounter order. The first occurrence keeps
// its ID. It returns a new slice and the number of IDs changed.
func DeduplicateBatchIDs(ids []string) ([]string, int) {
	out := make([]string, len(ids))
	seen := make(map[string]int, len(ids))
	changed := 0
	for i, id := range ids {
		n := seen[id]
		seen[id] = n + 1
		if n == 0 {
			out[i] = id
			continue
		}
		out[i] = id + models.DuplicateIDSuffix + strconv.Itoa(n)
		changed++
	}
	return out, changed
}
