package depositparser

import (
	"regexp"
	"sort"
	"strings"
)

var accountSuffix = regexp.MustCompile(`^[0-9][0-9-]*$`)

// minSuffixLen is the shortest detached token taken as an account suffix;
// shorter runs of digits are left for the amount columns.
const minSuffixLen = 6

// Overrides is the per-description routing table. For a description that
// starts with one of its keys, a numeric-looking suffix (policy or account
// number) goes to the remark instead of staying in the description.
type Overrides struct {
	keys []string
}

// NewOverrides builds the table. Longer keys are tried first.
func NewOverrides(keys []string) Overrides {
	var o Overrides
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			o.keys = append(o.keys, k)
		}
	}
	sort.SliceStable(o.keys, func(i, j int) bool { return len(o.keys[i]) > len(o.keys[j]) })
	return o
}

// Len returns the number of keys.
func (o Overrides) Len() int { return len(o.keys) }

// Split checks desc against the table. It returns the key and the suffix
// when desc is key immediately followed by a numeric-looking suffix.
func (o Overrides) Split(desc string) (string, string, bool) {
	for _, k := range o.keys {
		if !strings.HasPrefix(desc, k) {
			continue
		}
		suffix := strings.TrimSpace(desc[len(k):])
		if suffix != "" && accountSuffix.MatchString(suffix) {
			return k, suffix, true
		}
	}
	return "", "", false
}

// splitTokens applies the table to whitespace tokens before the numeric
// columns are read, so the suffix is never mistaken for an amount. The
// returned tokens no longer contain the suffix.
func (o Overrides) splitTokens(tokens []string) ([]string, string) {
	if len(tokens) == 0 || o.Len() == 0 {
		return tokens, ""
	}
	if key, suffix, ok := o.Split(tokens[0]); ok {
		out := append([]string{key}, tokens[1:]...)
		return out, suffix
	}
	if len(tokens) > 1 && len(tokens[1]) >= minSuffixLen {
		if key, suffix, ok := o.Split(tokens[0] + tokens[1]); ok && key == tokens[0] {
			out := append([]string{key}, tokens[2:]...)
			return out, suffix
		}
	}
	return tokens, ""
}
