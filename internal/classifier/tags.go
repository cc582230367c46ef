package classifier

import (
	"strings"

	"fjacquet/stmt-csv/internal/models"
)

// Default spreadsheet type tags.
var (
	DefaultCreditTags = []string{"信用卡", "credit", "creditcard", "cc"}
	DefaultCashTags   = []string{"現金", "cash"}
)

// headerLabels are column captions that mark a spreadsheet header row.
var headerLabels = []string{
	"日期", "類別", "分類", "描述", "說明", "摘要", "金額", "類型", "備註",
	"date", "category", "description", "amount", "type", "notes", "remark",
}

// TypeTags maps a spreadsheet type-tag cell to a record family.
type TypeTags struct {
	credit map[string]bool
	cash   map[string]bool
}

// NewTypeTags builds a lookup. Empty lists fall back to the defaults.
func NewTypeTags(creditTags, cashTags []string) TypeTags {
	if len(creditTags) == 0 {
		creditTags = DefaultCreditTags
	}
	if len(cashTags) == 0 {
		cashTags = DefaultCashTags
	}
	return TypeTags{credit: tagSet(creditTags), cash: tagSet(cashTags)}
}

func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[normalizeTag(t)] = true
	}
	return set
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// Family returns the record family for tag. Unrecognized tags select the
// deposit family.
func (t TypeTags) Family(tag string) models.Family {
	n := normalizeTag(tag)
	switch {
	case t.credit[n]:
		return models.FamilyCredit
	case t.cash[n]:
		return models.FamilyCash
	default:
		return models.FamilyDeposit
	}
}

// IsHeaderRow reports whether at least two cells contain a known column label.
func IsHeaderRow(cells []string) bool {
	hits := 0
	for _, c := range cells {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		for _, label := range headerLabels {
			if strings.Contains(c, label) {
				hits++
				break
			}
		}
	}
	return hits >= 2
}
