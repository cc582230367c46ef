package depositparser

import (
	"fmt"
	"strings"
)

// Column names one cell of a tab-delimited ledger line.
type Column string

const (
	ColTime        Column = "time"
	ColType        Column = "type"
	ColDescription Column = "description"
	ColWithdrawal  Column = "withdrawal"
	ColDeposit     Column = "deposit"
	ColBalance     Column = "balance"
	ColSummary     Column = "summary"
	ColSkip        Column = "skip"
)

var knownColumns = map[Column]bool{
	ColTime: true, ColType: true, ColDescription: true, ColWithdrawal: true,
	ColDeposit: true, ColBalance: true, ColSummary: true, ColSkip: true,
}

// Layout maps the cells of a tab-delimited line to fields. Layouts are
// selected by cell count.
type Layout struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Columns []Column `mapstructure:"columns" yaml:"columns"`
}

// DefaultLayouts returns the layouts observed in bank exports.
func DefaultLayouts() []Layout {
	return []Layout{
		{Name: "ledger-6", Columns: []Column{ColTime, ColType, ColWithdrawal, ColDeposit, ColBalance, ColSummary}},
		{Name: "ledger-5", Columns: []Column{ColTime, ColDescription, ColWithdrawal, ColDeposit, ColBalance}},
		{Name: "ledger-4", Columns: []Column{ColTime, ColDescription, ColWithdrawal, ColDeposit}},
	}
}

// Validate checks that every column is known and that the layout yields a
// description and at least one amount column.
func (l Layout) Validate() error {
	if len(l.Columns) == 0 {
		return fmt.Errorf("layout %q has no columns", l.Name)
	}
	hasText, hasAmount := false, false
	for _, c := range l.Columns {
		if !knownColumns[c] {
			return fmt.Errorf("layout %q: unknown column %q", l.Name, c)
		}
		switch c {
		case ColType, ColDescription:
			hasText = true
		case ColWithdrawal, ColDeposit:
			hasAmount = true
		}
	}
	if !hasText {
		return fmt.Errorf("layout %q needs a %s or %s column", l.Name, ColType, ColDescription)
	}
	if !hasAmount {
		return fmt.Errorf("layout %q needs a %s or %s column", l.Name, ColWithdrawal, ColDeposit)
	}
	return nil
}

// ParseColumns converts configured column names into a column list.
func ParseColumns(names []string) []Column {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, Column(strings.ToLower(strings.TrimSpace(n))))
	}
	return cols
}

// selectLayout returns the layout with exactly n columns, or else the
// narrowest layout wider than n (trailing empty cells are lost when a line
// is trimmed).
func selectLayout(layouts []Layout, n int) (Layout, bool) {
	var best Layout
	found := false
	for _, l := range layouts {
		width := len(l.Columns)
		if width == n {
			return l, true
		}
		if width > n && (!found || width < len(best.Columns)) {
			best, found = l, true
		}
	}
	return best, found
}

// cells holds the raw strings picked out of one line.
type cells struct {
	time        string
	description []string
	withdrawal  string
	deposit     string
	balance     string
	remark      string
}

// split assigns tab-separated values to fields according to l.
func (l Layout) split(values []string) cells {
	var c cells
	for i, col := range l.Columns {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		switch col {
		case ColTime:
			c.time = v
		case ColType, ColDescription:
			if v != "" {
				c.description = append(c.description, v)
			}
		case ColWithdrawal:
			c.withdrawal = v
		case ColDeposit:
			c.deposit = v
		case ColBalance:
			c.balance = v
		case ColSummary:
			c.remark = v
		}
	}
	return c
}
