// Package reconcile merges freshly processed records against the existing
// record store. The store is read-only input: accepted records are returned
// as new slices and known IDs are counted as skipped duplicates.
package reconcile

import (
	"fjacquet/stmt-csv/internal/models"
)

// Index answers ID lookups over an existing record set.
type Index struct {
	credit  map[string]string
	deposit map[string]string
	cash    map[string]string
}

// NewIndex indexes existing by ID, remembering each record's category.
func NewIndex(existing models.Existing) *Index {
	ix := &Index{
		credit:  make(map[string]string, len(existing.Credit)),
		deposit: make(map[string]string, len(existing.Deposit)),
		cash:    make(map[string]string, len(existing.Cash)),
	}
	for _, r := range existing.Credit {
		ix.credit[r.ID] = r.Category
	}
	for _, r := range existing.Deposit {
		ix.deposit[r.ID] = r.Category
	}
	for _, r := range existing.Cash {
		ix.cash[r.ID] = r.Category
	}
	return ix
}

func (ix *Index) family(f models.Family) map[string]string {
	switch f {
	case models.FamilyCredit:
		return ix.credit
	case models.FamilyDeposit:
		return ix.deposit
	case models.FamilyCash:
		return ix.cash
	default:
		return nil
	}
}

// Has reports whether id is already stored in family f.
func (ix *Index) Has(f models.Family, id string) bool {
	_, ok := ix.family(f)[id]
	return ok
}

// Category returns the stored category of a known record. A stored empty
// category counts as known.
func (ix *Index) Category(f models.Family, id string) (string, bool) {
	c, ok := ix.family(f)[id]
	return c, ok
}

// Len returns the number of indexed records of family f.
func (ix *Index) Len(f models.Family) int {
	return len(ix.family(f))
}

// Records are processed records of one batch, per family.
type Records struct {
	Credit  []models.CreditRecord
	Deposit []models.DepositRecord
	Cash    []models.CashRecord
}

// Result is the outcome of a merge.
type Result struct {
	Credit             []models.CreditRecord
	Deposit            []models.DepositRecord
	Cash               []models.CashRecord
	DetectedCategories []string
	Skipped            models.SkipCounts
}

// Reconcile keeps the records whose ID is not in ix and counts the rest.
// Detected categories are the distinct categories of the accepted records in
// first-seen order, credit before deposit before cash.
func Reconcile(fresh Records, ix *Index) Result {
	res := Result{
		Credit:  make([]models.CreditRecord, 0, len(fresh.Credit)),
		Deposit: make([]models.DepositRecord, 0, len(fresh.Deposit)),
		Cash:    make([]models.CashRecord, 0, len(fresh.Cash)),
	}
	cats := newCategorySet()

	for _, r := range fresh.Credit {
		if ix.Has(models.FamilyCredit, r.ID) {
			res.Skipped.Credit++
			continue
		}
		res.Credit = append(res.Credit, r)
		cats.add(r.Category)
	}
	for _, r := range fresh.Deposit {
		if ix.Has(models.FamilyDeposit, r.ID) {
			res.Skipped.Deposit++
			continue
		}
		res.Deposit = append(res.Deposit, r)
		cats.add(r.Category)
	}
	for _, r := range fresh.Cash {
		if ix.Has(models.FamilyCash, r.ID) {
			res.Skipped.Cash++
			continue
		}
		res.Cash = append(res.Cash, r)
		cats.add(r.Category)
	}

	res.DetectedCategories = cats.list
	return res
}

// Merge returns existing with accepted appended, without touching existing.
func Merge(existing models.Existing, accepted Result) models.Existing {
	return models.Existing{
		Credit:  append(append([]models.CreditRecord(nil), existing.Credit...), accepted.Credit...),
		Deposit: append(append([]models.DepositRecord(nil), existing.Deposit...), accepted.Deposit...),
		Cash:    append(append([]models.CashRecord(nil), existing.Cash...), accepted.Cash...),
	}
}

type categorySet struct {
	seen map[string]bool
	list []string
}

func newCategorySet() *categorySet {
	return &categorySet{seen: make(map[string]bool), list: []string{}}
}

func (s *categorySet) add(c string) {
	if c == "" || s.seen[c] {
		return
	}
	s.seen[c] = true
	s.list = append(s.list, c)
}
