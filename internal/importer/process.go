package importer

import (
	"context"
	"errors"
	"strings"

	"fjacquet/stmt-csv/internal/categorizer"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/reconcile"
	"fjacquet/stmt-csv/internal/rules"
)

// processor turns raw entries with IDs into categorized records.
type processor struct {
	engine      *rules.Engine
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// rewritten is an entry's text after the replacement rules.
type rewritten struct {
	description string
	remark      string
	deleted     bool
}

// rewrite applies the replacement rules to the description, then to the
// remark. A delete match on either drops the entry. A group captured from
// the description is appended to the remark.
func (p *processor) rewrite(id, description, remark string) rewritten {
	desc := p.engine.Replace(description)
	if desc.ShouldDelete {
		p.logger.Debug("Replacement rule deleted record",
			logging.Field{Key: logging.FieldRecordID, Value: id},
			logging.Field{Key: logging.FieldReason, Value: "description"})
		return rewritten{deleted: true}
	}

	if remark != "" {
		r := p.engine.Replace(remark)
		if r.ShouldDelete {
			p.logger.Debug("Replacement rule deleted record",
				logging.Field{Key: logging.FieldRecordID, Value: id},
				logging.Field{Key: logging.FieldReason, Value: "remark"})
			return rewritten{deleted: true}
		}
		remark = r.Text
	}

	return rewritten{
		description: desc.Text,
		remark:      joinRemark(remark, desc.Captured),
	}
}

func (p *processor) category(ctx context.Context, s categorizer.Subject) string {
	c, results := p.categorizer.Categorize(ctx, s)
	if _, ok := results.GetBestResult(); !ok {
		p.logger.Debug("No categorization strategy matched, using default",
			logging.Field{Key: logging.FieldRecordID, Value: s.ID},
			logging.Field{Key: logging.FieldCategory, Value: c},
			logging.Field{Key: logging.FieldStatus, Value: results.Summary()})
	}
	if errs := results.GetErrors(); len(errs) > 0 {
		p.logger.Warn("Categorized despite strategy errors",
			logging.Field{Key: logging.FieldRecordID, Value: s.ID},
			logging.Field{Key: logging.FieldError, Value: errors.Join(errs...).Error()})
	}
	return c
}

func (p *processor) run(ctx context.Context, batch models.Batch) reconcile.Records {
	out := reconcile.Records{
		Credit:  make([]models.CreditRecord, 0, len(batch.Credit)),
		Deposit: make([]models.DepositRecord, 0, len(batch.Deposit)),
		Cash:    make([]models.CashRecord, 0, len(batch.Cash)),
	}

	for _, e := range batch.Credit {
		rw := p.rewrite(e.ID, e.Description, e.BankCode)
		if rw.deleted {
			continue
		}
		out.Credit = append(out.Credit, models.CreditRecord{
			ID:              e.ID,
			TransactionDate: e.TransactionDate,
			PostingDate:     e.PostingDate,
			Description:     rw.description,
			Amount:          e.Amount,
			BankCode:        rw.remark,
			Category: p.category(ctx, categorizer.Subject{
				Family:          models.FamilyCredit,
				ID:              e.ID,
				Description:     rw.description,
				SourceCategory:  e.Category,
				InitialCategory: e.InitialCategory,
			}),
		})
	}

	for _, e := range batch.Deposit {
		rw := p.rewrite(e.ID, e.Description, e.BankCode)
		if rw.deleted {
			continue
		}
		out.Deposit = append(out.Deposit, models.DepositRecord{
			ID:          e.ID,
			Date:        e.Date,
			Time:        e.Time,
			Description: rw.description,
			Amount:      e.Amount,
			BankCode:    rw.remark,
			Category: p.category(ctx, categorizer.Subject{
				Family:         models.FamilyDeposit,
				ID:             e.ID,
				Description:    rw.description,
				SourceCategory: e.Category,
			}),
		})
	}

	for _, e := range batch.Cash {
		rw := p.rewrite(e.ID, e.Description, e.Notes)
		if rw.deleted {
			continue
		}
		out.Cash = append(out.Cash, models.CashRecord{
			ID:          e.ID,
			Date:        e.Date,
			Description: rw.description,
			Amount:      e.Amount,
			Notes:       rw.remark,
			Category: p.category(ctx, categorizer.Subject{
				Family:         models.FamilyCash,
				ID:             e.ID,
				Description:    rw.description,
				SourceCategory: e.Category,
			}),
		})
	}

	return out
}

func joinRemark(remark, captured string) string {
	remark = strings.TrimSpace(remark)
	captured = strings.TrimSpace(captured)
	switch {
	case captured == "":
		return remark
	case remark == "":
		return captured
	default:
		return remark + " " + captured
	}
}
