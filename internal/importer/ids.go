package importer

import (
	"context"

	"fjacquet/stmt-csv/internal/identity"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
	"fjacquet/stmt-csv/internal/parsererror"
	"fjacquet/stmt-csv/internal/rules"
)

// assignIDs hashes every entry's identity fields and disambiguates IDs
// repeated within the batch. It runs before any store lookup so that two
// genuine identical transactions in one paste both survive.
func assignIDs(ctx context.Context, batch *models.Batch, logger logging.Logger) error {
	credit, err := familyIDs(ctx, batch.Credit, models.FamilyCredit, logger)
	if err != nil {
		return err
	}
	for i := range batch.Credit {
		batch.Credit[i].ID = credit[i]
	}

	deposit, err := familyIDs(ctx, batch.Deposit, models.FamilyDeposit, logger)
	if err != nil {
		return err
	}
	for i := range batch.Deposit {
		batch.Deposit[i].ID = deposit[i]
	}

	cash, err := familyIDs(ctx, batch.Cash, models.FamilyCash, logger)
	if err != nil {
		return err
	}
	for i := range batch.Cash {
		batch.Cash[i].ID = cash[i]
	}
	return nil
}

func familyIDs[T identity.Keyed](ctx context.Context, entries []T, family models.Family, logger logging.Logger) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	ids, err := identity.HashAll(ctx, entries)
	if err != nil {
		return nil, &parsererror.ImportError{Stage: StageIdentity, Err: err}
	}
	ids, changed := rules.DeduplicateBatchIDs(ids)
	if changed > 0 {
		logger.Debug("Disambiguated repeated IDs within the batch",
			logging.Field{Key: logging.FieldFamily, Value: string(family)},
			logging.Field{Key: logging.FieldCount, Value: changed})
	}
	return ids, nil
}
