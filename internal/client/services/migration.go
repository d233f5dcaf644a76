package services

import (
	"context"
	"fmt"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/ledger"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

// Migrator drains the guest ledger into the signed-in account.
type Migrator interface {
	Migrate(ctx context.Context) (models.MigrationOutcome, error)
}

type migrationService struct {
	client api.Client
	ledger ledger.Repository
	log    logging.Logger
}

// NewMigrationService constructs the Migrator used after authentication.
func NewMigrationService(client api.Client, repo ledger.Repository, log logging.Logger) Migrator {
	return &migrationService{client: client, ledger: repo, log: log}
}

// Migrate uploads every guest entry independently and then applies the
// data-safety policy: the ledger (and its usage counter) is wiped only when
// every record made it; otherwise exactly the accepted ids are removed and
// everything that failed stays for the next authentication event.
//
// Delivery is at-least-once: a create whose response is lost after the server
// persisted it counts as a failure here and is retried later. The
// idempotency key on the create call lets the server collapse such retries.
func (m *migrationService) Migrate(ctx context.Context) (models.MigrationOutcome, error) {
	records, err := m.ledger.List(ctx)
	if err != nil {
		return models.MigrationOutcome{}, fmt.Errorf("ledger snapshot error: %w", err)
	}
	if len(records) == 0 {
		return models.MigrationOutcome{}, nil
	}

	outcome := models.MigrationOutcome{}
	for _, rec := range records {
		req := api.CreateJournalRequest{
			MoodEmoji:      rec.MoodEmoji,
			MoodScore:      rec.MoodScore,
			Content:        rec.Content,
			CardColor:      rec.CardColor,
			Tags:           rec.Tags,
			IdempotencyKey: rec.ID,
		}
		if _, err := m.client.CreateJournal(ctx, req); err != nil {
			outcome.FailedCount++
			m.log.Warn(ctx, "guest entry upload failed", "id", rec.ID, "error", err)
			continue
		}
		outcome.MigratedIDs = append(outcome.MigratedIDs, rec.ID)
	}

	switch {
	case outcome.FailedCount == 0:
		if err := m.ledger.Clear(ctx); err != nil {
			return outcome, fmt.Errorf("ledger cleanup error: %w", err)
		}
	case len(outcome.MigratedIDs) > 0:
		if err := m.ledger.Remove(ctx, outcome.MigratedIDs); err != nil {
			return outcome, fmt.Errorf("ledger removal error: %w", err)
		}
	}
	// Zero successes: the ledger is left untouched for a later retry.

	return outcome, nil
}
