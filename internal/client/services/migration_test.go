package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/ledger"
)

func seedLedger(t *testing.T, repo ledger.Repository, ids ...string) {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		require.NoError(t, repo.Append(ctx, &models.GuestEntry{
			ID:        id,
			MoodEmoji: "🙂",
			MoodScore: 3,
			Content:   "entry " + id,
			CreatedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			LocalDate: "2026-08-29",
		}))
		require.NoError(t, repo.IncrementUsage(ctx))
	}
}

func ledgerIDs(t *testing.T, repo ledger.Repository) []string {
	t.Helper()
	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestMigrate_EmptyLedger_NoNetworkCalls(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	fc := &fakeClient{}
	m := NewMigrationService(fc, repo, testLogger())

	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Empty(t, outcome.MigratedIDs)
	require.Zero(t, outcome.FailedCount)
	require.Empty(t, fc.createCalls())
}

func TestMigrate_FullSuccess_ClearsLedgerAndUsage(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	seedLedger(t, repo, "id1", "id2", "id3")
	fc := &fakeClient{}
	m := NewMigrationService(fc, repo, testLogger())

	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"id1", "id2", "id3"}, outcome.MigratedIDs)
	require.Zero(t, outcome.FailedCount)

	require.Empty(t, ledgerIDs(t, repo))
	n, err := repo.UsageCount(context.Background())
	require.NoError(t, err)
	require.Zero(t, n, "usage counter resets only on total success")
}

func TestMigrate_PartialFailure_RemovesOnlyMigratedIDs(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	seedLedger(t, repo, "id1", "id2")
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			if req.IdempotencyKey == "id2" {
				return models.Entry{}, errors.New("duplicate entry")
			}
			return models.Entry{ID: "server-" + req.IdempotencyKey}, nil
		},
	}
	m := NewMigrationService(fc, repo, testLogger())

	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"id1"}, outcome.MigratedIDs)
	require.Equal(t, 1, outcome.FailedCount)

	require.Equal(t, []string{"id2"}, ledgerIDs(t, repo))

	n, err := repo.UsageCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n, "usage counter survives a partial migration")
}

func TestMigrate_TotalFailure_LeavesLedgerUntouched(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	seedLedger(t, repo, "id1", "id2")
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			return models.Entry{}, api.ErrUnavailable
		},
	}
	m := NewMigrationService(fc, repo, testLogger())

	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Empty(t, outcome.MigratedIDs)
	require.Equal(t, 2, outcome.FailedCount)

	require.Equal(t, []string{"id1", "id2"}, ledgerIDs(t, repo))
}

func TestMigrate_OneFailureDoesNotAbortTheRest(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	seedLedger(t, repo, "id1", "id2", "id3")
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			if req.IdempotencyKey == "id1" {
				return models.Entry{}, errors.New("rejected")
			}
			return models.Entry{}, nil
		},
	}
	m := NewMigrationService(fc, repo, testLogger())

	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"id2", "id3"}, outcome.MigratedIDs)
	require.Equal(t, 1, outcome.FailedCount)
	require.Len(t, fc.createCalls(), 3, "every record gets its own attempt")
}

func TestMigrate_RetryOnlyShrinksTheLedger(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	seedLedger(t, repo, "id1", "id2", "id3")

	failing := map[string]bool{"id2": true, "id3": true}
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			if failing[req.IdempotencyKey] {
				return models.Entry{}, api.ErrUnavailable
			}
			return models.Entry{}, nil
		},
	}
	m := NewMigrationService(fc, repo, testLogger())

	_, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"id2", "id3"}, ledgerIDs(t, repo))

	// Next authentication event: id2 now goes through.
	failing["id2"] = false
	outcome, err := m.Migrate(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"id2"}, outcome.MigratedIDs)
	require.Equal(t, []string{"id3"}, ledgerIDs(t, repo), "a migrated id never reappears")

	// Final retry clears everything.
	failing["id3"] = false
	_, err = m.Migrate(context.Background())
	require.NoError(t, err)
	require.Empty(t, ledgerIDs(t, repo))
}

func TestMigrate_SendsContentFieldsWithIdempotencyKey(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, &models.GuestEntry{
		ID:        "local-1",
		MoodEmoji: "🌧",
		MoodScore: 2,
		Content:   "rainy day",
		CardColor: "blue",
		Tags:      []string{"weather"},
		CreatedAt: time.Now().UTC(),
		LocalDate: "2026-08-30",
	}))

	fc := &fakeClient{}
	m := NewMigrationService(fc, repo, testLogger())

	_, err := m.Migrate(ctx)
	require.NoError(t, err)

	calls := fc.createCalls()
	require.Len(t, calls, 1)
	require.Equal(t, api.CreateJournalRequest{
		MoodEmoji:      "🌧",
		MoodScore:      2,
		Content:        "rainy day",
		CardColor:      "blue",
		Tags:           []string{"weather"},
		IdempotencyKey: "local-1",
	}, calls[0])
}
