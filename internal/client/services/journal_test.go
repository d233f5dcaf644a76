package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/ledger"
	"github.com/ahmetk3436/Daiyly-sub000/internal/common"
)

func validInput() EntryInput {
	return EntryInput{
		MoodEmoji: "🙂",
		MoodScore: 4,
		Content:   "a good day",
		CardColor: "yellow",
		Tags:      []string{"walk"},
	}
}

func TestSaveGuest_PersistsAndConsumesUsage(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)
	ctx := context.Background()

	entry, err := svc.SaveGuest(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(entry.ID))
	require.Equal(t, "a good day", entry.Content)
	require.NotEmpty(t, entry.LocalDate)
	require.False(t, entry.CreatedAt.IsZero())

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, entry.ID, stored[0].ID)

	remaining, err := svc.RemainingGuestSaves(ctx)
	require.NoError(t, err)
	require.Equal(t, common.GuestEntryLimit-1, remaining)
}

func TestSaveGuest_EnforcesTheCap(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)
	ctx := context.Background()

	for i := 0; i < common.GuestEntryLimit; i++ {
		_, err := svc.SaveGuest(ctx, validInput())
		require.NoError(t, err)
	}

	_, err := svc.SaveGuest(ctx, validInput())
	require.ErrorIs(t, err, common.ErrGuestLimitReached)

	remaining, err := svc.RemainingGuestSaves(ctx)
	require.NoError(t, err)
	require.Zero(t, remaining)
}

func TestSaveGuest_CapSurvivesDeletes(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)
	ctx := context.Background()

	for i := 0; i < common.GuestEntryLimit; i++ {
		entry, err := svc.SaveGuest(ctx, validInput())
		require.NoError(t, err)
		require.NoError(t, svc.DeleteGuest(ctx, entry.ID))
	}

	// The counter tracks lifetime saves, not live rows.
	_, err := svc.SaveGuest(ctx, validInput())
	require.ErrorIs(t, err, common.ErrGuestLimitReached)
}

func TestSaveGuest_RejectsInvalidInput(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input EntryInput
	}{
		{"missing mood", EntryInput{MoodScore: 3, Content: "x"}},
		{"score too low", EntryInput{MoodEmoji: "🙂", MoodScore: 0, Content: "x"}},
		{"score too high", EntryInput{MoodEmoji: "🙂", MoodScore: 6, Content: "x"}},
		{"empty content", EntryInput{MoodEmoji: "🙂", MoodScore: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveGuest(ctx, tt.input)
			require.Error(t, err)
		})
	}

	// Nothing was stored and no usage was consumed.
	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)
	remaining, err := svc.RemainingGuestSaves(ctx)
	require.NoError(t, err)
	require.Equal(t, common.GuestEntryLimit, remaining)
}

func TestUpdateGuest_UnknownIDReportsNotFound(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)

	err := svc.UpdateGuest(context.Background(), "missing", validInput())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateGuest_RewritesContentFields(t *testing.T) {
	repo := ledger.NewSQLiteRepository(setupDB(t))
	svc := NewJournalService(&fakeClient{}, repo)
	ctx := context.Background()

	entry, err := svc.SaveGuest(ctx, validInput())
	require.NoError(t, err)

	updated := validInput()
	updated.Content = "rewritten"
	updated.MoodScore = 1
	require.NoError(t, svc.UpdateGuest(ctx, entry.ID, updated))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "rewritten", stored[0].Content)
	require.Equal(t, 1, stored[0].MoodScore)
}

func TestSave_SendsEntryToServer(t *testing.T) {
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			return models.Entry{ID: "server-1", Content: req.Content}, nil
		},
	}
	svc := NewJournalService(fc, ledger.NewSQLiteRepository(setupDB(t)))

	entry, err := svc.Save(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, "server-1", entry.ID)

	calls := fc.createCalls()
	require.Len(t, calls, 1)
	require.Empty(t, calls[0].IdempotencyKey, "ad-hoc saves carry no idempotency key")
}

func TestSave_PropagatesServerFailure(t *testing.T) {
	wantErr := errors.New("boom")
	fc := &fakeClient{
		CreateJournalFn: func(req api.CreateJournalRequest) (models.Entry, error) {
			return models.Entry{}, wantErr
		},
	}
	svc := NewJournalService(fc, ledger.NewSQLiteRepository(setupDB(t)))

	_, err := svc.Save(context.Background(), validInput())
	require.ErrorIs(t, err, wantErr)
}
