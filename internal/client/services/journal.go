package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/ledger"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/common"
)

// EntryInput carries the user-authored fields of a journal entry.
type EntryInput struct {
	MoodEmoji string   `validate:"required" message:"mood is required"`
	MoodScore int      `validate:"required|min:1|max:5" message:"mood score must be between 1 and 5"`
	Content   string   `validate:"required" message:"content is required"`
	CardColor string   `validate:"-"`
	Tags      []string `validate:"-"`
}

// JournalService authors entries: into the guest ledger before sign-in, and
// straight to the server afterwards. Guest mode never touches the offline
// cache; the ledger itself is authoritative.
type JournalService interface {
	SaveGuest(ctx context.Context, input EntryInput) (models.GuestEntry, error)
	GuestEntries(ctx context.Context) ([]models.GuestEntry, error)
	UpdateGuest(ctx context.Context, id string, input EntryInput) error
	DeleteGuest(ctx context.Context, id string) error
	RemainingGuestSaves(ctx context.Context) (int, error)
	Save(ctx context.Context, input EntryInput) (models.Entry, error)
}

type journalService struct {
	client api.Client
	ledger ledger.Repository
}

// NewJournalService constructs a JournalService over the API client and the
// guest ledger.
func NewJournalService(client api.Client, repo ledger.Repository) JournalService {
	return &journalService{client: client, ledger: repo}
}

func validateInput(input EntryInput) error {
	v := validate.Struct(input)
	if !v.Validate() {
		return fmt.Errorf("invalid entry: %w", v.Errors.OneError())
	}
	return nil
}

// SaveGuest appends a new entry to the ledger, consuming one of the capped
// guest saves. The cap is enforced here, not in the ledger.
func (s *journalService) SaveGuest(ctx context.Context, input EntryInput) (models.GuestEntry, error) {
	if err := validateInput(input); err != nil {
		return models.GuestEntry{}, err
	}

	ok, err := ledger.HasRemainingUsage(ctx, s.ledger, common.GuestEntryLimit)
	if err != nil {
		return models.GuestEntry{}, fmt.Errorf("usage check error: %w", err)
	}
	if !ok {
		return models.GuestEntry{}, common.ErrGuestLimitReached
	}

	now := time.Now()
	entry := models.GuestEntry{
		ID:        uuid.NewString(),
		MoodEmoji: input.MoodEmoji,
		MoodScore: input.MoodScore,
		Content:   input.Content,
		CardColor: input.CardColor,
		Tags:      input.Tags,
		CreatedAt: now.UTC(),
		LocalDate: now.Format(common.LocalDateLayout),
	}

	if err := s.ledger.Append(ctx, &entry); err != nil {
		return models.GuestEntry{}, fmt.Errorf("saving error: %w", err)
	}
	if err := s.ledger.IncrementUsage(ctx); err != nil {
		return models.GuestEntry{}, fmt.Errorf("usage update error: %w", err)
	}
	return entry, nil
}

func (s *journalService) GuestEntries(ctx context.Context) ([]models.GuestEntry, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing guest entries: %w", err)
	}
	return entries, nil
}

func (s *journalService) UpdateGuest(ctx context.Context, id string, input EntryInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	entry := models.GuestEntry{
		ID:        id,
		MoodEmoji: input.MoodEmoji,
		MoodScore: input.MoodScore,
		Content:   input.Content,
		CardColor: input.CardColor,
		Tags:      input.Tags,
	}
	if err := s.ledger.Update(ctx, &entry); err != nil {
		return fmt.Errorf("error updating guest entry: %w", err)
	}
	return nil
}

func (s *journalService) DeleteGuest(ctx context.Context, id string) error {
	if err := s.ledger.Remove(ctx, []string{id}); err != nil {
		return fmt.Errorf("error deleting guest entry: %w", err)
	}
	return nil
}

func (s *journalService) RemainingGuestSaves(ctx context.Context) (int, error) {
	n, err := s.ledger.UsageCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("usage check error: %w", err)
	}
	remaining := common.GuestEntryLimit - n
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Save creates an entry on the server for a signed-in user.
func (s *journalService) Save(ctx context.Context, input EntryInput) (models.Entry, error) {
	if err := validateInput(input); err != nil {
		return models.Entry{}, err
	}
	entry, err := s.client.CreateJournal(ctx, api.CreateJournalRequest{
		MoodEmoji: input.MoodEmoji,
		MoodScore: input.MoodScore,
		Content:   input.Content,
		CardColor: input.CardColor,
		Tags:      input.Tags,
	})
	if err != nil {
		return models.Entry{}, fmt.Errorf("saving error: %w", err)
	}
	return entry, nil
}
