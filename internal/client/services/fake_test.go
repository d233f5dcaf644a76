package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

// fakeClient implements api.Client for unit tests. Behavior is configured
// through the *Fn hooks; unset hooks return zero values.
type fakeClient struct {
	mu sync.Mutex

	LoginFn         func(email, password string) (api.AuthResult, error)
	RegisterFn      func(email, password string) (api.AuthResult, error)
	AppleFn         func(identityToken string) (api.AuthResult, error)
	CreateJournalFn func(req api.CreateJournalRequest) (models.Entry, error)
	RecentFn        func() ([]models.Entry, error)
	StreakFn        func() (models.Streak, error)
	HistoryFn       func(page int) (models.HistoryPage, error)
	InsightsFn      func() (models.Insights, error)
	SearchFn        func(query string) ([]models.Entry, error)

	CreateCalls []api.CreateJournalRequest
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (api.AuthResult, error) {
	if f.LoginFn != nil {
		return f.LoginFn(email, password)
	}
	return api.AuthResult{}, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (api.AuthResult, error) {
	if f.RegisterFn != nil {
		return f.RegisterFn(email, password)
	}
	return api.AuthResult{}, nil
}

func (f *fakeClient) AppleSignIn(ctx context.Context, identityToken string) (api.AuthResult, error) {
	if f.AppleFn != nil {
		return f.AppleFn(identityToken)
	}
	return api.AuthResult{}, nil
}

func (f *fakeClient) CreateJournal(ctx context.Context, req api.CreateJournalRequest) (models.Entry, error) {
	f.mu.Lock()
	f.CreateCalls = append(f.CreateCalls, req)
	f.mu.Unlock()
	if f.CreateJournalFn != nil {
		return f.CreateJournalFn(req)
	}
	return models.Entry{}, nil
}

func (f *fakeClient) createCalls() []api.CreateJournalRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.CreateJournalRequest(nil), f.CreateCalls...)
}

func (f *fakeClient) RecentEntries(ctx context.Context) ([]models.Entry, error) {
	if f.RecentFn != nil {
		return f.RecentFn()
	}
	return nil, nil
}

func (f *fakeClient) Streak(ctx context.Context) (models.Streak, error) {
	if f.StreakFn != nil {
		return f.StreakFn()
	}
	return models.Streak{}, nil
}

func (f *fakeClient) HistoryPage(ctx context.Context, page int) (models.HistoryPage, error) {
	if f.HistoryFn != nil {
		return f.HistoryFn(page)
	}
	return models.HistoryPage{}, nil
}

func (f *fakeClient) Insights(ctx context.Context) (models.Insights, error) {
	if f.InsightsFn != nil {
		return f.InsightsFn()
	}
	return models.Insights{}, nil
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]models.Entry, error) {
	if f.SearchFn != nil {
		return f.SearchFn(query)
	}
	return nil, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// setupDB opens a fresh in-memory database with the full client schema.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  id      INTEGER PRIMARY KEY CHECK (id = 1),
  access  TEXT NOT NULL,
  refresh TEXT NOT NULL
);
CREATE TABLE guest_entries (
  id         TEXT PRIMARY KEY,
  mood_emoji TEXT NOT NULL,
  mood_score INTEGER NOT NULL,
  content    TEXT NOT NULL,
  card_color TEXT NOT NULL DEFAULT '',
  tags       TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  local_date TEXT NOT NULL
);
CREATE TABLE guest_usage (
  id    INTEGER PRIMARY KEY CHECK (id = 1),
  count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE cache_entries (
  key       TEXT PRIMARY KEY,
  value     BLOB NOT NULL,
  cached_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}
