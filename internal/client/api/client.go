// Package api implements the journal backend client: the REST wire protocol,
// the bearer-token request path, and the single-flight refresh protocol that
// keeps one credential renewal in flight no matter how many concurrent
// requests hit a 401.
package api

import (
	"context"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
)

// AuthResult is the payload of a successful login/registration/federated
// sign-in: the credential pair plus the account it belongs to.
type AuthResult struct {
	Pair models.TokenPair
	User models.User
}

// CreateJournalRequest carries the content fields of a new entry. For
// migrated guest entries IdempotencyKey is the stable local id, so a retry
// after a lost response does not have to duplicate on a supporting server;
// the server still assigns its own identity.
type CreateJournalRequest struct {
	MoodEmoji      string   `json:"mood_emoji"`
	MoodScore      int      `json:"mood_score"`
	Content        string   `json:"content"`
	CardColor      string   `json:"card_color"`
	Tags           []string `json:"tags"`
	IdempotencyKey string   `json:"idempotency_key,omitempty"`
}

// Client is the protected API surface consumed by the services. Every method
// except the three auth entry points goes through the authorized request path
// and may transparently trigger a token refresh.
type Client interface {
	Close() error

	// Ping probes server reachability without touching credentials.
	Ping(ctx context.Context) error

	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, email, password string) (AuthResult, error)
	AppleSignIn(ctx context.Context, identityToken string) (AuthResult, error)

	CreateJournal(ctx context.Context, req CreateJournalRequest) (models.Entry, error)
	RecentEntries(ctx context.Context) ([]models.Entry, error)
	Streak(ctx context.Context) (models.Streak, error)
	HistoryPage(ctx context.Context, page int) (models.HistoryPage, error)
	Insights(ctx context.Context) (models.Insights, error)
	Search(ctx context.Context, query string) ([]models.Entry, error)
}
