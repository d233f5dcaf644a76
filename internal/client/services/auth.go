// Package services contains the application services of the journaling
// client: authentication, guest-entry migration, journal authoring, and the
// cache-backed read paths.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/credentials"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/session"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

// migrationTimeout bounds the detached migration run kicked off after a
// successful authentication.
const migrationTimeout = 2 * time.Minute

// AuthService owns the authentication transitions.
//
// Contract:
//   - Login/Register/AppleSignIn: authenticate, persist the credential pair,
//     and kick off guest-entry migration in the background.
//   - Current: derive the session from stored credentials, clearing them when
//     the token is expired or undecodable.
//   - Logout: drop the credential pair.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, email, password string) (models.Session, error)
	AppleSignIn(ctx context.Context, identityToken string) (models.Session, error)
	Current(ctx context.Context) (models.Session, bool, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   api.Client
	creds    credentials.Store
	migrator Migrator
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client,
// credential store and migrator.
func NewAuthService(client api.Client, creds credentials.Store, migrator Migrator, log logging.Logger) AuthService {
	return &authService{client: client, creds: creds, migrator: migrator, log: log}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}
	return a.establish(ctx, result)
}

func (a *authService) Register(ctx context.Context, email, password string) (models.Session, error) {
	result, err := a.client.Register(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("registration error: %w", err)
	}
	return a.establish(ctx, result)
}

func (a *authService) AppleSignIn(ctx context.Context, identityToken string) (models.Session, error) {
	result, err := a.client.AppleSignIn(ctx, identityToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("apple sign-in error: %w", err)
	}
	return a.establish(ctx, result)
}

// establish persists the new credential pair and starts the background
// migration of guest entries. Migration is best-effort reconciliation: its
// outcome is logged, never awaited, and never fails the sign-in itself.
func (a *authService) establish(ctx context.Context, result api.AuthResult) (models.Session, error) {
	if err := a.creds.Write(ctx, result.Pair); err != nil {
		return models.Session{}, fmt.Errorf("credential saving error: %w", err)
	}

	s, err := session.DecodeToken(result.Pair.Access)
	if err != nil {
		_ = a.creds.Clear(ctx)
		return models.Session{}, fmt.Errorf("token decoding error: %w", err)
	}

	a.startMigration()
	return s, nil
}

// startMigration runs the migrator on a detached goroutine. The deliberate
// lack of a return value keeps callers from ever awaiting it.
func (a *authService) startMigration() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		defer cancel()

		outcome, err := a.migrator.Migrate(ctx)
		if err != nil {
			a.log.Warn(ctx, "guest entry migration failed", "error", err)
			return
		}
		if len(outcome.MigratedIDs) > 0 || outcome.FailedCount > 0 {
			a.log.Info(ctx, "guest entry migration finished",
				"migrated", len(outcome.MigratedIDs), "failed", outcome.FailedCount)
		}
	}()
}

func (a *authService) Current(ctx context.Context) (models.Session, bool, error) {
	pair, ok, err := a.creds.Read(ctx)
	if err != nil {
		a.log.Warn(ctx, "credential store read failed", "error", err)
		return models.Session{}, false, nil
	}
	if !ok {
		return models.Session{}, false, nil
	}

	s, err := session.DecodeToken(pair.Access)
	if err != nil {
		// Expired or undecodable is the same as no token at all.
		if cerr := a.creds.Clear(ctx); cerr != nil {
			a.log.Warn(ctx, "failed to clear stale credentials", "error", cerr)
		}
		return models.Session{}, false, nil
	}
	return s, true, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.creds.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
