package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/config"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/services"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/session"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/storage"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App wires the services behind the interactive REPL and tracks the
// user-facing state: who is signed in and whether the server is reachable.
type App struct {
	config    *config.Config
	client    api.Client
	auth      services.AuthService
	journal   services.JournalService
	reads     *services.ReadService
	expired   *session.Signal
	repos     *storage.Repositories
	userEmail string
	Mode      Mode
	reader    *bufio.Reader
}

// NewApp opens the local database, builds the API client and the services,
// and returns the ready-to-run application.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	expired := session.NewSignal()
	apiClient := api.NewHTTPClient(c.ServerBaseURL, repos.Credentials, expired, logger, c.RequestTimeout)

	migrator := services.NewMigrationService(apiClient, repos.Ledger, logger)

	return &App{
		config:  c,
		client:  apiClient,
		auth:    services.NewAuthService(apiClient, repos.Credentials, migrator, logger),
		journal: services.NewJournalService(apiClient, repos.Ledger),
		reads:   services.NewReadService(apiClient, repos.Cache, logger),
		expired: expired,
		repos:   repos,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

// Run restores any stored session, starts the background watchers and enters
// the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Close(ctx)
	defer a.repos.Close()

	if s, ok, err := a.auth.Current(ctx); err == nil && ok {
		a.userEmail = s.Email
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.watchSessionExpiry(ctx)

	a.Root(ctx)
}

// StartOnlineStatusWatcher periodically probes the server and flips the mode
// between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchSessionExpiry reacts to the refresh layer giving up on the stored
// credentials: the user is told once and returned to the guest state.
func (a *App) watchSessionExpiry(ctx context.Context) {
	for {
		select {
		case <-a.expired.Expired():
			a.userEmail = ""
			log.Println("Session expired, please log in again")
		case <-ctx.Done():
			return
		}
	}
}
