package api

import (
	"context"
	"sync"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/credentials"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/session"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

type refreshState int

const (
	refreshIdle refreshState = iota
	refreshActive
)

// refresher serializes credential renewal. At most one refresh call is in
// flight; every request that hits a 401 while one is running parks a
// continuation in a FIFO queue and is resolved, in enqueue order, with the
// outcome of that single attempt.
type refresher struct {
	mu    sync.Mutex
	state refreshState
	queue []func(error)

	creds   credentials.Store
	renew   func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	expired *session.Signal
	log     logging.Logger
}

func newRefresher(
	creds credentials.Store,
	renew func(ctx context.Context, refreshToken string) (models.TokenPair, error),
	expired *session.Signal,
	log logging.Logger,
) *refresher {
	return &refresher{creds: creds, renew: renew, expired: expired, log: log}
}

// Await is called by a request that has just received a 401. It returns nil
// once a fresh token pair has been stored, or the refresh failure otherwise.
//
// The first caller to arrive while the machine is idle becomes the owner and
// performs the refresh; everyone else queues behind it.
func (r *refresher) Await(ctx context.Context) error {
	r.mu.Lock()
	if r.state == refreshActive {
		ch := make(chan error, 1)
		r.queue = append(r.queue, func(err error) { ch <- err })
		r.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			// The continuation is still resolved by the owner; the buffered
			// channel just drops the late result.
			return ctx.Err()
		}
	}
	r.state = refreshActive
	r.mu.Unlock()

	err := r.refreshOnce(ctx)

	// Grab the queue and flip back to idle in one step so a 401 arriving
	// mid-flush starts its own refresh instead of queueing behind a finished
	// one. Continuations then resolve strictly in enqueue order.
	r.mu.Lock()
	queue := r.queue
	r.queue = nil
	r.state = refreshIdle
	r.mu.Unlock()

	for _, resolve := range queue {
		resolve(err)
	}
	return err
}

// refreshOnce performs one renewal attempt against the backend. Any failure
// invalidates the session: credentials are cleared and the expiry signal
// fires, because without a working refresh token the only way forward is a
// fresh login.
func (r *refresher) refreshOnce(ctx context.Context) error {
	pair, ok, err := r.creds.Read(ctx)
	if err != nil {
		// Storage trouble reads as "no credentials".
		r.log.Warn(ctx, "credential store read failed", "error", err)
		ok = false
	}
	if !ok || pair.Refresh == "" {
		return r.invalidate(ctx)
	}

	next, err := r.renew(ctx, pair.Refresh)
	if err != nil {
		r.log.Warn(ctx, "token refresh failed", "error", err)
		return r.invalidate(ctx)
	}

	if err := r.creds.Write(ctx, next); err != nil {
		// Renewal worked but did not persist; in-flight requests still get
		// rejected so the next 401 retries the whole protocol.
		r.log.Error(ctx, "failed to persist refreshed credentials", "error", err)
		return r.invalidate(ctx)
	}
	return nil
}

func (r *refresher) invalidate(ctx context.Context) error {
	if err := r.creds.Clear(ctx); err != nil {
		r.log.Warn(ctx, "failed to clear credentials", "error", err)
	}
	r.expired.Fire()
	return ErrSessionExpired
}
