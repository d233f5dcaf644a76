package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/api"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/cache"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

// One cache key per read feature; two writers never share a key.
const (
	cacheKeyRecent   = "recent-entries"
	cacheKeyStreak   = "streak"
	cacheKeyInsights = "insights"
)

func historyCacheKey(page int) string {
	return fmt.Sprintf("history-page-%d", page)
}

// searchFallbackCap bounds how many cached records the offline search
// fallback will scan.
const searchFallbackCap = 50

// ReadService serves the read-oriented features through a read-through cache:
// live responses are written back to the offline cache, and transport
// failures fall back to the last known good value, flagged as stale. Auth
// failures are never absorbed here; the token layer below has already done
// everything that could be done.
type ReadService struct {
	client api.Client
	cache  cache.Store
	log    logging.Logger
}

// NewReadService constructs a ReadService over the API client and cache.
func NewReadService(client api.Client, store cache.Store, log logging.Logger) *ReadService {
	return &ReadService{client: client, cache: store, log: log}
}

// loadThrough is the shared fetch policy. The bool result reports staleness:
// false for a live response, true when the value came from the cache.
func loadThrough[T any](ctx context.Context, s *ReadService, key string, remote func(context.Context) (T, error)) (T, bool, error) {
	value, err := remote(ctx)
	if err == nil {
		if cerr := cache.Put(ctx, s.cache, key, value); cerr != nil {
			s.log.Warn(ctx, "cache write failed", "key", key, "error", cerr)
		}
		return value, false, nil
	}

	var zero T
	if errors.Is(err, api.ErrSessionExpired) || errors.Is(err, api.ErrUnauthorized) {
		return zero, false, err
	}

	cached, _, ok, cerr := cache.Fetch[T](ctx, s.cache, key)
	if cerr != nil {
		s.log.Warn(ctx, "cache read failed", "key", key, "error", cerr)
	}
	if cerr != nil || !ok {
		// Nothing to fall back to: surface the original failure.
		return zero, false, err
	}
	return cached, true, nil
}

func (s *ReadService) Recent(ctx context.Context) ([]models.Entry, bool, error) {
	return loadThrough(ctx, s, cacheKeyRecent, s.client.RecentEntries)
}

func (s *ReadService) Streak(ctx context.Context) (models.Streak, bool, error) {
	return loadThrough(ctx, s, cacheKeyStreak, s.client.Streak)
}

func (s *ReadService) History(ctx context.Context, page int) (models.HistoryPage, bool, error) {
	return loadThrough(ctx, s, historyCacheKey(page), func(ctx context.Context) (models.HistoryPage, error) {
		return s.client.HistoryPage(ctx, page)
	})
}

func (s *ReadService) Insights(ctx context.Context) (models.Insights, bool, error) {
	return loadThrough(ctx, s, cacheKeyInsights, s.client.Insights)
}

// Search runs a live search, falling back to a local scan of whatever other
// features happen to have cached. There is no offline full-text index, so the
// fallback merges the recent-entries cache with the first history page,
// dedupes by id (first occurrence wins) and substring-matches the query over
// a bounded candidate set. A documented approximation, not a search engine.
func (s *ReadService) Search(ctx context.Context, query string) ([]models.Entry, bool, error) {
	entries, err := s.client.Search(ctx, query)
	if err == nil {
		return entries, false, nil
	}
	if errors.Is(err, api.ErrSessionExpired) || errors.Is(err, api.ErrUnauthorized) {
		return nil, false, err
	}

	matches, ok := s.searchFallback(ctx, query)
	if !ok {
		return nil, false, err
	}
	return matches, true, nil
}

func (s *ReadService) searchFallback(ctx context.Context, query string) ([]models.Entry, bool) {
	var candidates []models.Entry

	recent, _, hitRecent, err := cache.Fetch[[]models.Entry](ctx, s.cache, cacheKeyRecent)
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "key", cacheKeyRecent, "error", err)
	}
	if hitRecent {
		candidates = append(candidates, recent...)
	}

	history, _, hitHistory, err := cache.Fetch[models.HistoryPage](ctx, s.cache, historyCacheKey(1))
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "key", historyCacheKey(1), "error", err)
	}
	if hitHistory {
		candidates = append(candidates, history.Entries...)
	}

	if !hitRecent && !hitHistory {
		return nil, false
	}

	seen := make(map[string]struct{}, len(candidates))
	needle := strings.ToLower(query)
	var matches []models.Entry
	scanned := 0
	for _, e := range candidates {
		if scanned >= searchFallbackCap {
			break
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		scanned++

		if strings.Contains(strings.ToLower(e.Content), needle) {
			matches = append(matches, e)
		}
	}
	return matches, true
}
