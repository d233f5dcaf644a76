package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Put marshals value and stores it under key.
func Put[T any](ctx context.Context, s Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache[%s]: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// Fetch loads and unmarshals the entry under key. A miss returns ok=false
// with no error.
func Fetch[T any](ctx context.Context, s Store, key string) (T, time.Time, bool, error) {
	var value T
	data, cachedAt, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return value, time.Time{}, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, time.Time{}, false, fmt.Errorf("failed to decode cache[%s]: %w", key, err)
	}
	return value, cachedAt, true, nil
}
