// Package storage provides the uniform document-store contract used across the
// application and its interchangeable backends: a redis key-value adapter, a
// tenant-scoped postgres adapter and a desktop-local file adapter.
package storage

import (
	"context"
	"encoding/json"
)

// Adapter is the uniform interface for reading and writing named JSON
// documents. All operations may involve network or disk I/O and are safe to
// call concurrently for different keys. Set is last-write-wins; Get returns
// (nil, nil) for a missing key, never an error.
type Adapter interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, a Adapter, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.Set(ctx, key, raw)
}

// GetJSON reads key and unmarshals it into v. Returns (false, nil) when the
// key is absent.
func GetJSON(ctx context.Context, a Adapter, key string, v any) (bool, error) {
	raw, err := a.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
