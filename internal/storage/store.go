package storage

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is the absent sentinel: the key has never been set.
	ErrNotFound = errors.New("storage: not found")
	// ErrUnavailable means the underlying engine could not be opened.
	// Callers degrade to in-memory defaults instead of failing hard.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Store is a durable flat mapping from string key to a JSON value.
// Every Set is committed before it returns; there is no write buffering.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value any) error
	GetAll(ctx context.Context) (map[string]json.RawMessage, error)
	// ReplaceAll clears every record and inserts the given mapping in a
	// single transaction. A reader never observes a half-replaced store.
	ReplaceAll(ctx context.Context, records map[string]json.RawMessage) error
	Close() error
}
