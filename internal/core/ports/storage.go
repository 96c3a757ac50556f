package ports

import (
	"context"
	"errors"
	"time"
)

// ErrItemNotFound is returned by Storage.GetItem for a missing key.
var ErrItemNotFound = errors.New("storage item not found")

// Storage is per-session key/value storage. Every session id has its own
// namespace. A zero ttl keeps the item for the lifetime of the session.
type Storage interface {
	GetItem(ctx context.Context, sid, key string) (string, error)
	SetItem(ctx context.Context, sid, key, value string, ttl time.Duration) error
	RemoveItem(ctx context.Context, sid, key string) error
	Clear(ctx context.Context, sid string) error
}

// SubmitGuard marks an operation as in flight for a session. Acquire
// reports false when the same operation is already running.
type SubmitGuard interface {
	Acquire(ctx context.Context, sid, op string) (bool, error)
	Release(ctx context.Context, sid, op string) error
}
