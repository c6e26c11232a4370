package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"pastebin/kvpaste/internal/model"
)

// ErrPasteNotFound is returned by Read when the key does not exist or has expired.
var ErrPasteNotFound = errors.New("paste not found")

// PasteStore is the only path to the underlying key-value store.
// Implementations: Redis (production), Postgres, or in-memory (local dev / tests).
//
// Every method except Read's not-found case reports store failures as errors;
// callers must surface them.
type PasteStore interface {
	WritePermanent(ctx context.Context, key, content string) error
	WriteWithExpiry(ctx context.Context, key, content string, seconds int64) error
	Read(ctx context.Context, key string) (string, error)
	// Delete succeeds when the key is already absent.
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	RemainingTTL(ctx context.Context, key string) (model.TTL, error)
	Ping(ctx context.Context) error
	Close() error
}

const maxExpirySeconds = math.MaxInt64 / int64(time.Second)

// expiryDuration converts seconds to a Duration for the memory and postgres
// backends, saturating instead of overflowing for very large values.
func expiryDuration(seconds int64) time.Duration {
	if seconds > maxExpirySeconds {
		seconds = maxExpirySeconds
	}
	return time.Duration(seconds) * time.Second
}
