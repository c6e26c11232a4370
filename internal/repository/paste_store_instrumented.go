package repository

import (
	"context"
	"errors"
	"time"

	"pastebin/kvpaste/internal/metrics"
	"pastebin/kvpaste/internal/model"
)

type instrumentedPasteStore struct {
	next    PasteStore
	backend string
	m       *metrics.Metrics
}

// NewInstrumentedPasteStore records latency and failures of every call to next.
func NewInstrumentedPasteStore(next PasteStore, backend string, m *metrics.Metrics) PasteStore {
	return &instrumentedPasteStore{next: next, backend: backend, m: m}
}

// track returns a func to be deferred with a pointer to the named error result.
func (s *instrumentedPasteStore) track(op string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		s.m.StoreOpDuration.WithLabelValues(op, s.backend).Observe(time.Since(start).Seconds())
		if err := *errp; err != nil && !errors.Is(err, ErrPasteNotFound) {
			s.m.StoreErrors.WithLabelValues(op, s.backend).Inc()
		}
	}
}

func (s *instrumentedPasteStore) WritePermanent(ctx context.Context, key, content string) (err error) {
	defer s.track("write_permanent")(&err)
	return s.next.WritePermanent(ctx, key, content)
}

func (s *instrumentedPasteStore) WriteWithExpiry(ctx context.Context, key, content string, seconds int64) (err error) {
	defer s.track("write_with_expiry")(&err)
	return s.next.WriteWithExpiry(ctx, key, content, seconds)
}

func (s *instrumentedPasteStore) Read(ctx context.Context, key string) (content string, err error) {
	defer s.track("read")(&err)
	return s.next.Read(ctx, key)
}

func (s *instrumentedPasteStore) Delete(ctx context.Context, key string) (err error) {
	defer s.track("delete")(&err)
	return s.next.Delete(ctx, key)
}

func (s *instrumentedPasteStore) ListKeys(ctx context.Context) (keys []string, err error) {
	defer s.track("list_keys")(&err)
	return s.next.ListKeys(ctx)
}

func (s *instrumentedPasteStore) RemainingTTL(ctx context.Context, key string) (ttl model.TTL, err error) {
	defer s.track("remaining_ttl")(&err)
	return s.next.RemainingTTL(ctx, key)
}

func (s *instrumentedPasteStore) Ping(ctx context.Context) (err error) {
	defer s.track("ping")(&err)
	return s.next.Ping(ctx)
}

func (s *instrumentedPasteStore) Close() error {
	return s.next.Close()
}
