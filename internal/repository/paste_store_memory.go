package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"pastebin/kvpaste/internal/model"
)

type memEntry struct {
	content   string
	expiresAt time.Time
	hasTTL    bool
}

func (e memEntry) isExpired(now time.Time) bool {
	return e.hasTTL && !now.Before(e.expiresAt)
}

type memoryPasteStore struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryPasteStore keeps pastes in process memory. Expired entries are
// dropped lazily on access.
func NewMemoryPasteStore() PasteStore {
	return NewMemoryPasteStoreWithClock(time.Now)
}

// NewMemoryPasteStoreWithClock is NewMemoryPasteStore with an injectable time source.
func NewMemoryPasteStoreWithClock(now func() time.Time) PasteStore {
	return &memoryPasteStore{
		entries: make(map[string]memEntry),
		now:     now,
	}
}

func (s *memoryPasteStore) WritePermanent(_ context.Context, key, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{content: content}
	return nil
}

func (s *memoryPasteStore) WriteWithExpiry(_ context.Context, key, content string, seconds int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{
		content:   content,
		hasTTL:    true,
		expiresAt: s.now().Add(expiryDuration(seconds)),
	}
	return nil
}

// lookup returns the live entry for key, evicting it if it has expired.
func (s *memoryPasteStore) lookup(key string) (memEntry, bool) {
	now := s.now()
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return memEntry{}, false
	}
	if entry.isExpired(now) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.isExpired(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return memEntry{}, false
	}
	return entry, true
}

func (s *memoryPasteStore) Read(_ context.Context, key string) (string, error) {
	entry, ok := s.lookup(key)
	if !ok {
		return "", ErrPasteNotFound
	}
	return entry.content, nil
}

func (s *memoryPasteStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryPasteStore) ListKeys(_ context.Context) ([]string, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if e.isExpired(now) {
			delete(s.entries, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *memoryPasteStore) RemainingTTL(_ context.Context, key string) (model.TTL, error) {
	entry, ok := s.lookup(key)
	if !ok {
		return model.TTLAbsent, nil
	}
	if !entry.hasTTL {
		return model.TTLPermanent, nil
	}
	return model.TTLFromDuration(entry.expiresAt.Sub(s.now())), nil
}

func (s *memoryPasteStore) Ping(context.Context) error { return nil }

func (s *memoryPasteStore) Close() error { return nil }
