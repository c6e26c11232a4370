package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pastebin/kvpaste/internal/model"
)

const scanBatch = 100

type redisPasteStore struct {
	client *redis.Client
	prefix string
}

// NewRedisPasteStore stores each paste as a plain string under prefix+id.
// An empty prefix gives the flat key space where key == paste id.
func NewRedisPasteStore(client *redis.Client, prefix string) PasteStore {
	return &redisPasteStore{client: client, prefix: prefix}
}

func (s *redisPasteStore) key(id string) string {
	return s.prefix + id
}

func (s *redisPasteStore) WritePermanent(ctx context.Context, key, content string) error {
	return s.client.Set(ctx, s.key(key), content, 0).Err()
}

func (s *redisPasteStore) WriteWithExpiry(ctx context.Context, key, content string, seconds int64) error {
	// Seconds go to redis as given; its own limits apply.
	return s.client.Do(ctx, "SET", s.key(key), content, "EX", seconds).Err()
}

func (s *redisPasteStore) Read(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrPasteNotFound
	}
	return val, err
}

func (s *redisPasteStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *redisPasteStore) ListKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()
	seen := make(map[string]struct{})
	for iter.Next(ctx) {
		k := strings.TrimPrefix(iter.Val(), s.prefix)
		// SCAN may return a key more than once.
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// RemainingTTL maps the redis TTL reply: -1 means no expiry, -2 means no key.
func (s *redisPasteStore) RemainingTTL(ctx context.Context, key string) (model.TTL, error) {
	d, err := s.client.TTL(ctx, s.key(key)).Result()
	if err != nil {
		return model.TTLAbsent, err
	}
	switch {
	case d == -1:
		return model.TTLPermanent, nil
	case d == -2:
		return model.TTLAbsent, nil
	case d < time.Second:
		// TTL truncates to whole seconds; the key is still live.
		return model.TTL(1), nil
	default:
		return model.TTL(d / time.Second), nil
	}
}

func (s *redisPasteStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisPasteStore) Close() error {
	return s.client.Close()
}
