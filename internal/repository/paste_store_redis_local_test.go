package repository

import (
	"context"
	"errors"
	"net"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pastebin/kvpaste/internal/model"
)

func newMiniRedisStore(t *testing.T, prefix string) (PasteStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPasteStore(client, prefix), mr, client
}

func TestRedisStoreAgainstMiniredis(t *testing.T) {
	store, mr, _ := newMiniRedisStore(t, "p:")
	ctx := context.Background()

	if err := store.WritePermanent(ctx, "perm", "line1\nline2"); err != nil {
		t.Fatalf("write permanent: %v", err)
	}
	if err := store.WriteWithExpiry(ctx, "temp", "", 5); err != nil {
		t.Fatalf("write expiring: %v", err)
	}
	mr.Set("other", "not ours")

	if got, err := mr.Get("p:perm"); err != nil || got != "line1\nline2" {
		t.Fatalf("raw key = %q, %v", got, err)
	}
	if got, err := store.Read(ctx, "temp"); err != nil || got != "" {
		t.Fatalf("read temp = %q, %v", got, err)
	}
	if _, err := store.Read(ctx, "missing"); !errors.Is(err, ErrPasteNotFound) {
		t.Fatalf("read missing: %v", err)
	}

	tests := []struct {
		key  string
		want model.TTL
	}{
		{"perm", model.TTLPermanent},
		{"temp", 5},
		{"missing", model.TTLAbsent},
	}
	for _, tt := range tests {
		got, err := store.RemainingTTL(ctx, tt.key)
		if err != nil {
			t.Fatalf("ttl %s: %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("ttl %s = %d, want %d", tt.key, got, tt.want)
		}
	}

	keys, err := store.ListKeys(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "perm" || keys[1] != "temp" {
		t.Fatalf("keys = %v, want [perm temp]", keys)
	}

	for i := 0; i < 2; i++ {
		if err := store.Delete(ctx, "perm"); err != nil {
			t.Fatalf("delete #%d: %v", i, err)
		}
	}
	if mr.Exists("p:perm") {
		t.Fatal("perm still present after delete")
	}
}

func TestRedisStoreExpiryWithFastForward(t *testing.T) {
	store, mr, _ := newMiniRedisStore(t, "")
	ctx := context.Background()

	if err := store.WriteWithExpiry(ctx, "short", "x", 5); err != nil {
		t.Fatalf("write: %v", err)
	}

	// 500ms left: redis replies 0 but the key is still live.
	mr.FastForward(4500 * time.Millisecond)
	if ttl, err := store.RemainingTTL(ctx, "short"); err != nil || ttl != 1 {
		t.Fatalf("sub-second ttl = %d, %v, want 1", ttl, err)
	}
	if _, err := store.Read(ctx, "short"); err != nil {
		t.Fatalf("read before expiry: %v", err)
	}

	mr.FastForward(time.Second)
	if _, err := store.Read(ctx, "short"); !errors.Is(err, ErrPasteNotFound) {
		t.Fatalf("read after expiry: %v", err)
	}
	if ttl, _ := store.RemainingTTL(ctx, "short"); ttl != model.TTLAbsent {
		t.Fatalf("ttl after expiry = %d", ttl)
	}
	keys, err := store.ListKeys(ctx)
	if err != nil || len(keys) != 0 {
		t.Fatalf("keys after expiry = %v, %v", keys, err)
	}
}

func TestRedisStoreRewriteClearsExpiry(t *testing.T) {
	store, mr, _ := newMiniRedisStore(t, "")
	ctx := context.Background()

	if err := store.WriteWithExpiry(ctx, "k", "v1", 5); err != nil {
		t.Fatalf("write expiring: %v", err)
	}
	if err := store.WritePermanent(ctx, "k", "v2"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	mr.FastForward(time.Minute)
	if got, err := store.Read(ctx, "k"); err != nil || got != "v2" {
		t.Fatalf("read = %q, %v", got, err)
	}
	if ttl, _ := store.RemainingTTL(ctx, "k"); ttl != model.TTLPermanent {
		t.Fatalf("ttl = %d, want permanent", ttl)
	}
}

// argsRecorder keeps the arguments of every command sent by the client.
type argsRecorder struct {
	cmds [][]any
}

func (r *argsRecorder) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (r *argsRecorder) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		r.cmds = append(r.cmds, cmd.Args())
		return next(ctx, cmd)
	}
}

func (r *argsRecorder) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisStoreSendsExpirySecondsUnchanged(t *testing.T) {
	store, _, client := newMiniRedisStore(t, "p:")
	rec := &argsRecorder{}
	client.AddHook(rec)
	ctx := context.Background()

	const huge = int64(1) << 40
	// The server may refuse a value this large; only the wire arguments matter here.
	_ = store.WriteWithExpiry(ctx, "big", "x", huge)

	var set []any
	for _, args := range rec.cmds {
		if len(args) > 0 && args[0] == "SET" {
			set = args
		}
	}
	if len(set) != 5 {
		t.Fatalf("SET args = %v", set)
	}
	if set[1] != "p:big" || set[3] != "EX" {
		t.Fatalf("SET args = %v", set)
	}
	if got, ok := set[4].(int64); !ok || got != huge {
		t.Fatalf("EX argument = %v (%T), want %d", set[4], set[4], huge)
	}
}
