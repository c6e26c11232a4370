package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pastebin/kvpaste/internal/model"
)

// Runs against a real database only when KVPASTE_TEST_POSTGRES_DSN is set.
func newTestPGStore(t *testing.T) (*PGPasteStore, *fakeClock) {
	t.Helper()
	dsn := os.Getenv("KVPASTE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KVPASTE_TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("DELETE FROM pastes").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}

	clock := newFakeClock()
	store := NewPGPasteStore(db)
	store.now = clock.Now
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestPGStoreUpsertAndExpiry(t *testing.T) {
	store, clock := newTestPGStore(t)
	ctx := context.Background()

	if err := store.WriteWithExpiry(ctx, "k", "v1", 10); err != nil {
		t.Fatalf("write expiring: %v", err)
	}
	if ttl, _ := store.RemainingTTL(ctx, "k"); ttl != 10 {
		t.Fatalf("ttl = %d, want 10", ttl)
	}

	if err := store.WritePermanent(ctx, "k", "v2"); err != nil {
		t.Fatalf("rewrite permanent: %v", err)
	}
	if ttl, _ := store.RemainingTTL(ctx, "k"); ttl != model.TTLPermanent {
		t.Fatalf("ttl = %d, want permanent after rewrite", ttl)
	}
	if got, _ := store.Read(ctx, "k"); got != "v2" {
		t.Fatalf("content = %q", got)
	}

	if err := store.WriteWithExpiry(ctx, "gone", "x", 5); err != nil {
		t.Fatalf("write: %v", err)
	}
	clock.Advance(6 * time.Second)
	if _, err := store.Read(ctx, "gone"); !errors.Is(err, ErrPasteNotFound) {
		t.Fatalf("read expired: %v", err)
	}
	keys, _ := store.ListKeys(ctx)
	if len(keys) != 1 || keys[0] != "k" {
		t.Fatalf("keys = %v", keys)
	}

	removed, err := store.PurgeExpired(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("purge = %d, %v", removed, err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete purged key: %v", err)
	}
}

func TestPGStoreAcceptsLongNames(t *testing.T) {
	store, _ := newTestPGStore(t)
	ctx := context.Background()

	name := strings.Repeat("n", 2048)
	if err := store.WritePermanent(ctx, name, "body"); err != nil {
		t.Fatalf("write long name: %v", err)
	}
	if got, err := store.Read(ctx, name); err != nil || got != "body" {
		t.Fatalf("read long name = %q, %v", got, err)
	}
}
