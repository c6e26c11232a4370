package service

import (
	"context"
	"errors"
	"fmt"

	"pastebin/kvpaste/internal/model"
	"pastebin/kvpaste/internal/repository"
)

type PasteService interface {
	Create(ctx context.Context, content string, filename *string, ttl *int64) (string, error)
	Update(ctx context.Context, id, content string, ttl *int64) error
	Get(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]model.ListEntry, error)
	Delete(ctx context.Context, id string) error
}

type pasteService struct {
	store repository.PasteStore
}

func NewPasteService(store repository.PasteStore) PasteService {
	return &pasteService{store: store}
}

func (s *pasteService) Create(ctx context.Context, content string, filename *string, ttl *int64) (string, error) {
	id := AllocateID(filename)
	if err := s.write(ctx, id, content, ttl); err != nil {
		return "", fmt.Errorf("save paste %s: %w", id, err)
	}
	return id, nil
}

// Update replaces content and expiry of id whether or not it exists.
func (s *pasteService) Update(ctx context.Context, id, content string, ttl *int64) error {
	if err := s.write(ctx, id, content, ttl); err != nil {
		return fmt.Errorf("update paste %s: %w", id, err)
	}
	return nil
}

func (s *pasteService) write(ctx context.Context, id, content string, ttl *int64) error {
	mode := ResolveTTL(ttl)
	if mode.Expiring {
		return s.store.WriteWithExpiry(ctx, id, content, mode.Seconds)
	}
	return s.store.WritePermanent(ctx, id, content)
}

func (s *pasteService) Get(ctx context.Context, id string) (string, error) {
	content, err := s.store.Read(ctx, id)
	if errors.Is(err, repository.ErrPasteNotFound) {
		return "", ErrPasteNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read paste %s: %w", id, err)
	}
	return content, nil
}

// List returns every live paste with its remaining TTL. A key whose TTL
// lookup fails is reported as absent instead of failing the whole listing.
func (s *pasteService) List(ctx context.Context) ([]model.ListEntry, error) {
	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	entries := make([]model.ListEntry, 0, len(keys))
	for _, k := range keys {
		ttl, err := s.store.RemainingTTL(ctx, k)
		if err != nil {
			ttl = model.TTLAbsent
		}
		entries = append(entries, model.ListEntry{ID: k, Key: k, TTL: ttl})
	}
	return entries, nil
}

func (s *pasteService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete paste %s: %w", id, err)
	}
	return nil
}
