package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pastebin/kvpaste/internal/model"
)

type PGPasteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPGPasteStore keeps pastes in the pastes table. Postgres has no native
// expiry, so expired rows are filtered out of every read and removed by PurgeExpired.
func NewPGPasteStore(db *gorm.DB) *PGPasteStore {
	return &PGPasteStore{db: db, now: time.Now}
}

func (s *PGPasteStore) upsert(ctx context.Context, paste *model.Paste) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "expires_at", "updated_at"}),
		}).
		Create(paste).Error
}

func (s *PGPasteStore) WritePermanent(ctx context.Context, key, content string) error {
	return s.upsert(ctx, &model.Paste{ID: key, Content: content})
}

func (s *PGPasteStore) WriteWithExpiry(ctx context.Context, key, content string, seconds int64) error {
	expiresAt := s.now().Add(expiryDuration(seconds))
	return s.upsert(ctx, &model.Paste{ID: key, Content: content, ExpiresAt: &expiresAt})
}

func (s *PGPasteStore) live(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.Paste{}).
		Where("(expires_at IS NULL OR expires_at > ?)", s.now())
}

func (s *PGPasteStore) find(ctx context.Context, key string) (*model.Paste, error) {
	var paste model.Paste
	err := s.live(ctx).Where("id = ?", key).First(&paste).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPasteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &paste, nil
}

func (s *PGPasteStore) Read(ctx context.Context, key string) (string, error) {
	paste, err := s.find(ctx, key)
	if err != nil {
		return "", err
	}
	return paste.Content, nil
}

func (s *PGPasteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("id = ?", key).Delete(&model.Paste{}).Error
}

func (s *PGPasteStore) ListKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	if err := s.live(ctx).Order("id").Pluck("id", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *PGPasteStore) RemainingTTL(ctx context.Context, key string) (model.TTL, error) {
	paste, err := s.find(ctx, key)
	if errors.Is(err, ErrPasteNotFound) {
		return model.TTLAbsent, nil
	}
	if err != nil {
		return model.TTLAbsent, err
	}
	if paste.ExpiresAt == nil {
		return model.TTLPermanent, nil
	}
	return model.TTLFromDuration(paste.ExpiresAt.Sub(s.now())), nil
}

// PurgeExpired deletes rows whose expiry has passed and returns how many were removed.
func (s *PGPasteStore) PurgeExpired(ctx context.Context) (int, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&model.Paste{})
	return int(res.RowsAffected), res.Error
}

func (s *PGPasteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PGPasteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
