package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes expired pastes from a backend without native expiry.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// Start runs p.PurgeExpired every interval until ctx is cancelled.
// The returned channel is closed once the loop has exited.
func Start(ctx context.Context, p Purger, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = time.Minute
	}
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purgeOnce(ctx, p, logger)
			}
		}
	}()
	return done
}

func purgeOnce(ctx context.Context, p Purger, logger *zap.Logger) {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	removed, err := p.PurgeExpired(c)
	if err != nil {
		logger.Error("janitor purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		logger.Info("janitor removed expired pastes", zap.Int("count", removed))
	}
}
