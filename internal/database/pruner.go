package database

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner periodically removes session entries that have not been written within the TTL
type Pruner struct {
	repo     *KVRepository
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

func NewPruner(repo *KVRepository, ttl, interval time.Duration, logger *zap.Logger) *Pruner {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pruner{repo: repo, ttl: ttl, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled
func (p *Pruner) Run(ctx context.Context) {
	if p.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := p.repo.DeleteOlderThan(ctx, time.Now().Add(-p.ttl))
			if err != nil {
				p.logger.Warn("⚠️ Failed to prune expired sessions", zap.Error(err))
				continue
			}
			if removed > 0 {
				p.logger.Info("🧹 Pruned expired session entries", zap.Int64("removed", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}
