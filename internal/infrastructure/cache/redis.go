package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-directory-service/config"
	"user-directory-service/internal/application/views"
)

const (
	summaryKeyPrefix = "users:summary:"
	summaryTTL       = 30 * time.Second
)

// SummaryCache is a best-effort redis cache for summary views. Failures
// are logged and treated as misses; the repository stays authoritative.
type SummaryCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(cfg config.Redis, logger *zap.Logger) *SummaryCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &SummaryCache{rdb: rdb, log: logger}
}

func (c *SummaryCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *SummaryCache) Close() error { return c.rdb.Close() }

func (c *SummaryCache) GetSummary(ctx context.Context, id uuid.UUID) (*views.SummaryView, bool) {
	b, err := c.rdb.Get(ctx, summaryKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("summary cache get failed", zap.Error(err))
		}
		return nil, false
	}

	var v views.SummaryView
	if err = json.Unmarshal(b, &v); err != nil {
		c.log.Warn("summary cache decode failed", zap.Error(err))
		return nil, false
	}

	return &v, true
}

func (c *SummaryCache) SetSummary(ctx context.Context, id uuid.UUID, v views.SummaryView) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("summary cache encode failed", zap.Error(err))
		return
	}
	if err = c.rdb.Set(ctx, summaryKeyPrefix+id.String(), b, summaryTTL).Err(); err != nil {
		c.log.Warn("summary cache set failed", zap.Error(err))
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, summaryKeyPrefix+id.String()).Err(); err != nil {
		c.log.Warn("summary cache invalidate failed", zap.Error(err))
	}
}
