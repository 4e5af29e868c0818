package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"linguacademy/internal/domain"
	"linguacademy/internal/platform/logger"
)

const (
	SnapshotKey = "catalog:snapshot"
	DefaultTTL  = 10 * time.Minute
)

type Loader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// SnapshotCache is a read-through cache in front of a slower seed source.
// Redis errors degrade to a direct load.
type SnapshotCache struct {
	next Loader
	rdb  redis.Cmdable
	ttl  time.Duration
	log  *logger.Logger
}

func NewSnapshotCache(next Loader, rdb redis.Cmdable, ttl time.Duration, log *logger.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SnapshotCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *SnapshotCache) Load(ctx context.Context) (*domain.Snapshot, error) {
	// 1. cache
	val, err := c.rdb.Get(ctx, SnapshotKey).Bytes()
	switch {
	case err == nil:
		var snap domain.Snapshot
		if jerr := json.Unmarshal(val, &snap); jerr == nil {
			c.log.Debug("snapshot cache hit", "key", SnapshotKey)
			return &snap, nil
		}
		c.log.Warn("snapshot cache entry is corrupt, reloading", "key", SnapshotKey)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("snapshot cache unavailable", "error", err)
	}

	// 2. source
	snap, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	// 3. store
	if data, err := json.Marshal(snap); err == nil {
		if err := c.rdb.Set(ctx, SnapshotKey, data, c.ttl).Err(); err != nil {
			c.log.Warn("snapshot cache write failed", "error", err)
		}
	}
	return snap, nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, SnapshotKey).Err()
}
