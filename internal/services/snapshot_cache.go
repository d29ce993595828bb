package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/sleepintake-backend/internal/engine"
	"github.com/yungbote/sleepintake-backend/internal/logger"
	"github.com/yungbote/sleepintake-backend/internal/utils"
)

// SnapshotCache keeps a user's answer snapshot warm between gateway
// evaluations. A nil SnapshotCache is valid and means caching is off; the
// assessment service falls back to the database on every read.
type SnapshotCache interface {
	Get(ctx context.Context, userID uuid.UUID) (engine.Snapshot, bool)
	Set(ctx context.Context, userID uuid.UUID, snapshot engine.Snapshot)
	Invalidate(ctx context.Context, userID uuid.UUID)
	Close() error
}

type redisSnapshotCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSnapshotCache(log *logger.Logger) (SnapshotCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("SNAPSHOT_CACHE_TTL_SECONDS", 900, log)

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisSnapshotCache{
		log: log.With("service", "RedisSnapshotCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func snapshotKey(userID uuid.UUID) string {
	return "snapshot:" + userID.String()
}

func (c *redisSnapshotCache) Get(ctx context.Context, userID uuid.UUID) (engine.Snapshot, bool) {
	raw, err := c.rdb.Get(ctx, snapshotKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("snapshot cache read failed", "error", err)
		}
		return nil, false
	}
	var snapshot engine.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.log.Warn("bad snapshot cache payload", "error", err)
		return nil, false
	}
	return snapshot, true
}

func (c *redisSnapshotCache) Set(ctx context.Context, userID uuid.UUID, snapshot engine.Snapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("snapshot cache write failed", "error", err)
	}
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.rdb.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		c.log.Warn("snapshot cache invalidation failed", "error", err)
	}
}

func (c *redisSnapshotCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
