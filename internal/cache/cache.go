package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// FeedCache stores serialized feed results in redis under the feed query's
// deterministic cache key. A nil *FeedCache is valid and caches nothing, so
// deployments without redis skip the whole layer. Redis failures degrade to
// a cache miss; they are logged but never surface to the request.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// NewClient initializes a redis client for the given address. Callers should
// not construct a FeedCache at all when addr is empty.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl, log: log}
}

// Get loads the value stored under key into dest. Returns false on a miss.
func (c *FeedCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("feed cache read failed")
		return false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("feed cache entry corrupt")
		return false
	}
	return true
}

// Set stores v under key with the cache's TTL.
func (c *FeedCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).Warn("feed cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("feed cache write failed")
	}
}
