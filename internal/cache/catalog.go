package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Catalog is a read-through cache for the public catalog (shops,
// services). Availability and conflict state are never cached here:
// those must be answered fresh from the database.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a cache over rdb. A nil client yields a pass-through
// cache so callers need no branching.
func New(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached value for key into dest, reporting whether
// a usable entry was found. Redis errors count as a miss.
func (c *Catalog) Get(ctx context.Context, key string, dest any) bool {
	if c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *Catalog) Set(ctx context.Context, key string, value any) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// Invalidate drops keys after a catalog write.
func (c *Catalog) Invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
