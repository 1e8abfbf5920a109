package stooq

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/stock-quote-api/internal/config"
)

// Cache keeps recent quotes in Redis, keyed by upper-cased symbol.  It sits
// in front of the provider rather than in front of the HTTP handler so a
// cache hit still persists a history row and still triggers a notification.
// Every Redis error is treated as a miss; the cache is never load-bearing.
type Cache struct {
	cfg config.QuoteCacheConfig
	rdb *redis.Client
}

// NewCache returns a cache; a nil Redis client or disabled config yields a
// cache whose Get always misses and whose Put is a no-op.
func NewCache(cfg config.QuoteCacheConfig, rdb *redis.Client) *Cache {
	return &Cache{cfg: cfg, rdb: rdb}
}

func (c *Cache) enabled() bool { return c != nil && c.cfg.Enabled && c.rdb != nil }

func (c *Cache) key(symbol string) string {
	return c.cfg.Prefix + ":" + strings.ToUpper(strings.TrimSpace(symbol))
}

// Get returns the cached quote for a symbol, if present.
func (c *Cache) Get(ctx context.Context, symbol string) (Quote, bool) {
	if !c.enabled() {
		return Quote{}, false
	}
	raw, err := c.rdb.Get(ctx, c.key(symbol)).Bytes()
	if err != nil {
		return Quote{}, false
	}
	var q Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return Quote{}, false
	}
	return q, true
}

// Put stores a quote under the configured TTL.
func (c *Cache) Put(ctx context.Context, symbol string, q Quote) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(symbol), raw, c.cfg.TTL).Err()
}
