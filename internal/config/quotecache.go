package config

import "time"

// QuoteCacheConfig controls the Redis cache for upstream Stooq quotes.
// Caching happens at the provider boundary rather than on whole HTTP
// responses so a cache hit still records the lookup in the caller's history.
type QuoteCacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadQuoteCacheConfig reads QUOTE_CACHE_* variables with defaults that keep
// quotes fresh within a trading minute.
func LoadQuoteCacheConfig() QuoteCacheConfig {
	return QuoteCacheConfig{
		Enabled: envBool("QUOTE_CACHE_ENABLED", true),
		TTL:     envDur("QUOTE_CACHE_TTL", time.Minute),
		Prefix:  envStr("QUOTE_CACHE_PREFIX", "quote"),
	}
}
