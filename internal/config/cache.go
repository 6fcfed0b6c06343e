package config

import "time"

// CacheConfig defines settings for the transaction list cache. When
// Enabled is false or no Redis client is available, caching is
// disabled. TTL bounds how stale a cached list may get; writes
// invalidate the owner's entry immediately anyway.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenvBool("CACHE_ENABLED", true),
		TTL:     parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:  getenv("CACHE_PREFIX", "txcache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
