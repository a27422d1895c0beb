package config

import "time"

// FileCacheConfig controls caching of poster bytes in Redis.  Only the
// raw file responses are cached; rendered pages never are.
type FileCacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

func LoadFileCacheConfig() FileCacheConfig {
	return FileCacheConfig{
		Enabled:      envBool("FILE_CACHE_ENABLED", true),
		TTL:          envDur("FILE_CACHE_TTL", 10*time.Minute),
		Prefix:       envStr("FILE_CACHE_PREFIX", "poster"),
		MaxBodyBytes: envInt("FILE_CACHE_MAX_BODY_BYTES", 2<<20),
	}
}
