package garden

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// cachedSeedEntry wraps a merged seed config with version metadata
type cachedSeedEntry struct {
	Version string
	Config  domain.SeedConfig
}

// seedCache keeps merged seed configurations for a short TTL so that
// clicks and polls do not hit getSeedConfig every time
type seedCache struct {
	lru *expirable.LRU[domain.SeedType, *cachedSeedEntry]
}

func newSeedCache(size int, ttl time.Duration) *seedCache {
	if size <= 0 {
		size = DefaultSeedCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultSeedCacheTTL
	}
	return &seedCache{
		lru: expirable.NewLRU[domain.SeedType, *cachedSeedEntry](size, nil, ttl),
	}
}

// Get returns a cached config, dropping entries written by an older schema
func (c *seedCache) Get(t domain.SeedType) (domain.SeedConfig, bool) {
	entry, found := c.lru.Get(t)
	if !found {
		return domain.SeedConfig{}, false
	}
	if entry.Version != SeedCacheSchemaVersion {
		c.lru.Remove(t)
		return domain.SeedConfig{}, false
	}
	return entry.Config, true
}

func (c *seedCache) Set(cfg domain.SeedConfig) {
	c.lru.Add(cfg.Type, &cachedSeedEntry{
		Version: SeedCacheSchemaVersion,
		Config:  cfg,
	})
}

// Clear drops every entry and returns how many there were
func (c *seedCache) Clear() int {
	n := c.lru.Len()
	c.lru.Purge()
	return n
}
