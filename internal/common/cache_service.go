package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-process cache, used when Redis is not configured
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

func (cs *CacheService) Increment(key string, duration time.Duration) (int, error) {
	n, err := cs.cache.IncrementInt(key, 1)
	if err == nil {
		return n, nil
	}
	if cs.cache.Add(key, 1, duration) == nil {
		return 1, nil
	}
	// lost the race to another Add
	return cs.cache.IncrementInt(key, 1)
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
