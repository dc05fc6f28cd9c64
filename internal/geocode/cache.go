package geocode

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type cacheEntry struct {
	location  Location
	timestamp time.Time
}

// CachingResolver memoizes successful resolutions, content-addressed by the
// location's query string. Failed lookups are not cached so transient
// provider trouble does not pin a bad answer for a whole TTL.
type CachingResolver struct {
	inner  Resolver
	cache  map[string]*cacheEntry
	mutex  sync.RWMutex
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachingResolver(inner Resolver, ttl time.Duration, logger *zap.Logger) *CachingResolver {
	return &CachingResolver{
		inner:  inner,
		cache:  make(map[string]*cacheEntry),
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachingResolver) Name() string {
	return r.inner.Name()
}

func (r *CachingResolver) Resolve(ctx context.Context, loc Location) (Location, error) {
	key := loc.Query()

	if cached, ok := r.getFromCache(key); ok {
		r.logger.Debug("Geocoding cache hit", zap.String("query", key))
		return cached, nil
	}

	resolved, err := r.inner.Resolve(ctx, loc)
	if err != nil {
		return Location{}, err
	}

	r.setCache(key, resolved)
	return resolved, nil
}

func (r *CachingResolver) getFromCache(key string) (Location, bool) {
	r.mutex.RLock()
	entry, exists := r.cache[key]
	r.mutex.RUnlock()

	if !exists {
		return Location{}, false
	}

	if time.Since(entry.timestamp) > r.ttl {
		r.mutex.Lock()
		delete(r.cache, key)
		r.mutex.Unlock()
		return Location{}, false
	}

	return entry.location, true
}

func (r *CachingResolver) setCache(key string, loc Location) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.cache[key] = &cacheEntry{
		location:  loc,
		timestamp: time.Now(),
	}
}

func (r *CachingResolver) ClearCache() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.cache = make(map[string]*cacheEntry)
}
