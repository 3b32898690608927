package images

import (
	"context"

	"go.uber.org/zap"

	"github.com/dtnitsch/cauldron/pkg/caching"
)

// CachingFetcher serves image bytes from a TTL cache before falling back to
// the wrapped fetcher.
type CachingFetcher struct {
	next  Fetcher
	cache *caching.Cache
	log   *zap.Logger
}

// NewCachingFetcher wraps next with cache.
func NewCachingFetcher(next Fetcher, cache *caching.Cache, log *zap.Logger) *CachingFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingFetcher{next: next, cache: cache, log: log}
}

func (c *CachingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := c.cache.Get(url); ok {
		c.log.Debug("Image served from cache", zap.String("url", url))
		return data, nil
	}
	data, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(url, data); err != nil {
		c.log.Warn("Unable to cache image", zap.String("url", url), zap.Error(err))
	}
	return data, nil
}
