package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"golang.org/x/sync/singleflight"

	"storefront/internal/cache"
	"storefront/internal/domain"
)

// Cached serves pages from a cache and collapses concurrent misses for the
// same page into one upstream call. Cache failures fall through to the source.
type Cached struct {
	source Source
	cache  cache.PageCache
	group  singleflight.Group
	logger *log.Logger
}

func NewCached(source Source, pages cache.PageCache, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cached{source: source, cache: pages, logger: logger}
}

func (c *Cached) Search(ctx context.Context, q domain.CatalogQuery) (domain.CatalogPage, error) {
	key := cache.PageKey(q)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		page, err := c.cache.Get(ctx, q)
		if err == nil {
			return *page, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Printf("catalog cache: get key=%s error=%v", key, err)
		}

		fresh, err := c.source.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, q, fresh); err != nil {
			c.logger.Printf("catalog cache: set key=%s error=%v", key, err)
		}
		return fresh, nil
	})
	if err != nil {
		return domain.CatalogPage{}, err
	}
	return v.(domain.CatalogPage), nil
}
