package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain"
)

// PageCache stores catalog search pages.
type PageCache interface {
	Get(ctx context.Context, q domain.CatalogQuery) (*domain.CatalogPage, error)
	Set(ctx context.Context, q domain.CatalogQuery, page domain.CatalogPage) error
}

var ErrCacheMiss = errors.New("cache miss")

// PageKey identifies a search page. Query text is case-folded.
func PageKey(q domain.CatalogQuery) string {
	text := url.QueryEscape(strings.ToLower(strings.TrimSpace(q.Text)))
	return fmt.Sprintf("catalog:%s:%d:%d", text, q.Skip, q.Limit)
}
