// Package catalog queries the product catalog the storefront browses.
package catalog

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ErrUpstream wraps failures of the remote catalog.
var ErrUpstream = errors.New("catalog unavailable")

// Source returns pages of products matching a free-text query.
type Source interface {
	Search(ctx context.Context, q domain.CatalogQuery) (domain.CatalogPage, error)
}
