package product

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
)

type Service struct {
	source   catalog.Source
	pageSize int
}

// New returns a Service reading from source. A non-positive pageSize
// falls back to DefaultPageSize.
func New(source catalog.Source, pageSize int) *Service {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return &Service{source: source, pageSize: pageSize}
}

func (s *Service) PageSize() int {
	return s.pageSize
}

// Search normalizes paging and queries the catalog. A zero limit means the
// configured page size.
func (s *Service) Search(ctx context.Context, text string, skip, limit int) (domain.CatalogPage, error) {
	if skip < 0 {
		return domain.CatalogPage{}, fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidPaging)
	}
	switch {
	case limit < 0:
		return domain.CatalogPage{}, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidPaging)
	case limit == 0:
		limit = s.pageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return s.source.Search(ctx, domain.CatalogQuery{
		Text:  strings.TrimSpace(text),
		Skip:  skip,
		Limit: limit,
	})
}
