package catalog

import (
	"context"

	"storefront/internal/domain"
)

type productSearcher interface {
	Search(ctx context.Context, text string, skip, limit int) ([]domain.Product, int, error)
}

// PostgresSource serves the catalog from the local products table.
type PostgresSource struct {
	repo productSearcher
}

func NewPostgresSource(repo productSearcher) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) Search(ctx context.Context, q domain.CatalogQuery) (domain.CatalogPage, error) {
	products, total, err := s.repo.Search(ctx, q.Text, q.Skip, q.Limit)
	if err != nil {
		return domain.CatalogPage{}, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return domain.CatalogPage{Products: products, Total: total, Skip: q.Skip, Limit: q.Limit}, nil
}
