package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Search(ctx context.Context, text string, skip, limit int) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
