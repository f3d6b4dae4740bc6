package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Products is the demo catalog. Stock is kept small so the add-to-cart
// limit is easy to reach by hand.
var Products = []domain.Product{
	{ID: 1, Title: "Essence Mascara Lash Princess", Description: "Volumizing and lengthening mascara.", Price: decimal.RequireFromString("9.99"), Stock: 5, Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/Essence%20Mascara%20Lash%20Princess/thumbnail.png"},
	{ID: 2, Title: "Eyeshadow Palette with Mirror", Description: "Eyeshadow palette with a built-in mirror.", Price: decimal.RequireFromString("19.99"), Stock: 3, Thumbnail: "https://cdn.dummyjson.com/products/images/beauty/Eyeshadow%20Palette%20with%20Mirror/thumbnail.png"},
	{ID: 3, Title: "Powder Canister", Description: "Finely milled setting powder.", Price: decimal.RequireFromString("14.99"), Stock: 2},
	{ID: 4, Title: "Red Lipstick", Description: "Classic bold red lipstick.", Price: decimal.RequireFromString("12.99"), Stock: 1},
	{ID: 5, Title: "Red Nail Polish", Description: "Glossy red nail polish.", Price: decimal.RequireFromString("8.99"), Stock: 0},
	{ID: 6, Title: "Calvin Klein CK One", Description: "Unisex citrus fragrance.", Price: decimal.RequireFromString("49.99"), Stock: 4},
	{ID: 7, Title: "Ceramic Mug", Description: "Ceramic mug with demo logo.", Price: decimal.RequireFromString("12.99"), Stock: 10},
	{ID: 8, Title: "Cotton T-Shirt", Description: "Soft cotton tee for demo purposes.", Price: decimal.RequireFromString("19.99"), Stock: 6},
	{ID: 9, Title: "Wooden Desk Lamp", Description: "Warm light desk lamp.", Price: decimal.RequireFromString("34.50"), Stock: 2},
}

// Apply upserts the demo catalog. It is idempotent: products are keyed by id.
func Apply(ctx context.Context, repo ProductWriter) (int, error) {
	for _, p := range Products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
	}
	return len(Products), nil
}
