package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as received from the catalog source.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Thumbnail   string          `json:"thumbnail"`
	Stock       int             `json:"stock"`
}
