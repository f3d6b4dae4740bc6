// Package view derives what the storefront screens show from a product
// and the current cart snapshot. The stock guard lives here: the store
// accepts any increment, the add control is disabled once the cart holds
// the whole stock.
package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const (
	addToCartLabel   = "Add to Cart"
	emptyCartMessage = "Your cart is empty"
)

// CardState is the rendered state of a product card.
type CardState struct {
	ProductID   int64  `json:"productId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Thumbnail   string `json:"thumbnail"`
	Stock       int    `json:"stock"`
	Quantity    int    `json:"quantity"`
	InCart      bool   `json:"inCart"`
	AddLabel    string `json:"addLabel"`
	AddDisabled bool   `json:"addDisabled"`
	ShowRemove  bool   `json:"showRemove"`
}

// Card computes the card for product against cart.
func Card(product domain.Product, cart domain.Cart) CardState {
	line, inCart := cart.Line(product.ID)
	state := CardState{
		ProductID:   product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       FormatPrice(product.Price),
		Thumbnail:   product.Thumbnail,
		Stock:       product.Stock,
		Quantity:    line.Quantity,
		InCart:      inCart,
		AddLabel:    addToCartLabel,
		ShowRemove:  inCart && line.Quantity > 0,
	}
	if inCart {
		state.AddLabel = fmt.Sprintf("%d in cart", line.Quantity)
		state.AddDisabled = line.Quantity >= product.Stock
	}
	return state
}

// CanAdd reports whether the add control for product is enabled.
func CanAdd(product domain.Product, cart domain.Cart) bool {
	return !Card(product, cart).AddDisabled
}

// Cards renders a page of products.
func Cards(products []domain.Product, cart domain.Cart) []CardState {
	out := make([]CardState, 0, len(products))
	for _, p := range products {
		out = append(out, Card(p, cart))
	}
	return out
}

// SummaryLine is one row of the cart page.
type SummaryLine struct {
	CardState
	Subtotal string `json:"subtotal"`
}

// CartSummary is the rendered cart page.
type CartSummary struct {
	Lines         []SummaryLine `json:"lines"`
	TotalQuantity int           `json:"totalQuantity"`
	Total         string        `json:"total"`
	Empty         bool          `json:"empty"`
	Message       string        `json:"message,omitempty"`
}

// Summary renders the cart page.
func Summary(cart domain.Cart) CartSummary {
	lines := make([]SummaryLine, 0, cart.Len())
	for _, line := range cart.Lines {
		lines = append(lines, SummaryLine{
			CardState: Card(line.Product, cart),
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}
	out := CartSummary{
		Lines:         lines,
		TotalQuantity: cart.TotalQuantity(),
		Total:         cart.TotalPrice().StringFixed(2),
		Empty:         cart.Len() == 0,
	}
	if out.Empty {
		out.Message = emptyCartMessage
	}
	return out
}

// FormatPrice renders a price the way cards show it.
func FormatPrice(price decimal.Decimal) string {
	return "$" + price.String()
}
