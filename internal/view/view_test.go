package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

var testProduct = domain.Product{
	ID:          1,
	Title:       "Test Product",
	Description: "Test Description",
	Price:       decimal.RequireFromString("99.99"),
	Thumbnail:   "https://example.com/thumb.jpg",
	Stock:       10,
}

func TestCard_NotInCart(t *testing.T) {
	card := Card(testProduct, domain.Cart{})

	assert.Equal(t, "Test Product", card.Title)
	assert.Equal(t, "Test Description", card.Description)
	assert.Equal(t, "$99.99", card.Price)
	assert.Equal(t, "Add to Cart", card.AddLabel)
	assert.False(t, card.InCart)
	assert.False(t, card.AddDisabled)
	assert.False(t, card.ShowRemove)
}

func TestCard_ShowsQuantityInCart(t *testing.T) {
	store := cartsvc.New()
	store.UpdateCart(testProduct)
	store.UpdateCart(testProduct)

	card := Card(testProduct, store.Snapshot())

	assert.Equal(t, "2 in cart", card.AddLabel)
	assert.Equal(t, 2, card.Quantity)
	assert.True(t, card.ShowRemove)
}

func TestCard_RemoveRestoresAddLabel(t *testing.T) {
	store := cartsvc.New()
	store.UpdateCart(testProduct)
	store.RemoveProduct(testProduct.ID)

	card := Card(testProduct, store.Snapshot())

	assert.Equal(t, "Add to Cart", card.AddLabel)
	assert.False(t, card.ShowRemove)
}

func TestCard_DisablesAddAtStockLimit(t *testing.T) {
	limited := testProduct
	limited.Stock = 2
	store := cartsvc.New()

	store.UpdateCart(limited)
	assert.True(t, CanAdd(limited, store.Snapshot()))

	store.UpdateCart(limited)
	assert.False(t, CanAdd(limited, store.Snapshot()))

	// The guard only disables the control; the store still accepts a direct call.
	store.UpdateCart(limited)
	assert.Equal(t, 3, store.Snapshot().Quantity(limited.ID))
	assert.True(t, Card(limited, store.Snapshot()).AddDisabled)
}

func TestSummary(t *testing.T) {
	empty := Summary(domain.Cart{})
	assert.True(t, empty.Empty)
	assert.Equal(t, "Your cart is empty", empty.Message)
	assert.Equal(t, "0.00", empty.Total)
	assert.NotNil(t, empty.Lines)

	second := testProduct
	second.ID = 2
	second.Price = decimal.RequireFromString("0.5")
	store := cartsvc.New()
	store.UpdateCart(testProduct)
	store.UpdateCart(second)
	store.UpdateCart(second)

	summary := Summary(store.Snapshot())
	require.Len(t, summary.Lines, 2)
	assert.False(t, summary.Empty)
	assert.Empty(t, summary.Message)
	assert.Equal(t, 3, summary.TotalQuantity)
	assert.Equal(t, "100.99", summary.Total)
	assert.Equal(t, "1.00", summary.Lines[1].Subtotal)
}
