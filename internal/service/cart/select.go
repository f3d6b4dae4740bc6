package cart

import "storefront/internal/domain"

// Select derives a value from the current snapshot.
func Select[T any](s *Store, selector func(domain.Cart) T) T {
	return selector(s.Snapshot())
}

// SubscribeSelect calls fn with the selected value whenever it differs from
// the previously selected one.
func SubscribeSelect[T comparable](s *Store, selector func(domain.Cart) T, fn func(T)) (unsubscribe func()) {
	// Listener calls are serialized by the store, so last needs no lock.
	last := selector(s.Snapshot())
	return s.Subscribe(func(ev Event) {
		v := selector(ev.Cart)
		if v == last {
			return
		}
		last = v
		fn(v)
	})
}

// InCart selects whether the product is in the cart.
func InCart(id int64) func(domain.Cart) bool {
	return func(c domain.Cart) bool { return c.Contains(id) }
}

// QuantityOf selects the quantity held for the product.
func QuantityOf(id int64) func(domain.Cart) int {
	return func(c domain.Cart) int { return c.Quantity(id) }
}

// TotalQuantity selects the number of units across all lines.
func TotalQuantity(c domain.Cart) int {
	return c.TotalQuantity()
}

// TotalPrice selects the cart total as a two-decimal string.
func TotalPrice(c domain.Cart) string {
	return c.TotalPrice().StringFixed(2)
}
