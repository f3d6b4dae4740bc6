package cart

import (
	"io"
	"log"
)

// LogActions writes one line per dispatched action until unsubscribed.
func LogActions(s *Store, logger *log.Logger) (unsubscribe func()) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return s.Subscribe(func(ev Event) {
		logger.Printf("cart: action=%s product_id=%d lines=%d->%d quantity=%d",
			ev.Action, ev.ProductID, ev.Previous.Len(), ev.Cart.Len(), ev.Cart.TotalQuantity())
	})
}
