package cart

import (
	"sync"
	"sync/atomic"

	"storefront/internal/domain"
)

// Action names the mutation that produced a snapshot.
type Action string

const (
	ActionUpdateCart         Action = "updateCart"
	ActionRemoveItemFromCart Action = "removeItemFromCart"
	ActionRemoveProduct      Action = "removeProduct"
	ActionResetCart          Action = "resetCart"
)

// Event is delivered to listeners after a mutation has been applied.
type Event struct {
	Action    Action
	ProductID int64
	Cart      domain.Cart
	Previous  domain.Cart
}

// Listener receives events synchronously on the dispatching goroutine.
// A listener must not dispatch into the store that called it.
type Listener func(Event)

// Store is the single source of truth for cart contents. Every mutation
// publishes a fresh snapshot; snapshots handed out earlier never change.
// Mutations are serialized, reads never block.
type Store struct {
	dispatchMu sync.Mutex
	state      atomic.Pointer[domain.Cart]

	listenersMu sync.RWMutex
	listeners   []subscription
	nextID      uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// New returns a store holding an empty cart.
func New() *Store {
	s := &Store{}
	s.state.Store(emptyCart())
	return s
}

func emptyCart() *domain.Cart {
	return &domain.Cart{Lines: []domain.CartLine{}}
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	return copyCart(s.state.Load())
}

// UpdateCart appends the product with quantity 1, or increments the
// existing line. Stock is not checked here.
func (s *Store) UpdateCart(product domain.Product) {
	s.dispatch(ActionUpdateCart, product.ID, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		return appendOrIncrement(lines, product), true
	})
}

// UpdateCartIf applies UpdateCart only when allow accepts the current cart.
// The check and the mutation happen under the same dispatch, so concurrent
// callers cannot both pass a guard that only one of them should.
func (s *Store) UpdateCartIf(product domain.Product, allow func(domain.Cart) bool) bool {
	applied := false
	s.dispatch(ActionUpdateCart, product.ID, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		if !allow(domain.Cart{Lines: cloneLines(lines)}) {
			return lines, false
		}
		applied = true
		return appendOrIncrement(lines, product), true
	})
	return applied
}

// RemoveItemFromCart decrements the line for id, dropping it when the
// quantity would reach zero. Unknown ids are ignored.
func (s *Store) RemoveItemFromCart(id int64) {
	s.dispatch(ActionRemoveItemFromCart, id, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, id)
		if idx < 0 {
			return lines, false
		}
		if lines[idx].Quantity <= 1 {
			return without(lines, idx), true
		}
		next := cloneLines(lines)
		next[idx].Quantity--
		return next, true
	})
}

// RemoveProduct drops the line for id whatever its quantity.
func (s *Store) RemoveProduct(id int64) {
	s.dispatch(ActionRemoveProduct, id, func(lines []domain.CartLine) ([]domain.CartLine, bool) {
		idx := indexOf(lines, id)
		if idx < 0 {
			return lines, false
		}
		return without(lines, idx), true
	})
}

// ResetState empties the cart.
func (s *Store) ResetState() {
	s.dispatch(ActionResetCart, 0, func([]domain.CartLine) ([]domain.CartLine, bool) {
		return emptyCart().Lines, true
	})
}

// Subscribe registers fn for every subsequent mutation. The returned func
// removes the listener; calling it more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) dispatch(action Action, id int64, reduce func([]domain.CartLine) ([]domain.CartLine, bool)) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	prev := s.state.Load()
	lines, changed := reduce(prev.Lines)
	if !changed {
		return
	}
	next := &domain.Cart{Lines: lines}
	s.state.Store(next)

	s.listenersMu.RLock()
	subs := make([]subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.listenersMu.RUnlock()

	// Each listener gets its own copies so one cannot disturb another.
	for _, sub := range subs {
		sub.fn(Event{Action: action, ProductID: id, Cart: copyCart(next), Previous: copyCart(prev)})
	}
}

func indexOf(lines []domain.CartLine, id int64) int {
	for i, line := range lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func appendOrIncrement(lines []domain.CartLine, product domain.Product) []domain.CartLine {
	idx := indexOf(lines, product.ID)
	if idx < 0 {
		next := make([]domain.CartLine, len(lines), len(lines)+1)
		copy(next, lines)
		return append(next, domain.CartLine{Product: product, Quantity: 1})
	}
	next := cloneLines(lines)
	next[idx].Quantity++
	return next
}

func copyCart(c *domain.Cart) domain.Cart {
	return domain.Cart{Lines: cloneLines(c.Lines)}
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	next := make([]domain.CartLine, len(lines))
	copy(next, lines)
	return next
}

func without(lines []domain.CartLine, idx int) []domain.CartLine {
	next := make([]domain.CartLine, 0, len(lines)-1)
	next = append(next, lines[:idx]...)
	return append(next, lines[idx+1:]...)
}
