package session

import (
	"errors"
	"time"

	cartsvc "storefront/internal/service/cart"
)

var ErrInvalidToken = errors.New("invalid token")

// Service hands each anonymous shopper a token bound to their own cart
// store. Carts live in memory only and disappear when the token expires.
type Service struct {
	tokens  *tokenManager
	ttl     time.Duration
	onStart []func(*cartsvc.Store)
}

// New returns a Service issuing tokens valid for ttl. Each hook runs once
// against every newly created store, after its token has been issued and
// before Issue returns.
func New(ttl time.Duration, hooks ...func(*cartsvc.Store)) *Service {
	return &Service{
		tokens:  newTokenManager(),
		ttl:     ttl,
		onStart: hooks,
	}
}

// Issue starts a session with an empty cart.
func (s *Service) Issue() (token string, store *cartsvc.Store, err error) {
	store = cartsvc.New()
	token, err = s.tokens.Issue(store, s.ttl)
	if err != nil {
		return "", nil, err
	}
	for _, hook := range s.onStart {
		hook(store)
	}
	return token, store, nil
}

// Lookup returns the cart store for a live token and extends its lifetime.
func (s *Service) Lookup(token string) (*cartsvc.Store, error) {
	store, ok := s.tokens.Validate(token, s.ttl)
	if !ok {
		return nil, ErrInvalidToken
	}
	return store, nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Service) Sweep() int {
	return s.tokens.Sweep(s.tokens.now())
}

func (s *Service) Active() int {
	return s.tokens.Len()
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

// Run sweeps on every tick until stop is closed. report, when set, receives
// the number of removed and remaining sessions after each sweep.
func (s *Service) Run(interval time.Duration, stop <-chan struct{}, report func(removed, active int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			removed := s.Sweep()
			if report != nil {
				report(removed, s.Active())
			}
		}
	}
}
