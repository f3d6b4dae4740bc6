package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	cartsvc "storefront/internal/service/cart"
)

type tokenMeta struct {
	Store     *cartsvc.Store
	ExpiresAt time.Time
}

type tokenManager struct {
	mu     sync.RWMutex
	tokens map[string]tokenMeta
	now    func() time.Time
	random func() (string, error)
}

func newTokenManager() *tokenManager {
	return &tokenManager{
		tokens: make(map[string]tokenMeta),
		now:    time.Now,
		random: randomToken,
	}
}

func (m *tokenManager) Issue(store *cartsvc.Store, ttl time.Duration) (string, error) {
	token, err := m.random()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.tokens[token] = tokenMeta{Store: store, ExpiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return token, nil
}

// Validate returns the store for token and slides its expiry forward.
func (m *tokenManager) Validate(token string, ttl time.Duration) (*cartsvc.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta, ok := m.tokens[token]
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.After(meta.ExpiresAt) {
		delete(m.tokens, token)
		return nil, false
	}
	meta.ExpiresAt = now.Add(ttl)
	m.tokens[token] = meta
	return meta.Store, true
}

func (m *tokenManager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, meta := range m.tokens {
		if now.After(meta.ExpiresAt) {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed
}

func (m *tokenManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
