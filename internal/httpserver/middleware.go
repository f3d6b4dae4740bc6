package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartsvc "storefront/internal/service/cart"
	"storefront/internal/service/session"
)

const (
	requestIDHeader = "X-Request-ID"
	cartKey         = "cart"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// sessionMiddleware resolves the bearer token to the shopper's cart store.
func sessionMiddleware(sessions sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			writeError(c, http.StatusUnauthorized, "missing session token")
			return
		}
		store, err := sessions.Lookup(token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) {
				writeError(c, http.StatusUnauthorized, "invalid session token")
				return
			}
			writeError(c, http.StatusInternalServerError, "session lookup failed")
			return
		}
		c.Set(cartKey, store)
		c.Next()
	}
}

// optionalCart returns the caller's store when a valid token is present.
func optionalCart(c *gin.Context, sessions sessionService) *cartsvc.Store {
	token := bearerToken(c)
	if token == "" {
		return nil
	}
	store, err := sessions.Lookup(token)
	if err != nil {
		return nil
	}
	return store
}

func cartFrom(c *gin.Context) *cartsvc.Store {
	return c.MustGet(cartKey).(*cartsvc.Store)
}

func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
