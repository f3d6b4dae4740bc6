package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	cartsvc "storefront/internal/service/cart"
)

type productService interface {
	Search(ctx context.Context, text string, skip, limit int) (domain.CatalogPage, error)
}

type sessionService interface {
	Issue() (string, *cartsvc.Store, error)
	Lookup(token string) (*cartsvc.Store, error)
	TTLSeconds() int
}

// Deps are the services the routes dispatch to.
type Deps struct {
	ProductSvc  productService
	Sessions    sessionService
	Metrics     *metrics.Metrics
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: product service and sessions are required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{products: deps.ProductSvc, sessions: deps.Sessions, logger: logger}
	router.POST("/sessions", h.createSession)
	router.GET("/products/search", h.searchProducts)

	cart := router.Group("/cart", sessionMiddleware(deps.Sessions))
	cart.GET("", h.getCart)
	cart.DELETE("", h.resetCart)
	cart.POST("/items", h.addItem)
	cart.POST("/items/:id/decrement", h.decrementItem)
	cart.DELETE("/items/:id", h.removeItem)
	cart.GET("/events", h.cartEvents)

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found")
	})

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
