package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/metrics"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
	"storefront/internal/service/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		source catalog.Source
		ready  httpserver.Pinger
	)
	switch cfg.CatalogBackend {
	case config.CatalogPostgres:
		dbpool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
		source = catalog.NewPostgresSource(productrepo.NewPostgres(dbpool, logger))
		ready = dbpool
	case config.CatalogHTTP:
		source = catalog.NewHTTPSource(cfg.CatalogURL, cfg.CatalogTimeout, logger)
	default:
		logger.Fatalf("unknown CATALOG_BACKEND %q", cfg.CatalogBackend)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Printf("redis unavailable, catalog cache disabled: addr=%s err=%v", cfg.RedisAddr, err)
		} else {
			source = catalog.NewCached(source, cache.NewRedisCache(rdb, cfg.CatalogCacheTTL), logger)
			logger.Printf("catalog cache enabled: addr=%s ttl=%s", cfg.RedisAddr, cfg.CatalogCacheTTL)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	productService := productsvc.New(source, cfg.PageSize)
	sessions := session.New(cfg.SessionTTL,
		func(s *cartsvc.Store) { m.ObserveCart(s) },
		func(s *cartsvc.Store) { cartsvc.LogActions(s, logger) },
		func(*cartsvc.Store) { m.Sessions.Inc() },
	)

	stopSweep := make(chan struct{})
	go sessions.Run(time.Minute, stopSweep, func(removed, active int) {
		m.Sessions.Set(float64(active))
		if removed > 0 {
			logger.Printf("sessions swept: removed=%d active=%d", removed, active)
		}
	})
	defer close(stopSweep)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, ready, httpserver.Deps{
		ProductSvc:  productService,
		Sessions:    sessions,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s catalog=%s page_size=%d", cfg.HTTPAddr, cfg.CatalogBackend, productService.PageSize())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
