package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
	"storefront/internal/shop"
)

func main() {
	verbose := flag.Bool("v", false, "log every cart action to stderr")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[shop] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source catalog.Source
	if cfg.UsesPostgres() {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		source = catalog.NewPostgresSource(productrepo.NewPostgres(pool, logger))
	} else {
		source = catalog.NewHTTPSource(cfg.CatalogURL, cfg.CatalogTimeout, logger)
	}

	store := cartsvc.New()
	actionLog := log.New(io.Discard, "", 0)
	if *verbose {
		actionLog = logger
	}
	cartsvc.LogActions(store, actionLog)

	products := productsvc.New(source, cfg.PageSize)
	sh := shop.New(products, products.PageSize(), store, cfg.SearchDebounce, os.Stdout, logger)
	if err := sh.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Fatalf("shop: %v", err)
	}
}
