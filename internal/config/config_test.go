package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "CATALOG_BACKEND", "REDIS_ADDR", "PAGE_SIZE", "CORS_ORIGINS", "SEARCH_DEBOUNCE_MS"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" || cfg.CatalogBackend != CatalogHTTP || cfg.PageSize != 8 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RedisAddr != "" || cfg.UsesPostgres() {
		t.Fatalf("expected cache and postgres disabled by default")
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Fatalf("unexpected debounce %s", cfg.SearchDebounce)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "Postgres")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "30")
	t.Setenv("PAGE_SIZE", "12")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SESSION_TTL_SECONDS", "bogus")

	cfg := FromEnv()
	if !cfg.UsesPostgres() {
		t.Fatalf("expected postgres backend, got %q", cfg.CatalogBackend)
	}
	if cfg.CatalogCacheTTL != 30*time.Second || cfg.PageSize != 12 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected invalid ttl to fall back, got %s", cfg.SessionTTL)
	}
}
