package product

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestLikePattern(t *testing.T) {
	cases := map[string]string{
		"":        "%%",
		"phone":   "%phone%",
		"50%_off": `%50\%\_off%`,
		`a\b`:     `%a\\b%`,
	}
	for in, want := range cases {
		if got := likePattern(in); got != want {
			t.Fatalf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPostgres_UpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	for _, p := range []domain.Product{
		{ID: 1, Title: "Red Mug", Description: "Ceramic", Price: decimal.RequireFromString("12.99"), Stock: 4},
		{ID: 2, Title: "Blue Mug", Description: "Enamel", Price: decimal.RequireFromString("9.50"), Stock: 1},
		{ID: 3, Title: "Tee", Description: "Cotton mug print", Price: decimal.RequireFromString("19.99"), Stock: 10},
		{ID: 4, Title: "Lamp", Description: "Desk", Price: decimal.RequireFromString("30"), Stock: 2},
	} {
		if _, err := repo.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert %d: %v", p.ID, err)
		}
	}

	products, total, err := repo.Search(ctx, "MUG", 0, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 3 || len(products) != 2 || products[0].ID != 1 || products[1].ID != 2 {
		t.Fatalf("unexpected first page total=%d products=%+v", total, products)
	}

	products, total, err = repo.Search(ctx, "mug", 2, 2)
	if err != nil {
		t.Fatalf("Search page 2: %v", err)
	}
	if total != 3 || len(products) != 1 || products[0].ID != 3 {
		t.Fatalf("unexpected second page total=%d products=%+v", total, products)
	}

	_, total, err = repo.Search(ctx, "", 0, 8)
	if err != nil || total != 4 {
		t.Fatalf("expected 4 products for empty query, got %d err=%v", total, err)
	}
}

func TestPostgres_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.Upsert(ctx, domain.Product{ID: 7, Title: "Mug", Price: decimal.RequireFromString("5"), Stock: 1}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	updated, err := repo.Upsert(ctx, domain.Product{ID: 7, Title: "Mug v2", Price: decimal.RequireFromString("6.25"), Stock: 3})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if updated.Title != "Mug v2" || updated.Stock != 3 || updated.Price.StringFixed(2) != "6.25" {
		t.Fatalf("unexpected updated product %+v", updated)
	}

	got, err := repo.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Mug v2" {
		t.Fatalf("unexpected product %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); err != domain.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.Upsert(ctx, domain.Product{Title: "no id"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
