package shop

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products []domain.Product
	queries  []string
	err      error
}

func (f *fakeCatalog) Search(_ context.Context, text string, skip, limit int) (domain.CatalogPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	if f.err != nil {
		return domain.CatalogPage{}, f.err
	}
	var matched []domain.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(text)) {
			matched = append(matched, p)
		}
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := []domain.Product{}
	if skip < end {
		page = matched[skip:end]
	}
	return domain.CatalogPage{Products: page, Total: len(matched), Skip: skip, Limit: limit}, nil
}

func (f *fakeCatalog) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func catalog() *fakeCatalog {
	return &fakeCatalog{products: []domain.Product{
		{ID: 1, Title: "Mug", Price: decimal.RequireFromString("12.99"), Stock: 1},
		{ID: 2, Title: "Mug Warmer", Price: decimal.RequireFromString("20"), Stock: 3},
		{ID: 3, Title: "Lamp", Price: decimal.RequireFromString("34.50"), Stock: 2},
	}}
}

func run(t *testing.T, cat *fakeCatalog, pageSize int, script string) (string, *cartsvc.Store) {
	t.Helper()
	var out bytes.Buffer
	store := cartsvc.New()
	sh := New(cat, pageSize, store, time.Second, &out, nil)
	require.NoError(t, sh.Run(context.Background(), strings.NewReader(script)))
	return out.String(), store
}

func TestShell_SearchIsDebounced(t *testing.T) {
	cat := catalog()
	out, _ := run(t, cat, 8, "search m\nsearch mu\nsearch mug\nlist\nquit\n")

	assert.Equal(t, []string{"", "mug"}, cat.seen())
	assert.Contains(t, out, "showing 2 of 2")
}

func TestShell_PendingSearchRunsAtEOF(t *testing.T) {
	cat := catalog()
	out, _ := run(t, cat, 8, "search lamp\n")

	assert.Equal(t, []string{"", "lamp"}, cat.seen())
	assert.Contains(t, out, "showing 1 of 1")
}

func TestShell_InfiniteScroll(t *testing.T) {
	out, _ := run(t, catalog(), 2, "more\nmore\n")

	assert.Contains(t, out, "showing 2 of 3")
	assert.Contains(t, out, "showing 3 of 3")
	assert.Contains(t, out, "no more products")
}

func TestShell_AddRespectsStock(t *testing.T) {
	out, store := run(t, catalog(), 8, "add 1\nadd 1\nadd 3\nadd 3\ncart\n")

	assert.Contains(t, out, "Mug: stock limit reached")
	assert.Contains(t, out, "1 in cart (limit)")
	assert.Contains(t, out, "2 in cart (limit)")
	assert.Contains(t, out, "items: 3  total: $81.99")
	assert.Equal(t, 1, store.Snapshot().Quantity(1))
	assert.Equal(t, 2, store.Snapshot().Quantity(3))
}

func TestShell_RemoveAndReset(t *testing.T) {
	out, store := run(t, catalog(), 8, "add 2\nadd 2\ndec 2\nadd 3\nrm 3\nreset\n")

	assert.Contains(t, out, "Your cart is empty")
	assert.Equal(t, 0, store.Snapshot().Len())
}

func TestShell_BadInput(t *testing.T) {
	out, _ := run(t, catalog(), 8, "add x\nadd 99\nfly\n")

	assert.Contains(t, out, `invalid product id "x"`)
	assert.Contains(t, out, "product 99 is not in the listing")
	assert.Contains(t, out, `unknown command "fly"`)
}

func TestShell_SearchFailure(t *testing.T) {
	cat := catalog()
	cat.err = errors.New("upstream down")
	out, _ := run(t, cat, 8, "list\n")

	assert.Contains(t, out, "search failed: upstream down")
	assert.Contains(t, out, "no products found")
}
