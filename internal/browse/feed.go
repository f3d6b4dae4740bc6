// Package browse keeps the infinite-scroll listing state of the home page:
// the active query, how far it has been paged and what has been loaded.
package browse

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Searcher is satisfied by the product service.
type Searcher interface {
	Search(ctx context.Context, text string, skip, limit int) (domain.CatalogPage, error)
}

// Feed accumulates pages of one query. Changing the query starts over.
type Feed struct {
	searcher Searcher
	pageSize int

	mu       sync.Mutex
	query    string
	skip     int
	total    int
	loaded   bool
	products []domain.Product
}

func NewFeed(searcher Searcher, pageSize int) *Feed {
	return &Feed{searcher: searcher, pageSize: pageSize, products: []domain.Product{}}
}

// SetQuery switches to a new query and resets paging. The next Load
// replaces the listing.
func (f *Feed) SetQuery(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = text
	f.skip = 0
	f.total = 0
	f.loaded = false
	f.products = []domain.Product{}
}

// Load fetches the first page of the current query.
func (f *Feed) Load(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page, err := f.searcher.Search(ctx, f.query, 0, f.pageSize)
	if err != nil {
		return nil, err
	}
	f.skip = 0
	f.total = page.Total
	f.loaded = true
	f.products = append([]domain.Product{}, page.Products...)
	return f.snapshot(), nil
}

// More fetches the next page when fewer than total products are loaded and
// appends it. It reports whether products were added. An empty page ends
// the listing even if the reported total is larger.
func (f *Feed) More(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.loaded || len(f.products) >= f.total {
		return false, nil
	}
	next := f.skip + f.pageSize
	page, err := f.searcher.Search(ctx, f.query, next, f.pageSize)
	if err != nil {
		return false, err
	}
	if len(page.Products) == 0 {
		// upstream ran dry before its own total; stop paging
		f.total = len(f.products)
		return false, nil
	}
	f.skip = next
	f.total = page.Total
	f.products = append(f.products, page.Products...)
	return true, nil
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded && len(f.products) < f.total
}

// Products returns a copy of everything loaded so far.
func (f *Feed) Products() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Feed) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

func (f *Feed) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *Feed) snapshot() []domain.Product {
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out
}
