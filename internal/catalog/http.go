package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// HTTPSource reads the paginated search endpoint of a dummyjson-style
// catalog: GET {base}/products/search?q=&limit=&skip=.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewHTTPSource(baseURL string, timeout time.Duration, logger *log.Logger) *HTTPSource {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type searchResponse struct {
	Products []remoteProduct `json:"products"`
	Total    int             `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
}

type remoteProduct struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Thumbnail   string          `json:"thumbnail"`
	Stock       int             `json:"stock"`
}

func (s *HTTPSource) Search(ctx context.Context, q domain.CatalogQuery) (domain.CatalogPage, error) {
	endpoint, err := url.JoinPath(s.baseURL, "products", "search")
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Printf("catalog: search q=%q skip=%d error=%v", q.Text, q.Skip, err)
		return domain.CatalogPage{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Printf("catalog: search q=%q skip=%d status=%d", q.Text, q.Skip, resp.StatusCode)
		return domain.CatalogPage{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}

	page := domain.CatalogPage{
		Products: make([]domain.Product, 0, len(body.Products)),
		Total:    body.Total,
		Skip:     body.Skip,
		Limit:    body.Limit,
	}
	for _, p := range body.Products {
		page.Products = append(page.Products, p.toDomain())
	}
	s.logger.Printf("catalog: search q=%q skip=%d count=%d total=%d took=%s", q.Text, q.Skip, len(page.Products), page.Total, time.Since(start).Truncate(time.Millisecond))
	return page, nil
}

func (p remoteProduct) toDomain() domain.Product {
	image := p.Image
	if image == "" && len(p.Images) > 0 {
		image = p.Images[0]
	}
	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       image,
		Thumbnail:   p.Thumbnail,
		Stock:       p.Stock,
	}
}
