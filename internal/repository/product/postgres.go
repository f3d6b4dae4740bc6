package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const matchClause = `($1 = '' OR title ILIKE $2 ESCAPE '\' OR description ILIKE $2 ESCAPE '\')`

func (r *postgresRepo) Search(ctx context.Context, text string, skip, limit int) ([]domain.Product, int, error) {
	pattern := likePattern(text)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+matchClause, text, pattern).Scan(&total); err != nil {
		r.logger.Printf("product repo: count q=%q error=%v", text, err)
		return nil, 0, err
	}

	q := `
SELECT id, title, description, price::text, image, thumbnail, stock
FROM products
WHERE ` + matchClause + `
ORDER BY id ASC
LIMIT $3 OFFSET $4
`
	rows, err := r.pool.Query(ctx, q, text, pattern, limit, skip)
	if err != nil {
		r.logger.Printf("product repo: search q=%q skip=%d error=%v", text, skip, err)
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: search rows q=%q error=%v", text, err)
		return nil, 0, err
	}
	r.logger.Printf("product repo: search q=%q skip=%d limit=%d count=%d total=%d", text, skip, limit, len(result), total)
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT id, title, description, price::text, image, thumbnail, stock
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID <= 0 {
		return nil, fmt.Errorf("product repo: id required for title=%q", product.Title)
	}
	const q = `
INSERT INTO products (id, title, description, price, image, thumbnail, stock)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    image = EXCLUDED.image,
    thumbnail = EXCLUDED.thumbnail,
    stock = EXCLUDED.stock,
    updated_at = now()
RETURNING id, title, description, price::text, image, thumbnail, stock
`
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Title,
		product.Description,
		product.Price.String(),
		product.Image,
		product.Thumbnail,
		product.Stock,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert id=%d error=%v", product.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%d title=%q", res.ID, res.Title)
	return &res, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &price, &p.Image, &p.Thumbnail, &p.Stock); err != nil {
		return domain.Product{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product repo: parse price %q: %w", price, err)
	}
	p.Price = parsed
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
