package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files and inserts/updates products.
//
// Expected header: id,title,description,price,stock,thumbnail,image.
// A row with an empty id and only an image column is a continuation row. It
// supplies the image of the product above it when that product has none;
// products carry a single image, so later continuation images are ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	line      int
	ID        string
	Title     string
	Desc      string
	Price     string
	Stock     string
	Thumbnail string
	Image     string
}

// Run parses CSV rows and upserts one product per id row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("read headers: missing id column")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.line = line

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil && current.Image == "" {
			current.Image = row.Image
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.toProduct()
	if err != nil {
		return fmt.Errorf("line %d: %w", row.line, err)
	}
	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID, err)
	}
	return nil
}

func (r *csvRow) toProduct() (domain.Product, error) {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil || id <= 0 {
		return domain.Product{}, fmt.Errorf("invalid id %q", r.ID)
	}
	if r.Title == "" || r.Price == "" {
		return domain.Product{}, fmt.Errorf("product %d: title and price are required", id)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return domain.Product{}, fmt.Errorf("product %d: invalid price %q", id, r.Price)
	}
	stock := 0
	if r.Stock != "" {
		stock, err = strconv.Atoi(r.Stock)
		if err != nil || stock < 0 {
			return domain.Product{}, fmt.Errorf("product %d: invalid stock %q", id, r.Stock)
		}
	}

	p := domain.Product{
		ID:          id,
		Title:       r.Title,
		Description: r.Desc,
		Price:       price,
		Stock:       stock,
		Thumbnail:   r.Thumbnail,
		Image:       r.Image,
	}
	if p.Thumbnail == "" {
		p.Thumbnail = r.Image
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		ID:        pick(record, index, "id"),
		Title:     pick(record, index, "title"),
		Desc:      pick(record, index, "description"),
		Price:     pick(record, index, "price"),
		Stock:     pick(record, index, "stock"),
		Thumbnail: pick(record, index, "thumbnail"),
		Image:     pick(record, index, "image"),
	}
	if row.ID == "" && row.Image == "" {
		return nil
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
