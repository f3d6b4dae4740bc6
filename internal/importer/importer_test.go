package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,title,description,price,stock,thumbnail,image
1,Essence Mascara,Long lashes,9.99,5,https://example.com/1/thumb.jpg,https://example.com/1/a.jpg
,,,,,,https://example.com/1/b.jpg
2,Eyeshadow Palette,Twelve shades,19.99,0,,https://example.com/2/a.jpg
3,Powder Canister,,14.5,,,`

	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Len(t, repo.items, 3)

	first := repo.items[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Essence Mascara", first.Title)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 5, first.Stock)
	assert.Equal(t, "https://example.com/1/a.jpg", first.Image)
	assert.Equal(t, "https://example.com/1/thumb.jpg", first.Thumbnail)

	second := repo.items[1]
	assert.Equal(t, 0, second.Stock)
	assert.Equal(t, "https://example.com/2/a.jpg", second.Thumbnail, "thumbnail falls back to the first image")

	third := repo.items[2]
	assert.Empty(t, third.Image)
	assert.Equal(t, 0, third.Stock)
}

func TestCSVImporter_InvalidRows(t *testing.T) {
	cases := map[string]string{
		"bad id":         "id,title,price\nabc,Thing,1.00",
		"missing title":  "id,title,price\n1,,1.00",
		"negative price": "id,title,price\n1,Thing,-1",
		"bad stock":      "id,title,price,stock\n1,Thing,1.00,many",
		"no id column":   "title,price\nThing,1.00",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCSVImporter(strings.NewReader(data), &stubProductRepo{}).Run(context.Background())
			require.Error(t, err)
		})
	}
}

func TestCSVImporter_RepoError(t *testing.T) {
	boom := errors.New("db down")
	repo := &stubProductRepo{err: boom}
	count, err := NewCSVImporter(strings.NewReader("id,title,price\n1,Thing,1.00"), repo).Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, count)
}

func TestCSVImporter_ContinuationRowsFillMissingImageOnly(t *testing.T) {
	csvData := `id,title,price,image
1,Lamp,34.50,
,,,https://example.com/1/first.jpg
,,,https://example.com/1/second.jpg
2,Mug,12.99,https://example.com/2/own.jpg
,,,https://example.com/2/extra.jpg`

	repo := &stubProductRepo{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	assert.Equal(t, "https://example.com/1/first.jpg", repo.items[0].Image)
	assert.Equal(t, "https://example.com/1/first.jpg", repo.items[0].Thumbnail)
	assert.Equal(t, "https://example.com/2/own.jpg", repo.items[1].Image)
}
