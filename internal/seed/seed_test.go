package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type recordingRepo struct {
	ids []int64
	err error
}

func (r *recordingRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.ids = append(r.ids, p.ID)
	return &p, nil
}

func TestApply(t *testing.T) {
	repo := &recordingRepo{}
	n, err := Apply(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, len(Products), n)
	require.Len(t, repo.ids, len(Products))

	seen := map[int64]bool{}
	for _, p := range Products {
		require.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		require.Positive(t, p.ID)
		require.GreaterOrEqual(t, p.Stock, 0)
		require.False(t, p.Price.IsNegative())
	}
	// more than one page so infinite scroll has something to load
	require.Greater(t, len(Products), 8)
}

func TestApply_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Apply(context.Background(), &recordingRepo{err: boom})
	require.ErrorIs(t, err, boom)
}
