package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

func numbered(n int, title string) []models.Product {
	out := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Product{ID: fmt.Sprintf("p%02d", i), Title: fmt.Sprintf("%s %d", title, i), Price: float64(i)})
	}
	return out
}

func TestSearchProducts_Pagination(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, r, numbered(12, "Shirt")...)

	cases := []struct {
		name      string
		page      int
		size      int
		wantIDs   []string
		wantPages int
	}{
		{"first page", 1, 5, []string{"p01", "p02", "p03", "p04", "p05"}, 3},
		{"last partial page", 3, 5, []string{"p11", "p12"}, 3},
		{"beyond last page", 4, 5, []string{}, 3},
		{"single page", 1, 100, nil, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := r.SearchProducts(ctx, "", tc.page, tc.size)
			require.NoError(t, err)
			assert.EqualValues(t, 12, page.Total)
			assert.Equal(t, tc.wantPages, page.PageCount)
			assert.Equal(t, tc.page, page.Page)
			assert.Equal(t, tc.size, page.PageSize)
			if tc.wantIDs != nil {
				ids := make([]string, 0, len(page.Items))
				for _, p := range page.Items {
					ids = append(ids, p.ID)
				}
				assert.Equal(t, tc.wantIDs, ids)
			}
		})
	}
}

func TestSearchProducts_PagesPartitionResult(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, r, numbered(7, "Dress")...)

	seen := map[string]bool{}
	for p := 1; p <= 3; p++ {
		page, err := r.SearchProducts(ctx, "dress", p, 3)
		require.NoError(t, err)
		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "duplicate %s", item.ID)
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, 7)
}

func TestSearchProducts_SubstringCaseInsensitive(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, r,
		models.Product{ID: "a", Title: "Red Shirt"},
		models.Product{ID: "b", Title: "blue shirt"},
		models.Product{ID: "c", Title: "Green Dress"},
		models.Product{ID: "d", Title: "100% Cotton"},
		models.Product{ID: "e", Title: "100 Cotton"},
	)

	page, err := r.SearchProducts(ctx, "SHIRT", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, "b", page.Items[1].ID)

	page, err = r.SearchProducts(ctx, "100%", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "d", page.Items[0].ID)

	page, err = r.SearchProducts(ctx, "zzz", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestSearchProducts_EmptyCatalog(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)

	page, err := r.SearchProducts(context.Background(), "", 1, 5)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.PageCount)
	assert.Empty(t, page.Items)
}

func TestSearchProducts_InvalidPaging(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.SearchProducts(ctx, "", 0, 5)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = r.SearchProducts(ctx, "", 1, 0)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpsertProducts_Idempotent(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()
	batch := numbered(4, "Hat")

	n, err := r.UpsertProducts(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	first, err := r.SearchProducts(ctx, "", 1, 10)
	require.NoError(t, err)

	n, err = r.UpsertProducts(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	second, err := r.SearchProducts(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpsertProducts_OverwritesAndKeepsAbsent(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()
	seedProducts(t, r,
		models.Product{ID: "a", Title: "Old", Price: 1, Rating: models.Rating{Rate: 1, Count: 1}},
		models.Product{ID: "b", Title: "Untouched", Price: 2},
	)

	n, err := r.UpsertProducts(ctx, []models.Product{
		{ID: "a", Title: "Draft", Price: 5},
		{ID: "a", Title: "New", Price: 9, Rating: models.Rating{Rate: 4.5, Count: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	a, err := r.GetProduct(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "New", a.Title)
	assert.Equal(t, 9.0, a.Price)
	assert.Equal(t, models.Rating{Rate: 4.5, Count: 10}, a.Rating)

	b, err := r.GetProduct(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Untouched", b.Title)
}

func TestUpsertProducts_Empty(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)

	n, err := r.UpsertProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)

	_, err := r.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchProducts_HugePageIsEmpty(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	seedProducts(t, r, numbered(2, "Scarf")...)

	page, err := r.SearchProducts(context.Background(), "", 3689348814741910324, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 1, page.PageCount)
}
