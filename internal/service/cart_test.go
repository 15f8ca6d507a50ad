package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

// Register, log in, fill the cart twice with the same product, then edit and
// empty it.
func TestStorefront_AliceScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Auth.Register(ctx, "alice", "a@x.io", "pw1")
	require.NoError(t, err)
	alice, err := f.Auth.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = f.Catalog.Upsert(ctx, []models.Product{{ID: "p1", Title: "Shirt", Price: 10}})
	require.NoError(t, err)

	_, err = f.Cart.Add(ctx, alice.ID, "p1", 2)
	require.NoError(t, err)
	_, err = f.Cart.Add(ctx, alice.ID, "p1", 3)
	require.NoError(t, err)

	lines, err := f.Cart.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 10.0, lines[0].Product.Price)

	item, err := f.Cart.UpdateQuantity(ctx, lines[0].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	require.NoError(t, f.Cart.Remove(ctx, lines[0].ID))

	lines, err = f.Cart.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Equal(t, []string{
		"user_registered",
		"user_logged_in",
		"products_upserted",
		"cart_item_added",
		"cart_item_added",
		"cart_item_updated",
		"cart_item_removed",
	}, f.Events.types())
}

func TestCartService_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.Cart.List(ctx, "")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.Cart.Add(ctx, "u", "", 1)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.Cart.Add(ctx, "u", "p1", 0)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.Cart.UpdateQuantity(ctx, "item", -1)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.ErrorIs(t, f.Cart.Remove(ctx, ""), domain.ErrValidation)
	_, err = f.Cart.Clear(ctx, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, f.Events.types())
}

func TestCartService_MissingTargets(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	uid, err := f.Auth.Register(ctx, "bob", "b@x.io", "pw")
	require.NoError(t, err)

	_, err = f.Cart.Add(ctx, uid, "nope", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.Cart.UpdateQuantity(ctx, "missing", 2)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.Cart.Remove(ctx, "missing"), domain.ErrNotFound)
}

func TestCartService_Clear(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	uid, err := f.Auth.Register(ctx, "carol", "c@x.io", "pw")
	require.NoError(t, err)
	_, err = f.Catalog.Upsert(ctx, []models.Product{{ID: "p1", Title: "A"}, {ID: "p2", Title: "B"}})
	require.NoError(t, err)
	_, err = f.Cart.Add(ctx, uid, "p1", 1)
	require.NoError(t, err)
	_, err = f.Cart.Add(ctx, uid, "p2", 1)
	require.NoError(t, err)

	n, err := f.Cart.Clear(ctx, uid)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
