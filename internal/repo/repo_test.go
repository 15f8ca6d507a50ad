package repo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()
	gdb, err := db.OpenSQLite(ctx, ":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(gdb)
}

func seedUser(t *testing.T, r *GormRepo, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedProducts(t *testing.T, r *GormRepo, products ...models.Product) {
	t.Helper()
	_, err := r.UpsertProducts(context.Background(), products)
	require.NoError(t, err)
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "%shirt%", containsPattern("shirt"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}
