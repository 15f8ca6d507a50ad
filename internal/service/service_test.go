package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type published struct {
	Topic string
	Key   string
	Event map[string]any
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, _ := event.(map[string]any)
	r.events = append(r.events, published{Topic: topic, Key: key, Event: m})
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type fixture struct {
	Auth    *AuthService
	Catalog *CatalogService
	Cart    *CartService
	Events  *recorder
}

func newFixture(t *testing.T) *fixture {
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

	store := repo.New(gdb)
	rec := &recorder{}
	return &fixture{
		Auth:    &AuthService{Users: store, Hasher: hash.NewBcrypt(bcrypt.MinCost), Events: rec},
		Catalog: &CatalogService{Store: store, Events: rec},
		Cart:    &CartService{Store: store, Events: rec},
		Events:  rec,
	}
}
