package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
)

type CatalogService struct {
	Store  CatalogStore
	Events events.Publisher
}

func (s *CatalogService) Search(ctx context.Context, query string, page, size int) (*models.ProductPage, error) {
	return s.Store.SearchProducts(ctx, strings.TrimSpace(query), page, size)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id is required: %w", domain.ErrValidation)
	}
	return s.Store.GetProduct(ctx, id)
}

// Upsert writes products keyed by id. Records without an id are rejected as a
// whole batch; callers filter them first.
func (s *CatalogService) Upsert(ctx context.Context, products []models.Product) (int, error) {
	for i := range products {
		if products[i].ID == "" {
			return 0, fmt.Errorf("product at position %d has no id: %w", i, domain.ErrValidation)
		}
	}

	n, err := s.Store.UpsertProducts(ctx, products)
	if err != nil {
		return 0, err
	}

	events.Emit(ctx, s.Events, events.TopicProducts, "catalog", map[string]any{
		"type":  "products_upserted",
		"count": n,
	})
	return n, nil
}
