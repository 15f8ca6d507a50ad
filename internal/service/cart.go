package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
)

type CartService struct {
	Store  CartStore
	Events events.Publisher
}

func (s *CartService) List(ctx context.Context, userID string) ([]models.CartLine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}
	return s.Store.ListCart(ctx, userID)
}

func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*models.CartLine, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("user id and product id are required: %w", domain.ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}

	line, err := s.Store.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":         "cart_item_added",
		"user_id":      userID,
		"product_id":   productID,
		"cart_item_id": line.ID,
		"added":        quantity,
		"quantity":     line.Quantity,
	})
	return line, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, fmt.Errorf("cart item id is required: %w", domain.ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}

	item, err := s.Store.UpdateCartItem(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicCart, item.UserID, map[string]any{
		"type":         "cart_item_updated",
		"user_id":      item.UserID,
		"product_id":   item.ProductID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("cart item id is required: %w", domain.ErrValidation)
	}

	item, err := s.Store.RemoveCartItem(ctx, itemID)
	if err != nil {
		return err
	}

	events.Emit(ctx, s.Events, events.TopicCart, item.UserID, map[string]any{
		"type":         "cart_item_removed",
		"user_id":      item.UserID,
		"product_id":   item.ProductID,
		"cart_item_id": item.ID,
	})
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("user id is required: %w", domain.ErrValidation)
	}

	n, err := s.Store.ClearCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	events.Emit(ctx, s.Events, events.TopicCart, userID, map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
		"removed": n,
	})
	return n, nil
}
