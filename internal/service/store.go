package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CredentialStore interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type CatalogStore interface {
	SearchProducts(ctx context.Context, query string, page, size int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpsertProducts(ctx context.Context, products []models.Product) (int, error)
}

type CartStore interface {
	ListCart(ctx context.Context, userID string) ([]models.CartLine, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartLine, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.CartItem, error)
	RemoveCartItem(ctx context.Context, itemID string) (*models.CartItem, error)
	ClearCart(ctx context.Context, userID string) (int64, error)
}
